package geosp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DistanceClient resolves a driving distance [km] between two points.
type DistanceClient interface {
	DrivingKm(fromLat, fromLon, toLat, toLon float64) (float64, error)
}

// HTTPDistanceClient queries a routing endpoint:
//
//	GET {base}/route?from={lat},{lon}&to={lat},{lon}
//
// expecting {"distance_km": <v>}. Requests are paced to MinInterval
// and retried up to MaxRetries times with exponential backoff.
type HTTPDistanceClient struct {
	BaseURL     string
	Client      *http.Client
	MinInterval time.Duration
	MaxRetries  int
	Backoff     time.Duration

	last time.Time
}

func NewHTTPDistanceClient(baseURL string) *HTTPDistanceClient {
	return &HTTPDistanceClient{
		BaseURL:     baseURL,
		Client:      &http.Client{Timeout: 30 * time.Second},
		MinInterval: 100 * time.Millisecond,
		MaxRetries:  3,
		Backoff:     250 * time.Millisecond,
	}
}

func (c *HTTPDistanceClient) DrivingKm(fromLat, fromLon, toLat, toLon float64) (float64, error) {
	u := fmt.Sprintf("%s/route?from=%s&to=%s", c.BaseURL,
		url.QueryEscape(fmt.Sprintf("%g,%g", fromLat, fromLon)),
		url.QueryEscape(fmt.Sprintf("%g,%g", toLat, toLon)))

	var lastErr error
	for try := 0; try <= c.MaxRetries; try++ {
		if try > 0 {
			time.Sleep(c.Backoff << (try - 1))
		}
		c.pace()
		v, err := c.get(u)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return 0., fmt.Errorf("distance client: %w", lastErr)
}

func (c *HTTPDistanceClient) pace() {
	if wait := c.MinInterval - time.Since(c.last); wait > 0 {
		time.Sleep(wait)
	}
	c.last = time.Now()
}

func (c *HTTPDistanceClient) get(u string) (float64, error) {
	resp, err := c.Client.Get(u)
	if err != nil {
		return 0., err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0., fmt.Errorf("status %s", resp.Status)
	}
	var body struct {
		DistanceKm float64 `json:"distance_km"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0., err
	}
	return body.DistanceKm, nil
}
