package geosp

import "math"

const earthRadiusKm = 6371.0088

// Haversine returns the great-circle distance [km] between two
// geographic points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180.
	dlat := (lat2 - lat1) * rad
	dlon := (lon2 - lon1) * rad
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2. * earthRadiusKm * math.Asin(math.Min(1., math.Sqrt(a)))
}

// NearestRefinery assigns the closest site by great-circle distance,
// returning its index and the separation [km]. Returns -1 on an empty
// candidate list.
func NearestRefinery(f *Facility, refs []Refinery) (int, float64) {
	best, bestKm := -1, math.Inf(1)
	for i := range refs {
		if d := Haversine(f.Lat, f.Lon, refs[i].Lat, refs[i].Lon); d < bestKm {
			best, bestKm = i, d
		}
	}
	if best < 0 {
		return -1, math.NaN()
	}
	return best, bestKm
}
