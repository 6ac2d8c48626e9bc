package geosp

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWB(t *testing.T, fp, sheet string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sh := f.GetSheetName(0)
	if sheet != "" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.DeleteSheet(sh)
		sh = sheet
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sh, cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(fp))
}

var facilityHdr = []interface{}{
	"FACILITY", "CITY", "STATE", "CWNS_NUM", "FACILITY_CODE",
	"LATITUDE", "LONGITUDE", "FLOW_2022_MGD",
	"landfill", "land_application", "incineration", "other_management",
	"CH4_Emission", "N2O_Emission", "CO2_Emission", "Biosolids_Emission",
	"E_Emission", "NG_Emission", "NC_Emission",
}

func facilityWB(t *testing.T, dir string) string {
	fp := filepath.Join(dir, "facilities.xlsx")
	writeWB(t, fp, "", [][]interface{}{
		facilityHdr,
		{"METRO STP", "Chicago", "Illinois", "170001", "B1",
			41.84, -87.72, 230.,
			1e6, 2e6, 5e5, 0.,
			100., 50., 400., 30., 200., 80., 40.},
		{"LAKESIDE WRP", "Peoria", "Illinois", "170002", "C2",
			40.69, -89.59, 12.,
			2e5, 0., 0., 1e5,
			10., 5., 40., 3., 20., 8., 4.},
	})
	return fp
}

func refineryWB(t *testing.T, dir string) string {
	fp := filepath.Join(dir, "refineries.xlsx")
	writeWB(t, fp, "", [][]interface{}{
		{"site_id", "Company", "State", "Latitude", "Longitude", "capacity_Mbpd"},
		{"R1", "Joliet", "Illinois", 41.51, -88.14, 270.},
		{"R2", "Wood River", "Illinois", 38.81, -90.07, 356.},
	})
	return fp
}

func stateWB(t *testing.T, dir string) string {
	fp := filepath.Join(dir, "states.xlsx")
	writeWB(t, fp, "summary", [][]interface{}{
		{"name", "price", "GHG"},
		{"Illinois", 9.4, .43},
	})
	return fp
}

func TestHaversine(t *testing.T) {
	// New York to Los Angeles
	d := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InEpsilon(t, 3936., d, .01)
	assert.Zero(t, Haversine(41.5, -88.1, 41.5, -88.1))
}

func TestLoadFacilities(t *testing.T) {
	dir := t.TempDir()
	facs, err := LoadFacilities(facilityWB(t, dir))
	require.NoError(t, err)
	require.Len(t, facs, 2)

	assert.Equal(t, "METRO STP", facs[0].Name)
	assert.InDelta(t, 3.5e6, facs[0].TotalSludge(), 1e-9)
	assert.InDelta(t, 900., facs[0].TotalEmission(), 1e-9)
	assert.InDelta(t, 41.84, facs[0].Lat, 1e-12)

	// duplicate (CWNS, code) keys are rejected eagerly
	fp := filepath.Join(dir, "dup.xlsx")
	writeWB(t, fp, "", [][]interface{}{
		facilityHdr,
		{"A", "X", "Illinois", "1", "B1", 41., -88., 1., 0., 0., 0., 0., 0., 0., 0., 0., 0., 0., 0.},
		{"B", "Y", "Illinois", "1", "B1", 41., -88., 1., 0., 0., 0., 0., 0., 0., 0., 0., 0., 0., 0.},
	})
	_, err = LoadFacilities(fp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestLoadFacilitiesProjected(t *testing.T) {
	// Toronto in UTM zone 17N
	fp := filepath.Join(t.TempDir(), "utm.xlsx")
	writeWB(t, fp, "", [][]interface{}{
		{"FACILITY", "CITY", "STATE", "CWNS_NUM", "FACILITY_CODE",
			"EASTING", "NORTHING", "UTM_ZONE", "FLOW_2022_MGD",
			"landfill", "land_application", "incineration", "other_management",
			"CH4_Emission", "N2O_Emission", "CO2_Emission", "Biosolids_Emission",
			"E_Emission", "NG_Emission", "NC_Emission"},
		{"ASHBRIDGES", "Toronto", "Ontario", "900001", "D1",
			630084., 4833439., 17., 180.,
			0., 0., 0., 0., 0., 0., 0., 0., 0., 0., 0.},
	})
	facs, err := LoadFacilities(fp)
	require.NoError(t, err)
	require.Len(t, facs, 1)
	assert.InDelta(t, 43.64, facs[0].Lat, .1)
	assert.InDelta(t, -79.39, facs[0].Lon, .1)
}

func TestLoadRefineriesAndStates(t *testing.T) {
	dir := t.TempDir()
	refs, err := LoadRefineries(refineryWB(t, dir))
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "R1", refs[0].SiteID)
	assert.InDelta(t, 270., refs[0].CapacityMbpd, 1e-12)

	ses, err := LoadStateTable(stateWB(t, dir))
	require.NoError(t, err)
	require.Len(t, ses, 1)
	assert.InDelta(t, 9.4, ses[0].PriceCtPerKWh, 1e-12)

	fp := filepath.Join(dir, "dupref.xlsx")
	writeWB(t, fp, "", [][]interface{}{
		{"site_id", "Company", "State", "Latitude", "Longitude", "capacity_Mbpd"},
		{"R1", "A", "Illinois", 41., -88., 1.},
		{"R1", "B", "Illinois", 42., -89., 2.},
	})
	_, err = LoadRefineries(fp)
	assert.Error(t, err)
}

func TestNearestRefinery(t *testing.T) {
	refs := []Refinery{
		{SiteID: "R1", Lat: 41.51, Lon: -88.14},
		{SiteID: "R2", Lat: 38.81, Lon: -90.07},
	}
	f := Facility{Lat: 41.84, Lon: -87.72}
	j, km := NearestRefinery(&f, refs)
	assert.Equal(t, 0, j)
	assert.Less(t, km, 60.)

	j, km = NearestRefinery(&f, nil)
	assert.Equal(t, -1, j)
	assert.True(t, math.IsNaN(km))
}

func TestAnalyzeWithRouting(t *testing.T) {
	dir := t.TempDir()
	facs, err := LoadFacilities(facilityWB(t, dir))
	require.NoError(t, err)
	refs, err := LoadRefineries(refineryWB(t, dir))
	require.NoError(t, err)
	ses, err := LoadStateTable(stateWB(t, dir))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"distance_km": 52.7}`)
	}))
	defer srv.Close()
	dc := NewHTTPDistanceClient(srv.URL)
	dc.MinInterval = 0

	recs, err := Analyze(facs, refs, ses, dc)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "R1", recs[0].Refinery.SiteID)
	assert.InDelta(t, 52.7, recs[0].DrivingKm, 1e-12)
	assert.InDelta(t, 9.4, recs[0].ElecPriceCtPerKWh, 1e-12)

	fp := filepath.Join(dir, "out.xlsx")
	require.NoError(t, WriteRecords(fp, recs))
	f, err := excelize.OpenFile(fp)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetCellValue("Records", "A2")
	require.NoError(t, err)
	assert.Equal(t, "METRO STP", got)
}

func TestRoutingFailureKeepsRecord(t *testing.T) {
	dir := t.TempDir()
	facs, err := LoadFacilities(facilityWB(t, dir))
	require.NoError(t, err)
	refs, err := LoadRefineries(refineryWB(t, dir))
	require.NoError(t, err)
	ses, err := LoadStateTable(stateWB(t, dir))
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	dc := NewHTTPDistanceClient(srv.URL)
	dc.MinInterval = 0
	dc.Backoff = time.Millisecond

	recs, err := Analyze(facs, refs, ses, dc)
	require.NoError(t, err)
	require.Len(t, recs, 2) // failed records are kept, not dropped
	assert.True(t, math.IsNaN(recs[0].DrivingKm))
	assert.True(t, math.IsNaN(recs[0].SludgePerKm()))
	assert.Equal(t, 2*(dc.MaxRetries+1), hits)
}

func TestIntensityGuards(t *testing.T) {
	r := Record{Facility: Facility{FlowMGD: 0., Landfill: 100.}, DrivingKm: 0.}
	assert.True(t, math.IsNaN(r.EmissionPerFlow()))
	assert.True(t, math.IsNaN(r.SludgePerFlow()))
	assert.True(t, math.IsNaN(r.SludgePerKm()))

	r.FlowMGD, r.DrivingKm = 10., 25.
	assert.InDelta(t, 10., r.SludgePerFlow(), 1e-12)
	assert.InDelta(t, 4., r.SludgePerKm(), 1e-12)
}

func TestAnalyzeMissingState(t *testing.T) {
	facs := []Facility{{Name: "X", State: "Nowhere"}}
	refs := []Refinery{{SiteID: "R1"}}
	_, err := Analyze(facs, refs, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in electricity table")
}
