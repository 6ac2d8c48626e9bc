// Package geosp joins national biosolids inventories to petroleum
// refineries and state electricity factors: workbook input, nearest-
// refinery assignment, driving distances through a pluggable client,
// and per-facility decarbonization metrics.
package geosp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
	"github.com/xuri/excelize/v2"
)

// Facility is one water resource recovery facility record. Sludge
// management masses are kg/yr; emissions are kg CO2e/d.
type Facility struct {
	Name, City, State string
	CWNS, Code        string
	Lat, Lon          float64
	FlowMGD           float64

	Landfill, LandApplication, Incineration, OtherManagement float64

	CH4, N2O, CO2, Biosolids, Electricity, NaturalGas, NonCombustion float64
}

// TotalSludge sums the management routes [kg/yr].
func (f *Facility) TotalSludge() float64 {
	return f.Landfill + f.LandApplication + f.Incineration + f.OtherManagement
}

// TotalEmission sums the emission columns [kg CO2e/d].
func (f *Facility) TotalEmission() float64 {
	return f.CH4 + f.N2O + f.CO2 + f.Biosolids + f.Electricity + f.NaturalGas + f.NonCombustion
}

// Refinery is one petroleum refinery site.
type Refinery struct {
	SiteID, Name, State string
	Lat, Lon            float64
	CapacityMbpd        float64
}

// StateEnergy carries a state's electricity price and grid carbon
// intensity.
type StateEnergy struct {
	Name          string
	PriceCtPerKWh float64
	GHGkgPerKWh   float64
}

// header resolves column positions from the first row, case-insensitive.
type header map[string]int

func headerOf(row []string) header {
	h := header{}
	for i, c := range row {
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return h
}

func (h header) has(name string) bool { _, ok := h[strings.ToLower(name)]; return ok }

func (h header) str(row []string, name string) string {
	i, ok := h[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) num(row []string, name string) (float64, error) {
	s := h.str(row, name)
	if s == "" {
		return 0., nil // blank cells read as zero
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0., fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}

func readSheet(fp, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s[%s]: no data rows", fp, sheet)
	}
	return rows, nil
}

// LoadFacilities reads the facility workbook. Coordinates come from
// LATITUDE/LONGITUDE columns, or from EASTING/NORTHING/UTM_ZONE when
// the survey is projected. Duplicate (CWNS_NUM, FACILITY_CODE) keys
// are rejected up front.
func LoadFacilities(fp string) ([]Facility, error) {
	rows, err := readSheet(fp, "")
	if err != nil {
		return nil, fmt.Errorf("LoadFacilities: %w", err)
	}
	h := headerOf(rows[0])
	utm := !h.has("LATITUDE") && h.has("EASTING")

	out := make([]Facility, 0, len(rows)-1)
	seen := map[string]bool{}
	for k, row := range rows[1:] {
		fc := Facility{
			Name:  h.str(row, "FACILITY"),
			City:  h.str(row, "CITY"),
			State: h.str(row, "STATE"),
			CWNS:  h.str(row, "CWNS_NUM"),
			Code:  h.str(row, "FACILITY_CODE"),
		}
		key := fc.CWNS + "|" + fc.Code
		if seen[key] {
			return nil, fmt.Errorf("LoadFacilities: duplicate key CWNS=%s code=%s (row %d)", fc.CWNS, fc.Code, k+2)
		}
		seen[key] = true

		cols := []struct {
			name string
			dst  *float64
		}{
			{"FLOW_2022_MGD", &fc.FlowMGD},
			{"landfill", &fc.Landfill},
			{"land_application", &fc.LandApplication},
			{"incineration", &fc.Incineration},
			{"other_management", &fc.OtherManagement},
			{"CH4_Emission", &fc.CH4},
			{"N2O_Emission", &fc.N2O},
			{"CO2_Emission", &fc.CO2},
			{"Biosolids_Emission", &fc.Biosolids},
			{"E_Emission", &fc.Electricity},
			{"NG_Emission", &fc.NaturalGas},
			{"NC_Emission", &fc.NonCombustion},
		}
		for _, c := range cols {
			v, err := h.num(row, c.name)
			if err != nil {
				return nil, fmt.Errorf("LoadFacilities row %d: %w", k+2, err)
			}
			*c.dst = v
		}

		if utm {
			e, err1 := h.num(row, "EASTING")
			n, err2 := h.num(row, "NORTHING")
			z, err3 := h.num(row, "UTM_ZONE")
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("LoadFacilities row %d: bad projected coordinates", k+2)
			}
			lat, lon, err := UTM.ToLatLon(e, n, int(z), "", true)
			if err != nil {
				return nil, fmt.Errorf("LoadFacilities row %d: %w", k+2, err)
			}
			fc.Lat, fc.Lon = lat, lon
		} else {
			if fc.Lat, err = h.num(row, "LATITUDE"); err != nil {
				return nil, fmt.Errorf("LoadFacilities row %d: %w", k+2, err)
			}
			if fc.Lon, err = h.num(row, "LONGITUDE"); err != nil {
				return nil, fmt.Errorf("LoadFacilities row %d: %w", k+2, err)
			}
		}
		out = append(out, fc)
	}
	return out, nil
}

// LoadRefineries reads the refinery workbook, rejecting duplicate site
// IDs up front.
func LoadRefineries(fp string) ([]Refinery, error) {
	rows, err := readSheet(fp, "")
	if err != nil {
		return nil, fmt.Errorf("LoadRefineries: %w", err)
	}
	h := headerOf(rows[0])
	out := make([]Refinery, 0, len(rows)-1)
	seen := map[string]bool{}
	for k, row := range rows[1:] {
		r := Refinery{
			SiteID: h.str(row, "site_id"),
			Name:   h.str(row, "Company"),
			State:  h.str(row, "State"),
		}
		if seen[r.SiteID] {
			return nil, fmt.Errorf("LoadRefineries: duplicate site_id %s (row %d)", r.SiteID, k+2)
		}
		seen[r.SiteID] = true
		if r.Lat, err = h.num(row, "Latitude"); err != nil {
			return nil, fmt.Errorf("LoadRefineries row %d: %w", k+2, err)
		}
		if r.Lon, err = h.num(row, "Longitude"); err != nil {
			return nil, fmt.Errorf("LoadRefineries row %d: %w", k+2, err)
		}
		if r.CapacityMbpd, err = h.num(row, "capacity_Mbpd"); err != nil {
			return nil, fmt.Errorf("LoadRefineries row %d: %w", k+2, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadStateTable reads the state electricity summary sheet, rejecting
// duplicate state names up front.
func LoadStateTable(fp string) ([]StateEnergy, error) {
	rows, err := readSheet(fp, "summary")
	if err != nil {
		return nil, fmt.Errorf("LoadStateTable: %w", err)
	}
	h := headerOf(rows[0])
	out := make([]StateEnergy, 0, len(rows)-1)
	seen := map[string]bool{}
	for k, row := range rows[1:] {
		se := StateEnergy{Name: h.str(row, "name")}
		if seen[se.Name] {
			return nil, fmt.Errorf("LoadStateTable: duplicate state %s (row %d)", se.Name, k+2)
		}
		seen[se.Name] = true
		if se.PriceCtPerKWh, err = h.num(row, "price"); err != nil {
			return nil, fmt.Errorf("LoadStateTable row %d: %w", k+2, err)
		}
		if se.GHGkgPerKWh, err = h.num(row, "GHG"); err != nil {
			return nil, fmt.Errorf("LoadStateTable row %d: %w", k+2, err)
		}
		out = append(out, se)
	}
	return out, nil
}
