package geosp

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

// WriteRecords saves the joined records to a workbook, one facility
// per row, blank cells for unresolved distances.
func WriteRecords(fp string, recs []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Records"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("WriteRecords: %w", err)
	}
	hdr := []interface{}{
		"facility", "city", "state", "CWNS", "facility_code",
		"flow_2022_MGD", "total_sludge_kg_per_year", "total_emission_kg_per_day",
		"site_id", "linear_distance_km", "real_distance_km",
		"electricity_price", "electricity_GHG",
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("WriteRecords: %w", err)
	}
	blankNaN := func(v float64) interface{} {
		if math.IsNaN(v) {
			return nil
		}
		return v
	}
	for k, r := range recs {
		row := []interface{}{
			r.Name, r.City, r.State, r.CWNS, r.Code,
			r.FlowMGD, r.TotalSludge(), r.TotalEmission(),
			r.Refinery.SiteID, blankNaN(r.LinearKm), blankNaN(r.DrivingKm),
			r.ElecPriceCtPerKWh, r.ElecGHGkgPerKWh,
		}
		cell, _ := excelize.CoordinatesToCellName(1, k+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("WriteRecords: %w", err)
		}
	}
	f.DeleteSheet("Sheet1")
	return f.SaveAs(fp)
}
