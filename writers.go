package exposan

import (
	"fmt"
	"math"

	"github.com/maseology/mmio"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX saves an uncertainty table to a workbook with three sheets:
// Parameters (sampled values), Results (metric values, blank cells for
// failed samples) and Percentiles. With rank=true a fourth pair of
// sheets carries Spearman rank correlations and their p-values.
func (t *Table) WriteXLSX(fp string, rank bool) error {
	f := excelize.NewFile()
	defer f.Close()

	writeBlock := func(sheet string, hdr []string, rows [][]float64) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, 1)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{"Sample"}); err != nil {
			return err
		}
		hrow := make([]interface{}, len(hdr))
		for i, h := range hdr {
			hrow[i] = h
		}
		cell, _ = excelize.CoordinatesToCellName(2, 1)
		if err := f.SetSheetRow(sheet, cell, &hrow); err != nil {
			return err
		}
		for k, r := range rows {
			row := make([]interface{}, len(r)+1)
			row[0] = k
			for i, v := range r {
				if math.IsNaN(v) {
					row[i+1] = nil
				} else {
					row[i+1] = v
				}
			}
			cell, _ = excelize.CoordinatesToCellName(1, k+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeBlock("Parameters", t.ParamNames, t.Params); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := writeBlock("Results", t.MetricNames, t.Metrics); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}

	if _, err := f.NewSheet("Percentiles"); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	hdr := []interface{}{"Metric"}
	for _, lv := range PercentileLevels {
		hdr = append(hdr, lv)
	}
	f.SetSheetRow("Percentiles", "A1", &hdr)
	for j, q := range t.Percentiles() {
		row := []interface{}{t.MetricNames[j]}
		for _, v := range q {
			if math.IsNaN(v) {
				row = append(row, nil)
			} else {
				row = append(row, v)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, j+2)
		f.SetSheetRow("Percentiles", cell, &row)
	}

	if rank {
		rho, pval := t.Spearman()
		for _, blk := range []struct {
			sheet string
			dat   [][]float64
		}{{"Spearman_r", rho}, {"Spearman_p", pval}} {
			if _, err := f.NewSheet(blk.sheet); err != nil {
				return fmt.Errorf("WriteXLSX: %w", err)
			}
			hdr := []interface{}{"Parameter"}
			for _, mn := range t.MetricNames {
				hdr = append(hdr, mn)
			}
			f.SetSheetRow(blk.sheet, "A1", &hdr)
			for i, r := range blk.dat {
				row := []interface{}{t.ParamNames[i]}
				for _, v := range r {
					if math.IsNaN(v) {
						row = append(row, nil)
					} else {
						row = append(row, v)
					}
				}
				cell, _ := excelize.CoordinatesToCellName(1, i+2)
				f.SetSheetRow(blk.sheet, cell, &row)
			}
		}
	}

	f.DeleteSheet("Sheet1")
	return f.SaveAs(fp)
}

// WriteCSV dumps the metric block to a comma-delimited file, one sample
// per line, NaN for failed rows.
func (t *Table) WriteCSV(fp string) error {
	lns := make([]string, len(t.Metrics)+1)
	lns[0] = "sample"
	for _, mn := range t.MetricNames {
		lns[0] += "," + mn
	}
	for k, r := range t.Metrics {
		lns[k+1] = fmt.Sprint(k)
		for _, v := range r {
			lns[k+1] += fmt.Sprintf(",%g", v)
		}
	}
	mmio.WriteLines(fp, lns)
	return nil
}
