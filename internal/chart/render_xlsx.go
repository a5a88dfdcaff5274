package chart

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"
)

// workbookRenderer writes an Excel workbook with the sweep on a data
// sheet and a native line chart referencing it. Advisory shaded bands
// and the sketch style have no Excel equivalent and are skipped with a
// warning; the isolation trace goes on a secondary 0-50 dB axis.
type workbookRenderer struct{}

const (
	dataSheet  = "Data"
	chartSheet = "Chart"
)

// Custom number formats giving the chart axes engineering-style ticks
// (1.8M, 3.5k) instead of Excel's General format. Excel allows two
// bracketed conditions per format; values below 1k, negatives
// included, fall through to the last section unscaled.
const (
	frequencyNumFmt = `[>=1000000]0.0,,"M";[>=1000]0.0,"k";0`
	impedanceNumFmt = `[>=1000000]0.0,,"M";[>=1000]0.0,"k";0.##`
)

func (r *workbookRenderer) Render(m *Model, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("chart: %w", closeErr)
		}
	}()

	if len(m.ImpedanceBands) > 0 || len(m.FrequencyBands) > 0 {
		slog.Warn("excel charts cannot draw shaded bands; skipping them", "file", path)
	}

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if err := writeDataSheet(f, m); err != nil {
		return err
	}
	if _, err := f.NewSheet(chartSheet); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if err := addLineChart(f, m); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

func writeDataSheet(f *excelize.File, m *Model) error {
	headers := []string{"Frequency (Hz)"}
	for _, s := range m.Series {
		headers = append(headers, s.Name+" (Ω)")
	}
	if m.Isolation != nil {
		headers = append(headers, "Isolation (dB)")
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		if err := f.SetCellValue(dataSheet, cell, h); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}
	for i, freq := range m.Frequencies {
		row := i + 2
		values := []float64{freq}
		for _, s := range m.Series {
			values = append(values, s.Y[i])
		}
		if m.Isolation != nil {
			values = append(values, m.Isolation[i])
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("chart: %w", err)
			}
			// Excel cells cannot hold non-finite numbers; leave the
			// singular samples blank so the chart skips them.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return fmt.Errorf("chart: %w", err)
			}
		}
	}
	return nil
}

func addLineChart(f *excelize.File, m *Model) error {
	n := len(m.Frequencies)
	categories := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, n+1)
	series := make([]excelize.ChartSeries, len(m.Series))
	for i := range m.Series {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		series[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", dataSheet, col),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, col, col, n+1),
		}
	}

	impedance := newImpedanceChart(m, series)

	if m.Isolation == nil {
		if err := f.AddChart(chartSheet, "A1", impedance); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		return nil
	}

	isoCol, err := excelize.ColumnNumberToName(len(m.Series) + 2)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	axisMin, axisMax := 0.0, IsolationAxisMax
	overlay := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", dataSheet, isoCol),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, isoCol, isoCol, n+1),
		}},
		YAxis: excelize.ChartAxis{
			Secondary: true,
			Minimum:   &axisMin,
			Maximum:   &axisMax,
		},
	}
	if err := f.AddChart(chartSheet, "A1", impedance, overlay); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

func newImpedanceChart(m *Model, series []excelize.ChartSeries) *excelize.Chart {
	return &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: m.Title}},
		XAxis: excelize.ChartAxis{
			Title:  []excelize.RichTextRun{{Text: "Frequency (Hz)"}},
			NumFmt: excelize.ChartNumFmt{CustomNumFmt: frequencyNumFmt},
		},
		YAxis: excelize.ChartAxis{
			Title:  []excelize.RichTextRun{{Text: "Impedance (Ω)"}},
			NumFmt: excelize.ChartNumFmt{CustomNumFmt: impedanceNumFmt},
		},
		// 96 px per inch keeps --width/--height meaningful in Excel.
		Dimension: excelize.ChartDimension{
			Width:  uint(m.Width * 96),
			Height: uint(m.Height * 96),
		},
	}
}
