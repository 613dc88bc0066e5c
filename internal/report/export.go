package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/rr-analyzer/internal/models"
)

const summarySheet = "Summary"

// WriteCSV writes the metric summaries as a CSV table
func WriteCSV(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(SummaryHeaders); err != nil {
		return err
	}
	if err := w.WriteAll(r.SummaryRows()); err != nil {
		return err
	}
	return w.Error()
}

// WriteXLSX writes a workbook with a summary sheet and one sheet per metric
// holding its stream and frequency profile
func WriteXLSX(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeRows(f, summarySheet, SummaryHeaders, r.SummaryRows()); err != nil {
		return err
	}

	for _, s := range r.Summaries {
		sheet := string(s.Metric)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeMetricSheet(f, sheet, r.Streams.Stream(s.Metric), s.Profile); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save xlsx report: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMetricSheet puts the raw stream in column A and the binned profile in
// columns C and D
func writeMetricSheet(f *excelize.File, sheet string, stream []int, profile models.FrequencyProfile) error {
	headers := map[string]string{"A1": "difference", "C1": "bin", "D1": "count"}
	for cell, h := range headers {
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, v := range stream {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	counts := profile.Aligned()
	for i, edge := range profile.Support {
		binCell, _ := excelize.CoordinatesToCellName(3, i+2)
		countCell, _ := excelize.CoordinatesToCellName(4, i+2)
		if err := f.SetCellValue(sheet, binCell, edge); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, countCell, counts[i]); err != nil {
			return err
		}
	}
	return nil
}
