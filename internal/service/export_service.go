package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Results"

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Workbook writes resolve results as an xlsx file: a champion and a lane
// column per player, then the shared skinsets.
func (s *ExportService) Workbook(resp *ResolveResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := make([]string, 0, 2*len(resp.Players)+1)
	for _, p := range resp.Players {
		headers = append(headers, p+" Champion", p+" Lane")
	}
	headers = append(headers, "Skinsets")

	for col, h := range headers {
		if err := setCell(f, col+1, 1, h); err != nil {
			return nil, err
		}
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyleID); err != nil {
		return nil, err
	}

	for i, row := range resp.Rows {
		r := i + 2
		for p, pick := range row.Assignment {
			if err := setCell(f, 2*p+1, r, pick.Champion); err != nil {
				return nil, err
			}
			if err := setCell(f, 2*p+2, r, pick.Lane.String()); err != nil {
				return nil, err
			}
		}
		if err := setCell(f, len(headers), r, strings.Join(row.Skinsets, ", ")); err != nil {
			return nil, err
		}
	}

	if resp.Truncated {
		note := fmt.Sprintf("Showing the first %d results only", len(resp.Rows))
		if err := setCell(f, 1, len(resp.Rows)+3, note); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(exportSheet, cell, value)
}
