// Package export renders support cases into xlsx workbooks for download
// and email attachments.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

// SheetName is the single worksheet holding the exported cases.
const SheetName = "Support Cases"

// timeLayout matches the localized datetime strings shown in exports.
const timeLayout = "02.01.2006 15:04"

var headers = []string{
	"Case ID",
	"Company",
	"Contact Person",
	"Topic",
	"Details",
	"Status",
	"Contact Method",
	"Opened At",
	"Closed At",
}

var columnWidths = []float64{24, 20, 20, 30, 50, 10, 14, 20, 20}

// BuildWorkbook produces a workbook with one row per case. Output is
// deterministic for a given case list and location.
func BuildWorkbook(cases []domain.SupportCase, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, sc := range cases {
		closedAt := "N/A"
		if sc.ClosedAt != nil {
			closedAt = sc.ClosedAt.In(loc).Format(timeLayout)
		}
		values := []any{
			sc.ID,
			sc.CompanyName,
			sc.Person,
			sc.Topic,
			sc.Details,
			string(sc.Status),
			string(sc.ContactMethod),
			sc.OpenedAt.In(loc).Format(timeLayout),
			closedAt,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// Filename returns the dated export filename, e.g. SupportCases_2025-03-14.xlsx.
func Filename(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("SupportCases_%s.xlsx", now.In(loc).Format("2006-01-02"))
}
