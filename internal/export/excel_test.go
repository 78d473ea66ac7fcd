package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/export"
)

func TestBuildWorkbook(t *testing.T) {
	openedAt := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	closedAt := time.Date(2025, time.March, 11, 16, 45, 0, 0, time.UTC)

	cases := []domain.SupportCase{
		{
			ID:            "case-1",
			CompanyName:   "Acme Corp",
			Person:        "Jane Doe",
			Topic:         "Printer offline",
			Details:       "Device does not respond.",
			Status:        domain.CaseStatusClosed,
			ContactMethod: domain.ContactMethodPhone,
			OpenedAt:      openedAt,
			ClosedAt:      &closedAt,
		},
		{
			ID:            "case-2",
			CompanyName:   "Globex",
			Person:        "John Roe",
			Topic:         "VPN drops",
			Details:       "Disconnects every hour.",
			Status:        domain.CaseStatusOpen,
			ContactMethod: domain.ContactMethodOnline,
			OpenedAt:      openedAt,
		},
	}

	wb, err := export.BuildWorkbook(cases, time.UTC)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{export.SheetName}, wb.GetSheetList(), "workbook has a single renamed sheet")

	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per case")

	require.Equal(t, []string{
		"Case ID", "Company", "Contact Person", "Topic", "Details",
		"Status", "Contact Method", "Opened At", "Closed At",
	}, rows[0])

	require.Equal(t, []string{
		"case-1", "Acme Corp", "Jane Doe", "Printer offline", "Device does not respond.",
		"closed", "phone", "10.03.2025 09:30", "11.03.2025 16:45",
	}, rows[1])

	require.Equal(t, "case-2", rows[2][0])
	require.Equal(t, "open", rows[2][5])
	require.Equal(t, "N/A", rows[2][8], "open cases export a placeholder closed timestamp")
}

func TestBuildWorkbookLocalizesTimes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	openedAt := time.Date(2025, time.March, 10, 22, 0, 0, 0, time.UTC)

	cases := []domain.SupportCase{
		{
			ID:            "case-1",
			CompanyName:   "Acme Corp",
			Person:        "Jane Doe",
			Topic:         "Printer offline",
			Details:       "Device does not respond.",
			Status:        domain.CaseStatusOpen,
			ContactMethod: domain.ContactMethodOnline,
			OpenedAt:      openedAt,
		},
	}

	wb, err := export.BuildWorkbook(cases, loc)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Equal(t, "11.03.2025 01:00", rows[1][7], "opened timestamp shifts into the export timezone")
}

func TestBuildWorkbookEmpty(t *testing.T) {
	wb, err := export.BuildWorkbook(nil, time.UTC)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row")
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, time.March, 14, 23, 30, 0, 0, time.UTC)
	require.Equal(t, "SupportCases_2025-03-14.xlsx", export.Filename(now, time.UTC))

	loc := time.FixedZone("UTC+3", 3*60*60)
	require.Equal(t, "SupportCases_2025-03-15.xlsx", export.Filename(now, loc),
		"the date in the filename follows the export timezone")
}
