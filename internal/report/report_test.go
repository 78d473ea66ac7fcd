package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ebolarium/baplikasyon/internal/domain"
	"github.com/ebolarium/baplikasyon/internal/report"
)

func caseAt(company string, openedAt time.Time, closedAfter time.Duration) domain.SupportCase {
	sc := domain.SupportCase{
		CompanyName:   company,
		Person:        "Jane Doe",
		Topic:         "Printer offline",
		Details:       "Device does not respond.",
		Status:        domain.CaseStatusOpen,
		ContactMethod: domain.ContactMethodOnline,
		OpenedAt:      openedAt,
	}
	if closedAfter > 0 {
		closedAt := openedAt.Add(closedAfter)
		sc.Status = domain.CaseStatusClosed
		sc.ClosedAt = &closedAt
	}
	return sc
}

func TestSummarizeEmpty(t *testing.T) {
	summary := report.Summarize(nil, time.Now(), time.UTC)

	require.Zero(t, summary.TotalCases)
	require.Zero(t, summary.OpenCases)
	require.Zero(t, summary.ClosedCases)
	require.Zero(t, summary.AverageResolutionDays)
	require.Empty(t, summary.CasesByCompany)
}

func TestSummarizeCounts(t *testing.T) {
	// Wednesday, 2025-03-12. The week starts Monday 2025-03-10, the
	// month on 2025-03-01.
	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

	cases := []domain.SupportCase{
		caseAt("Acme", now.Add(-2*time.Hour), 0),                                      // open, this week
		caseAt("Acme", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 36*time.Hour), // closed, week boundary inclusive
		caseAt("Globex", time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC), 12*time.Hour), // Sunday: last week, this month
		caseAt("Initech", time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC), 0),       // last month
	}

	summary := report.Summarize(cases, now, time.UTC)

	require.Equal(t, 4, summary.TotalCases)
	require.Equal(t, 2, summary.OpenCases)
	require.Equal(t, 2, summary.ClosedCases)
	require.Equal(t, 2, summary.ThisWeekCases)
	require.Equal(t, 3, summary.ThisMonthCases)
	require.Equal(t, map[string]int{"Acme": 2, "Globex": 1, "Initech": 1}, summary.CasesByCompany)

	// (1.5 + 0.5) / 2 resolved cases
	require.InDelta(t, 1.0, summary.AverageResolutionDays, 0.001)
}

func TestSummarizeAverageIgnoresOpenCases(t *testing.T) {
	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

	onlyOpen := []domain.SupportCase{
		caseAt("Acme", now.Add(-48*time.Hour), 0),
		caseAt("Acme", now.Add(-24*time.Hour), 0),
	}
	summary := report.Summarize(onlyOpen, now, time.UTC)
	require.Zero(t, summary.AverageResolutionDays, "no closed cases means no average")

	mixed := append(onlyOpen, caseAt("Acme", now.Add(-72*time.Hour), 24*time.Hour))
	summary = report.Summarize(mixed, now, time.UTC)
	require.InDelta(t, 1.0, summary.AverageResolutionDays, 0.001, "open cases do not dilute the average")
}

func TestSummarizeSundayBelongsToCurrentWeek(t *testing.T) {
	// Sunday, 2025-03-16. Its week started Monday 2025-03-10.
	now := time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC)

	cases := []domain.SupportCase{
		caseAt("Acme", time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), 0),
		caseAt("Acme", time.Date(2025, time.March, 9, 8, 0, 0, 0, time.UTC), 0),
	}
	summary := report.Summarize(cases, now, time.UTC)
	require.Equal(t, 1, summary.ThisWeekCases)
}

func TestSummarizeUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 2025-03-01 01:00 in UTC+3 is still 2025-02-28 22:00 UTC, so the
	// local calendar is already in March while UTC is in February.
	now := time.Date(2025, time.March, 1, 1, 0, 0, 0, loc)

	cases := []domain.SupportCase{
		caseAt("Acme", time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC), 0),
	}

	require.Zero(t, report.Summarize(cases, now, loc).ThisMonthCases,
		"mid-February case predates the local month of March")
	require.Equal(t, 1, report.Summarize(cases, now, time.UTC).ThisMonthCases,
		"in UTC the month is still February, so the case is in window")
}

func TestSummarizeIsDeterministic(t *testing.T) {
	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)
	cases := []domain.SupportCase{
		caseAt("Acme", now.Add(-2*time.Hour), 0),
		caseAt("Globex", now.Add(-30*time.Hour), 6*time.Hour),
	}

	first := report.Summarize(cases, now, time.UTC)
	second := report.Summarize(cases, now, time.UTC)
	require.Equal(t, first, second)
}
