// Package report computes aggregate statistics over a user's support
// cases. Everything here is pure: the same case set, reference time and
// location always produce the same summary.
package report

import (
	"time"

	"github.com/ebolarium/baplikasyon/internal/domain"
)

const hoursPerDay = 24

// Summary holds the aggregate figures shown on the reports dashboard.
type Summary struct {
	TotalCases            int            `json:"totalCases"`
	OpenCases             int            `json:"openCases"`
	ClosedCases           int            `json:"closedCases"`
	AverageResolutionDays float64        `json:"averageResolutionDays"`
	ThisWeekCases         int            `json:"thisWeekCases"`
	ThisMonthCases        int            `json:"thisMonthCases"`
	CasesByCompany        map[string]int `json:"casesByCompany"`
}

// Summarize aggregates the given cases relative to now. Calendar windows
// are evaluated in loc; weeks start on Monday.
func Summarize(cases []domain.SupportCase, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	summary := Summary{CasesByCompany: make(map[string]int)}

	var resolvedDays float64
	var resolvedCount int

	for _, sc := range cases {
		summary.TotalCases++
		summary.CasesByCompany[sc.CompanyName]++

		if sc.Status == domain.CaseStatusClosed {
			summary.ClosedCases++
			if sc.ClosedAt != nil {
				resolvedDays += sc.ClosedAt.Sub(sc.OpenedAt).Hours() / hoursPerDay
				resolvedCount++
			}
		} else {
			summary.OpenCases++
		}

		openedAt := sc.OpenedAt.In(loc)
		if !openedAt.Before(weekStart) {
			summary.ThisWeekCases++
		}
		if !openedAt.Before(monthStart) {
			summary.ThisMonthCases++
		}
	}

	if resolvedCount > 0 {
		summary.AverageResolutionDays = resolvedDays / float64(resolvedCount)
	}

	return summary
}

// startOfWeek returns midnight of the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
