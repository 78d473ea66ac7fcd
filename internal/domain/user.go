package domain

import "time"

// User is the domain model for account holders who track support cases.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	// ReceiveDailyReports / ReceiveWeeklyReports control the scheduled
	// report emails. nil means the user never touched the setting; legacy
	// accounts predate the flags, so nil counts as enabled.
	ReceiveDailyReports  *bool
	ReceiveWeeklyReports *bool

	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WantsReport reports whether the user should receive the scheduled
// report of the given kind.
func (u *User) WantsReport(kind ReportKind) bool {
	var flag *bool
	switch kind {
	case ReportKindDaily:
		flag = u.ReceiveDailyReports
	case ReportKindWeekly:
		flag = u.ReceiveWeeklyReports
	default:
		return false
	}
	return flag == nil || *flag
}

// ReportKind identifies a scheduled report cadence.
type ReportKind string

const (
	ReportKindDaily  ReportKind = "daily"
	ReportKindWeekly ReportKind = "weekly"
)
