package filings

import "time"

// Status is the lifecycle state of a filing.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusCompleted Status = "Completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
// Pending becomes Paid only through a successful charge, Paid becomes
// Completed only through transcript generation, and a Completed filing may
// regenerate its transcript in place.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPaid
	case StatusPaid:
		return next == StatusCompleted
	case StatusCompleted:
		return next == StatusCompleted
	}
	return false
}

// Filing represents a beneficial-ownership-information filing owned by a user.
type Filing struct {
	ID            string
	UserID        string
	Status        Status
	FilingDate    time.Time
	CompanyName   string
	DocumentKey   string
	DocumentName  string
	TranscriptKey string
	ChargeID      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
