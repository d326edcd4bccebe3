package filings

import "context"

// Repo defines persistence operations for filings. Status-changing
// operations are guarded: they only apply when the stored status allows the
// transition, and report ErrInvalidTransition otherwise, so concurrent
// writers serialize through the storage engine rather than app-level locks.
type Repo interface {
	Create(ctx context.Context, filing Filing) error
	GetByID(ctx context.Context, filingID string) (Filing, error)
	ListByUser(ctx context.Context, userID string) ([]Filing, error)
	ListAll(ctx context.Context) ([]Filing, error)
	// MarkPaid transitions Pending -> Paid and records the gateway charge id.
	MarkPaid(ctx context.Context, filingID, chargeID string) error
	// SetTranscript records the transcript reference and transitions
	// Paid -> Completed. Regeneration on a Completed filing is allowed.
	SetTranscript(ctx context.Context, filingID, transcriptKey string) error
}
