package filings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Filing
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Filing)}
}

// Create stores a new filing.
func (r *MemoryRepo) Create(ctx context.Context, filing Filing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filing.Status == "" {
		filing.Status = StatusPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[filing.ID] = filing
	return nil
}

// GetByID returns a filing by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, filingID string) (Filing, error) {
	if err := ctx.Err(); err != nil {
		return Filing{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	filing, ok := r.data[filingID]
	if !ok {
		return Filing{}, ErrNotFound
	}
	return filing, nil
}

// ListByUser returns filings owned by a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Filing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Filing
	for _, f := range r.data {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListAll returns every filing, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Filing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Filing, 0, len(r.data))
	for _, f := range r.data {
		out = append(out, f)
	}
	sortNewestFirst(out)
	return out, nil
}

// MarkPaid transitions Pending -> Paid and records the charge id.
func (r *MemoryRepo) MarkPaid(ctx context.Context, filingID, chargeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	filing, ok := r.data[filingID]
	if !ok {
		return ErrNotFound
	}
	if !filing.Status.CanTransition(StatusPaid) {
		return ErrInvalidTransition
	}
	filing.Status = StatusPaid
	filing.ChargeID = chargeID
	filing.UpdatedAt = time.Now().UTC()
	r.data[filingID] = filing
	return nil
}

// SetTranscript records the transcript key, moving Paid -> Completed.
func (r *MemoryRepo) SetTranscript(ctx context.Context, filingID, transcriptKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	filing, ok := r.data[filingID]
	if !ok {
		return ErrNotFound
	}
	if !filing.Status.CanTransition(StatusCompleted) {
		return ErrInvalidTransition
	}
	filing.Status = StatusCompleted
	filing.TranscriptKey = transcriptKey
	filing.UpdatedAt = time.Now().UTC()
	r.data[filingID] = filing
	return nil
}

func sortNewestFirst(list []Filing) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
