package transcripts

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"filing-backend/internal/filings"
	"filing-backend/internal/shared/storage/object"
)

// Service renders transcripts and records where they live.
type Service struct {
	Filings filings.Repo
	Store   object.ObjectStore
}

// Key returns the deterministic storage key for a filing's transcript.
// Regeneration overwrites the same object.
func Key(filingID string) string {
	return path.Join("transcripts", filingID+".pdf")
}

// Get returns the filing backing a transcript request.
func (s *Service) Get(ctx context.Context, filingID string) (filings.Filing, error) {
	return s.Filings.GetByID(ctx, filingID)
}

// Generate renders the transcript, stores it at the filing's deterministic
// key, and transitions Paid -> Completed. A Pending filing cannot have a
// transcript; a Completed one regenerates in place.
func (s *Service) Generate(ctx context.Context, filingID string) (filings.Filing, error) {
	filing, err := s.Filings.GetByID(ctx, filingID)
	if err != nil {
		return filings.Filing{}, err
	}
	if !filing.Status.CanTransition(filings.StatusCompleted) {
		return filings.Filing{}, filings.ErrInvalidTransition
	}

	var buf bytes.Buffer
	if err := Render(&buf, filing); err != nil {
		return filings.Filing{}, fmt.Errorf("render transcript: %w", err)
	}

	key := Key(filingID)
	if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", &buf); err != nil {
		return filings.Filing{}, fmt.Errorf("store transcript: %w", err)
	}

	if err := s.Filings.SetTranscript(ctx, filingID, key); err != nil {
		return filings.Filing{}, err
	}

	filing.Status = filings.StatusCompleted
	filing.TranscriptKey = key
	return filing, nil
}
