package filings

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"filing-backend/internal/shared/storage/object"
)

// Service contains business logic for filings.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Create records a new Pending filing dated at submission time.
func (s *Service) Create(ctx context.Context, userID, companyName string) (Filing, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return Filing{}, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	filing := Filing{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      StatusPending,
		FilingDate:  now,
		CompanyName: companyName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, filing); err != nil {
		return Filing{}, err
	}
	return filing, nil
}

// CreateWithDocument stores the identity document and records the filing.
// The document is stored under a server-generated key; the caller-supplied
// name is kept only as metadata.
func (s *Service) CreateWithDocument(ctx context.Context, userID, companyName, fileName string, r io.Reader) (Filing, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return Filing{}, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if fileName == "" || r == nil {
		return Filing{}, fmt.Errorf("%w: identity document is required", ErrInvalidInput)
	}

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Filing{}, fmt.Errorf("store document: %w", err)
	}

	now := time.Now().UTC()
	filing := Filing{
		ID:           uuid.NewString(),
		UserID:       userID,
		Status:       StatusPending,
		FilingDate:   now,
		CompanyName:  companyName,
		DocumentKey:  storageKey,
		DocumentName: fileName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, filing); err != nil {
		return Filing{}, err
	}
	return filing, nil
}

// Get returns a filing by ID.
func (s *Service) Get(ctx context.Context, filingID string) (Filing, error) {
	if strings.TrimSpace(filingID) == "" {
		return Filing{}, fmt.Errorf("%w: filing id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, filingID)
}

// ListByUser returns the caller's filings.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Filing, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// ListAll returns every filing system-wide.
func (s *Service) ListAll(ctx context.Context) ([]Filing, error) {
	return s.Repo.ListAll(ctx)
}
