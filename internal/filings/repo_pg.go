package filings

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const filingColumns = `id, user_id, status, filing_date, company_name, document_key, document_name, transcript_key, charge_id, created_at, updated_at`

// Create inserts a new filing.
func (r *PGRepo) Create(ctx context.Context, filing Filing) error {
	const query = `
INSERT INTO filings (
    id,
    user_id,
    status,
    filing_date,
    company_name,
    document_key,
    document_name,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	status := filing.Status
	if status == "" {
		status = StatusPending
	}

	var documentKey sql.NullString
	if filing.DocumentKey != "" {
		documentKey = sql.NullString{String: filing.DocumentKey, Valid: true}
	}
	var documentName sql.NullString
	if filing.DocumentName != "" {
		documentName = sql.NullString{String: filing.DocumentName, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		filing.ID,
		filing.UserID,
		status,
		filing.FilingDate,
		filing.CompanyName,
		documentKey,
		documentName,
		filing.CreatedAt,
	)
	return err
}

// GetByID fetches a filing by ID.
func (r *PGRepo) GetByID(ctx context.Context, filingID string) (Filing, error) {
	const query = `
SELECT ` + filingColumns + `
FROM filings
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, filingID)
	filing, err := scanFiling(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Filing{}, ErrNotFound
		}
		return Filing{}, err
	}
	return filing, nil
}

// ListByUser returns filings owned by a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Filing, error) {
	const query = `
SELECT ` + filingColumns + `
FROM filings
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFilings(rows)
}

// ListAll returns every filing system-wide, newest first.
func (r *PGRepo) ListAll(ctx context.Context) ([]Filing, error) {
	const query = `
SELECT ` + filingColumns + `
FROM filings
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFilings(rows)
}

// MarkPaid transitions Pending -> Paid, recording the charge id. The WHERE
// clause makes the transition atomic under concurrent submissions.
func (r *PGRepo) MarkPaid(ctx context.Context, filingID, chargeID string) error {
	const query = `
UPDATE filings
SET status = $1, charge_id = $2, updated_at = now()
WHERE id = $3 AND status = $4`
	res, err := r.DB.ExecContext(ctx, query, StatusPaid, chargeID, filingID, StatusPending)
	if err != nil {
		return err
	}
	return r.checkTransition(ctx, res, filingID)
}

// SetTranscript records the transcript key, moving Paid -> Completed.
func (r *PGRepo) SetTranscript(ctx context.Context, filingID, transcriptKey string) error {
	const query = `
UPDATE filings
SET transcript_key = $1, status = $2, updated_at = now()
WHERE id = $3 AND status IN ($4, $5)`
	res, err := r.DB.ExecContext(ctx, query, transcriptKey, StatusCompleted, filingID, StatusPaid, StatusCompleted)
	if err != nil {
		return err
	}
	return r.checkTransition(ctx, res, filingID)
}

func (r *PGRepo) checkTransition(ctx context.Context, res sql.Result, filingID string) error {
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated > 0 {
		return nil
	}
	// Zero rows: either the filing does not exist or its status blocked the
	// transition. Look it up to report which.
	if _, err := r.GetByID(ctx, filingID); err != nil {
		return err
	}
	return ErrInvalidTransition
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFiling(row rowScanner) (Filing, error) {
	var f Filing
	var documentKey sql.NullString
	var documentName sql.NullString
	var transcriptKey sql.NullString
	var chargeID sql.NullString
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.Status,
		&f.FilingDate,
		&f.CompanyName,
		&documentKey,
		&documentName,
		&transcriptKey,
		&chargeID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return Filing{}, err
	}
	if documentKey.Valid {
		f.DocumentKey = documentKey.String
	}
	if documentName.Valid {
		f.DocumentName = documentName.String
	}
	if transcriptKey.Valid {
		f.TranscriptKey = transcriptKey.String
	}
	if chargeID.Valid {
		f.ChargeID = chargeID.String
	}
	return f, nil
}

func collectFilings(rows *sql.Rows) ([]Filing, error) {
	var out []Filing
	for rows.Next() {
		filing, err := scanFiling(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, filing)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
