package payments

import (
	"context"
	"fmt"
	"strings"

	"filing-backend/internal/filings"
)

const chargeDescription = "BOI filing fee"

// Service submits the flat filing fee to the gateway and links the charge to
// its filing.
type Service struct {
	Gateway     Gateway
	Filings     filings.Repo
	AmountCents int64
	Currency    string
}

// Summary describes the fee a caller is about to confirm.
type Summary struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// Review returns the payment summary for the review page.
func (s *Service) Review() Summary {
	return Summary{
		AmountCents: s.AmountCents,
		Currency:    s.Currency,
		Description: chargeDescription,
	}
}

// Pay charges the flat fee for the given filing and transitions it to Paid.
// The idempotency key is derived from the filing id, so a resubmitted form
// cannot double-charge. Filings owned by other users read as not found.
func (s *Service) Pay(ctx context.Context, userID, filingID, token string) (filings.Filing, error) {
	filingID = strings.TrimSpace(filingID)
	token = strings.TrimSpace(token)
	if filingID == "" {
		return filings.Filing{}, fmt.Errorf("%w: filing_id is required", filings.ErrInvalidInput)
	}
	if token == "" {
		return filings.Filing{}, fmt.Errorf("%w: payment token is required", filings.ErrInvalidInput)
	}

	filing, err := s.Filings.GetByID(ctx, filingID)
	if err != nil {
		return filings.Filing{}, err
	}
	if filing.UserID != userID {
		return filings.Filing{}, filings.ErrNotFound
	}
	if filing.Status != filings.StatusPending {
		return filings.Filing{}, filings.ErrInvalidTransition
	}

	result, err := s.Gateway.Charge(ctx, ChargeRequest{
		AmountCents:    s.AmountCents,
		Currency:       s.Currency,
		Description:    chargeDescription,
		SourceToken:    token,
		IdempotencyKey: IdempotencyKey(filingID),
	})
	if err != nil {
		return filings.Filing{}, err
	}

	if err := s.Filings.MarkPaid(ctx, filingID, result.ChargeID); err != nil {
		return filings.Filing{}, err
	}

	filing.Status = filings.StatusPaid
	filing.ChargeID = result.ChargeID
	return filing, nil
}

// IdempotencyKey returns the gateway idempotency key for a filing's fee.
func IdempotencyKey(filingID string) string {
	return "filing-fee-" + filingID
}
