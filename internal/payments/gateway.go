package payments

import (
	"context"
	"fmt"
)

// ChargeRequest describes a single charge to submit to the provider.
type ChargeRequest struct {
	AmountCents    int64
	Currency       string
	Description    string
	SourceToken    string
	IdempotencyKey string
}

// ChargeResult carries the provider's identifier for a successful charge.
type ChargeResult struct {
	ChargeID string
}

// Gateway submits charge requests to an external payment provider.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// GatewayError is a charge rejection reported by the provider. Message is
// safe to show to the end user.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected charge (%s): %s", e.Code, e.Message)
}

// Placeholder is used when no gateway credentials are configured.
type Placeholder struct{}

func (Placeholder) Charge(context.Context, ChargeRequest) (ChargeResult, error) {
	return ChargeResult{}, &GatewayError{Code: "not_configured", Message: "payment gateway not configured"}
}
