package payments

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeGateway charges cards through the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway using the given secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// Charge submits a charge. Stripe rejections come back as *GatewayError with
// the provider's user-facing message; transport failures stay opaque.
func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.SourceToken); err != nil {
		return ChargeResult{}, fmt.Errorf("set charge source: %w", err)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	ch, err := g.api.Charges.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			msg := stripeErr.Msg
			if msg == "" {
				msg = "payment was declined"
			}
			return ChargeResult{}, &GatewayError{Code: string(stripeErr.Code), Message: msg}
		}
		return ChargeResult{}, fmt.Errorf("stripe charge: %w", err)
	}

	return ChargeResult{ChargeID: ch.ID}, nil
}

var _ Gateway = (*StripeGateway)(nil)
