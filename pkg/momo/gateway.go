// Package momo models the two-phase mobile-money push-and-PIN flow: an
// initiate call that raises a payment prompt on the customer's phone and a
// confirm call that settles it.
package momo

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the mobile-money collaborator. The production binding talks to
// the carrier; the simulated binding resolves after a fixed delay.
type Gateway interface {
	// Initiate starts a collection against a subscriber number and returns
	// the transaction reference.
	Initiate(ctx context.Context, phoneNumber string, amount decimal.Decimal) (string, error)
	// Confirm settles a previously initiated collection.
	Confirm(ctx context.Context, reference string) error
}
