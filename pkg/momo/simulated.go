package momo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SimulatedGateway stands in for the carrier. Every call resolves
// successfully after the configured delay; real failures only exist once a
// production gateway is wired in.
type SimulatedGateway struct {
	delay time.Duration
}

var _ Gateway = (*SimulatedGateway)(nil)

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay}
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(g.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *SimulatedGateway) Initiate(ctx context.Context, phoneNumber string, amount decimal.Decimal) (string, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}
	return NewReference(), nil
}

func (g *SimulatedGateway) Confirm(ctx context.Context, reference string) error {
	return g.wait(ctx)
}
