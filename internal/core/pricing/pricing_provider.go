package pricing

import (
	"context"
	"errors"
)

// Provider supplies the GPU price table for a run
type Provider interface {
	// LoadTable returns the full price table
	LoadTable(ctx context.Context) (Table, error)

	// GetProviderName returns the name of this pricing provider
	GetProviderName() string
}

// ErrPriceTable is returned when the price table cannot be read or parsed
var ErrPriceTable = errors.New("invalid gpu price table")
