package adapters

import (
	"context"
	"time"

	"bankrates/internal/domain"
)

type RateSource interface {
	Fetch(ctx context.Context, endpoint domain.BankEndpoint) (domain.Quote, bool)
}

type RateStore interface {
	Append(ctx context.Context, snapshot domain.Snapshot, at time.Time) error
	Since(ctx context.Context, since time.Time) ([]domain.RateObservation, error)
}

type ExportCache interface {
	Get(window time.Duration) ([]byte, bool)
	Set(window time.Duration, data []byte)
	Clear()
}
