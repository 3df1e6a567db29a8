package postgres

import (
	"context"
	"fmt"
	"time"

	"bankrates/internal/domain"
	"bankrates/internal/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

// EnsureSchema creates the rates table when it does not exist yet.
func (r *RateRepository) EnsureSchema(ctx context.Context) error {
	if err := db.Migrate(ctx, r.pool.Config().ConnString()); err != nil {
		return fmt.Errorf("%w: failed to ensure schema: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Append stores one row per bank of the snapshot, all stamped with at.
func (r *RateRepository) Append(ctx context.Context, snapshot domain.Snapshot, at time.Time) error {
	if snapshot.Empty() {
		return nil
	}

	const q = `insert into rates (bank, sell, buy, observed_at) values ($1, $2, $3, $4);`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", domain.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, quote := range snapshot {
		batch.Queue(q, quote.Bank, quote.Sell.String(), quote.Buy.String(), at)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%w: failed to insert %d rates: %w", domain.ErrPersistence, len(snapshot), err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Since returns observations made at or after since, oldest first.
func (r *RateRepository) Since(ctx context.Context, since time.Time) ([]domain.RateObservation, error) {
	const q = `
		select id, bank, sell::text, buy::text, observed_at
		from rates
		where observed_at >= $1
		order by observed_at, id;
	`

	rows, err := r.pool.Query(ctx, q, since)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query rates since %s: %w", domain.ErrPersistence, since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	observations := make([]domain.RateObservation, 0, 64)
	for rows.Next() {
		var (
			o         domain.RateObservation
			sell, buy string
		)
		if err = rows.Scan(&o.ID, &o.Bank, &sell, &buy, &o.ObservedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan rate: %w", domain.ErrPersistence, err)
		}
		if o.Sell, err = decimal.NewFromString(sell); err != nil {
			return nil, fmt.Errorf("%w: bad sell value %q for row %d: %w", domain.ErrPersistence, sell, o.ID, err)
		}
		if o.Buy, err = decimal.NewFromString(buy); err != nil {
			return nil, fmt.Errorf("%w: bad buy value %q for row %d: %w", domain.ErrPersistence, buy, o.ID, err)
		}
		observations = append(observations, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating rates: %w", domain.ErrPersistence, err)
	}
	return observations, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
