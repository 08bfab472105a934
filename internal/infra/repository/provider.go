package repository

import (
	"context"

	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/infra/db"
	"mindvale-server/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderRepository is the write side of the slot store. Slot occupancy has a
// unique key (provider_id, slot_date, slot_time, channel), so reservation is a
// single conditional update checked by affected-row count.
type ProviderRepository struct {
	pool *pgxpool.Pool
}

func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

func (r *ProviderRepository) FindSnapshot(ctx context.Context, id uuid.UUID) (*commands.ProviderSnapshot, error) {
	const query = `
		SELECT id, name, title, price_amount, price_currency, is_active
		FROM providers
		WHERE id = $1
	`
	var snap commands.ProviderSnapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.Title,
		&snap.PriceAmount,
		&snap.PriceCurrency,
		&snap.Active,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("provider not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find provider", err)
	}
	return &snap, nil
}

func (r *ProviderRepository) MarkSlotBooked(ctx context.Context, q db.Querier, providerID uuid.UUID, key slot.Key) error {
	const query = `
		UPDATE slots
		SET is_booked = TRUE, updated_at = now()
		WHERE provider_id = $1
		  AND slot_date = $2
		  AND slot_time = $3
		  AND channel = $4
		  AND is_booked = FALSE
	`
	tag, err := q.Exec(ctx, query, providerID, key.Date, key.Time.String(), key.Channel.String())
	if err != nil {
		return infra.WrapRepoErr("failed to mark slot booked", err)
	}
	if tag.RowsAffected() == 0 {
		// Already booked, wrong channel, or no such slot: indistinguishable to
		// the caller and all mean "pick another slot".
		return infra.WrapRepoErr("slot is not available", nil, infra.KindConflict)
	}
	return nil
}

func (r *ProviderRepository) MarkSlotAvailable(ctx context.Context, q db.Querier, providerID uuid.UUID, key slot.Key) error {
	const query = `
		UPDATE slots
		SET is_booked = FALSE, updated_at = now()
		WHERE provider_id = $1
		  AND slot_date = $2
		  AND slot_time = $3
		  AND channel = $4
		  AND is_booked = TRUE
	`
	if _, err := q.Exec(ctx, query, providerID, key.Date, key.Time.String(), key.Channel.String()); err != nil {
		return infra.WrapRepoErr("failed to mark slot available", err)
	}
	// Zero rows affected is fine: releasing an absent or already-free slot is
	// a no-op by contract.
	return nil
}
