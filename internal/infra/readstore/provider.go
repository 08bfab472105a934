package readstore

import (
	"context"
	"time"

	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProviderReadStore struct {
	pool *pgxpool.Pool
}

func NewProviderReadStore(pool *pgxpool.Pool) *ProviderReadStore {
	return &ProviderReadStore{pool: pool}
}

func (r *ProviderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProviderView, error) {
	const query = `
		SELECT id, name, title, price_amount, price_currency, session_minutes, is_active
		FROM providers
		WHERE id = $1
	`
	var view queries.ProviderView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&view.ID,
		&view.Name,
		&view.Title,
		&view.PriceAmount,
		&view.PriceCurrency,
		&view.SessionMinutes,
		&view.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("provider not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find provider by ID", err)
	}
	return &view, nil
}

func (r *ProviderReadStore) ListActive(ctx context.Context) ([]*queries.ProviderView, error) {
	const query = `
		SELECT id, name, title, price_amount, price_currency, session_minutes, is_active
		FROM providers
		WHERE is_active = TRUE
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list providers", err)
	}
	defer rows.Close()

	var views []*queries.ProviderView
	for rows.Next() {
		var view queries.ProviderView
		if err := rows.Scan(
			&view.ID,
			&view.Name,
			&view.Title,
			&view.PriceAmount,
			&view.PriceCurrency,
			&view.SessionMinutes,
			&view.IsActive,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan provider", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read providers", err)
	}
	return views, nil
}

func (r *ProviderReadStore) SlotsByProvider(ctx context.Context, providerID uuid.UUID) ([]slot.Slot, error) {
	const query = `
		SELECT slot_date, slot_time, channel, is_booked
		FROM slots
		WHERE provider_id = $1
		ORDER BY slot_date, slot_time
	`
	rows, err := r.pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load provider slots", err)
	}
	defer rows.Close()

	var slots []slot.Slot
	for rows.Next() {
		var (
			date      time.Time
			timeLabel string
			channel   string
			isBooked  bool
		)
		if err := rows.Scan(&date, &timeLabel, &channel, &isBooked); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		slots = append(slots, slot.Slot{
			Key: slot.Key{
				Date:    slot.TruncateToDate(date),
				Time:    slot.TimeOfDay(timeLabel),
				Channel: slot.Channel(channel),
			},
			IsBooked: isBooked,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read provider slots", err)
	}
	return slots, nil
}
