//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestProvider(t *testing.T, db DBLike, name string, priceAmount int64) uuid.UUID {
	t.Helper()

	providerID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO providers (id, name, title, price_amount, price_currency) VALUES ($1, $2, 'Clinical Psychologist', $3, '₹')",
		providerID, name, priceAmount)
	require.NoError(t, err)

	return providerID
}

func CreateTestSlot(t *testing.T, db DBLike, providerID uuid.UUID, date time.Time, timeLabel, channel string) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO slots (id, provider_id, slot_date, slot_time, channel) VALUES ($1, $2, $3, $4, $5)",
		slotID, providerID, date, timeLabel, channel)
	require.NoError(t, err)

	return slotID
}

// IsSlotBooked reads slot occupancy straight from the table; tests use it to
// check what a booking actually did to the slot row.
func IsSlotBooked(t *testing.T, db DBLike, providerID uuid.UUID, date time.Time, timeLabel, channel string) bool {
	t.Helper()

	var booked bool
	err := db.QueryRow(context.Background(),
		"SELECT is_booked FROM slots WHERE provider_id = $1 AND slot_date = $2 AND slot_time = $3 AND channel = $4",
		providerID, date, timeLabel, channel).Scan(&booked)
	require.NoError(t, err)

	return booked
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
