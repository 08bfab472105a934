//go:build unit

package booking_test

import (
	"testing"
	"time"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	entity, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, entity.ID)
	assert.Equal(t, booking.StatusPending, entity.Status)
	assert.Equal(t, booking.PaymentPending, entity.PaymentStatus)
	assert.Nil(t, entity.PaymentOrderID)
	assert.Nil(t, entity.PaidAt)
}

func TestMarkPaid(t *testing.T) {
	now := time.Now()

	t.Run("moves booking to Confirmed/Paid", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.MarkPaid("order_1", "pay_1", "sig_1", now))

		assert.Equal(t, booking.StatusConfirmed, entity.Status)
		assert.Equal(t, booking.PaymentPaid, entity.PaymentStatus)
		require.NotNil(t, entity.PaymentOrderID)
		assert.Equal(t, "order_1", *entity.PaymentOrderID)
		require.NotNil(t, entity.PaidAt)
		assert.Equal(t, now, *entity.PaidAt)
	})

	t.Run("a cancelled booking never becomes paid", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		entity.Cancel()

		err = entity.MarkPaid("order_1", "pay_1", "sig_1", now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
		assert.Equal(t, booking.StatusCancelled, entity.Status)
		assert.Equal(t, booking.PaymentPending, entity.PaymentStatus)
	})

	t.Run("re-marking with the same payment is a no-op", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.MarkPaid("order_1", "pay_1", "sig_1", now))
		require.NoError(t, entity.MarkPaid("order_1", "pay_1", "sig_1", now.Add(time.Minute)))

		// First timestamp wins.
		assert.Equal(t, now, *entity.PaidAt)
	})

	t.Run("a different payment against a paid booking is rejected", func(t *testing.T) {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, entity.MarkPaid("order_1", "pay_1", "sig_1", now))
		err = entity.MarkPaid("order_2", "pay_2", "sig_2", now)
		assert.ErrorIs(t, err, booking.ErrAlreadyPaid)
	})
}

func TestCancel(t *testing.T) {
	entity, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	entity.Cancel()
	assert.True(t, entity.IsCancelled())

	// Idempotent.
	entity.Cancel()
	assert.True(t, entity.IsCancelled())

	// Refunds are manual; payment status is untouched.
	assert.Equal(t, booking.PaymentPending, entity.PaymentStatus)
}

func TestIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	entity, err := builder.NewBookingBuilder().WithUserID(owner).BuildDomain()
	require.NoError(t, err)

	assert.True(t, entity.IsOwnedBy(owner))
	assert.False(t, entity.IsOwnedBy(uuid.New()))
}
