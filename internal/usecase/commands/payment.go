package commands

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"strings"

	"mindvale-server/internal/domain/booking"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/observability/metrics"
	"mindvale-server/internal/pkg/clock"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/queries"
	"mindvale-server/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxReceiptLen = 40

type CreateOrderParams struct {
	BookingID uuid.UUID
	Amount    int64
}

type VerifyPaymentParams struct {
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentOrder is handed to the client to open the gateway checkout. Amount is
// in minor currency units, matching what the gateway echoes back.
type PaymentOrder struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	Key         string
}

type PaymentCommands interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, p CreateOrderParams) (*PaymentOrder, error)
	Verify(ctx context.Context, userID uuid.UUID, p VerifyPaymentParams) (*queries.BookingView, error)
}

type paymentCommandsImpl struct {
	bookings       BookingRepository
	notifications  NotificationRepository
	bookingQueries queries.BookingQueries
	gateway        PaymentGateway
	signer         Signer
	db             *pgxpool.Pool
	clock          clock.Clock
	metrics        *metrics.BookingMetrics
}

func NewPaymentCommands(
	bookings BookingRepository,
	notifications NotificationRepository,
	bookingQueries queries.BookingQueries,
	gateway PaymentGateway,
	signer Signer,
	db *pgxpool.Pool,
	clk clock.Clock,
	m *metrics.BookingMetrics,
) PaymentCommands {
	return &paymentCommandsImpl{
		bookings:       bookings,
		notifications:  notifications,
		bookingQueries: bookingQueries,
		gateway:        gateway,
		signer:         signer,
		db:             db,
		clock:          clk,
		metrics:        m,
	}
}

func (c *paymentCommandsImpl) CreateOrder(ctx context.Context, userID uuid.UUID, p CreateOrderParams) (*PaymentOrder, error) {
	entity, err := c.findOwned(ctx, userID, p.BookingID)
	if err != nil {
		return nil, err
	}
	if entity.IsCancelled() {
		return nil, errs.ErrBookingCancelled
	}
	// The client echoes the amount it is about to charge; it must match the
	// price stored at booking time, discount already applied.
	if p.Amount != entity.Price.Amount {
		return nil, errs.ErrAmountMismatch
	}
	if !c.gateway.Enabled() {
		return nil, errs.ErrGatewayUnavailable
	}

	order, err := c.gateway.CreateOrder(ctx, OrderRequest{
		AmountMinor: entity.Price.Amount * 100,
		Currency:    "INR",
		Receipt:     buildReceipt(entity.ID, c.clock.Now().UnixMilli()),
		Notes: map[string]string{
			"booking_id":  entity.ID.String(),
			"user_id":     userID.String(),
			"provider_id": entity.ProviderID.String(),
		},
	})
	if err != nil {
		c.metrics.ObservePaymentFailure("order_creation")
		return nil, err
	}

	if err := c.bookings.SetPaymentOrder(ctx, c.db, entity.ID, order.OrderID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &PaymentOrder{
		OrderID:     order.OrderID,
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
		Key:         c.gateway.PublicKey(),
	}, nil
}

func (c *paymentCommandsImpl) Verify(ctx context.Context, userID uuid.UUID, p VerifyPaymentParams) (*queries.BookingView, error) {
	entity, err := c.findOwned(ctx, userID, p.BookingID)
	if err != nil {
		return nil, err
	}

	expected := c.signer.Compute(p.OrderID, p.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(p.Signature)) {
		c.metrics.ObservePaymentFailure("signature_mismatch")
		return nil, errs.ErrSignatureMismatch
	}

	if err := entity.MarkPaid(p.OrderID, p.PaymentID, p.Signature, c.clock.Now()); err != nil {
		if errors.Is(err, booking.ErrAlreadyCancelled) {
			c.metrics.ObservePaymentFailure("cancelled_booking")
			return nil, errs.ErrBookingCancelled
		}
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	_, err = shared.RunInTx(ctx, c.db, func(tx pgx.Tx) (struct{}, error) {
		if err := c.bookings.RecordPayment(ctx, tx, entity); err != nil {
			return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		payload, err := paymentPayload(entity)
		if err != nil {
			return struct{}{}, err
		}
		if err := c.notifications.CreateJob(ctx, tx, "email", "payment_verified", payload, c.clock.Now()); err != nil {
			return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	c.metrics.ObservePaymentVerified()

	return c.bookingQueries.GetByIDSystem(ctx, entity.ID)
}

func (c *paymentCommandsImpl) findOwned(ctx context.Context, userID, bookingID uuid.UUID) (*booking.Booking, error) {
	entity, err := c.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !entity.IsOwnedBy(userID) {
		return nil, errs.ErrForbidden
	}
	return entity, nil
}

func paymentPayload(b *booking.Booking) ([]byte, error) {
	return json.Marshal(map[string]any{
		"booking_id":    b.ID,
		"provider_name": b.ProviderName,
		"booking_date":  b.Date.Format("2006-01-02"),
		"booking_time":  b.Time.String(),
		"channel":       b.Channel.String(),
		"amount":        b.Price.Amount,
		"currency":      b.Price.Currency,
		"payment_id":    b.PaymentID,
	})
}

// buildReceipt keeps the gateway's 40-character receipt limit: "bk_" plus the
// last 12 hex digits of the booking ID and the last 8 digits of the timestamp.
func buildReceipt(bookingID uuid.UUID, unixMilli int64) string {
	id := strings.ReplaceAll(bookingID.String(), "-", "")
	if len(id) > 12 {
		id = id[len(id)-12:]
	}
	ts := fmt.Sprintf("%d", unixMilli)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	receipt := fmt.Sprintf("bk_%s_%s", id, ts)
	if len(receipt) > maxReceiptLen {
		receipt = receipt[:maxReceiptLen]
	}
	return receipt
}
