//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	reqdto "mindvale-server/internal/handler/dto/request"
	resdto "mindvale-server/internal/handler/dto/response"
	"mindvale-server/tests/common/authtest"
	"mindvale-server/tests/common/dbtest"
	"mindvale-server/tests/common/httptest"
	"mindvale-server/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// bookableDate returns a future working day so requests never trip the
// past-date or excluded-weekday rules.
func bookableDate() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *BookingSuite) createBooking(token string, req reqdto.CreateBookingRequest) (*resdto.BookingResponse, int) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
	if w.Code != http.StatusCreated {
		return nil, w.Code
	}
	var body resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	return &body, w.Code
}

func (s *BookingSuite) TestSlotOccupancy() {
	s.Run("a slot holds at most one live booking", func() {
		t := s.T()

		date := bookableDate()
		providerID := dbtest.CreateTestProvider(t, s.DB, "Dr. Asha Rao", 1500)
		dbtest.CreateTestSlot(t, s.DB, providerID, date, "10:00 AM", "Online")

		firstUser := uuid.New()
		firstToken := authtest.IssueToken(t, s.Config.Auth, firstUser, "first@example.com")

		req := reqdto.CreateBookingRequest{
			ProviderID: providerID,
			Date:       date.Format("2006-01-02"),
			Time:       "10:00 AM",
			Channel:    "Online",
		}

		created, code := s.createBooking(firstToken, req)
		require.Equal(t, http.StatusCreated, code, "first booking should succeed")
		require.Equal(t, "Pending", created.Status)
		require.Equal(t, "Pending", created.PaymentStatus)
		require.Equal(t, "₹", created.PriceCurrency)
		require.True(t, dbtest.IsSlotBooked(t, s.DB, providerID, date, "10:00 AM", "Online"))

		// Same (provider, date, time, channel) by another user must be refused
		// while the first booking is live.
		secondToken := authtest.IssueToken(t, s.Config.Auth, uuid.New(), "second@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, secondToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Slot not available")
	})

	s.Run("first booking gets the welcome discount", func() {
		t := s.T()

		date := bookableDate()
		providerID := dbtest.CreateTestProvider(t, s.DB, "Dr. Asha Rao", 1500)
		dbtest.CreateTestSlot(t, s.DB, providerID, date, "11:00 AM", "Online")

		token := authtest.IssueToken(t, s.Config.Auth, uuid.New(), "newcomer@example.com")
		created, code := s.createBooking(token, reqdto.CreateBookingRequest{
			ProviderID: providerID,
			Date:       date.Format("2006-01-02"),
			Time:       "11:00 AM",
			Channel:    "Online",
		})
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, int64(1200), created.PriceAmount) // 1500 - 20%
		require.NotNil(t, created.DiscountCode)
		require.Equal(t, "WELCOME20", *created.DiscountCode)
		require.Equal(t, int64(300), created.DiscountAmount)
	})

	s.Run("cancellation releases the slot for rebooking", func() {
		t := s.T()

		date := bookableDate()
		providerID := dbtest.CreateTestProvider(t, s.DB, "Dr. Asha Rao", 1500)
		dbtest.CreateTestSlot(t, s.DB, providerID, date, "02:00 PM", "In-person")

		req := reqdto.CreateBookingRequest{
			ProviderID: providerID,
			Date:       date.Format("2006-01-02"),
			Time:       "02:00 PM",
			Channel:    "In-person",
		}

		firstToken := authtest.IssueToken(t, s.Config.Auth, uuid.New(), "first@example.com")
		created, code := s.createBooking(firstToken, req)
		require.Equal(t, http.StatusCreated, code)

		cancelURL := bookingsURL + "/" + created.ID.String() + "/cancel"
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, cancelURL, nil, firstToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled resdto.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "Cancelled", cancelled.Status)
		require.False(t, dbtest.IsSlotBooked(t, s.DB, providerID, date, "02:00 PM", "In-person"))

		// The key is bookable again once the earlier booking is cancelled.
		secondToken := authtest.IssueToken(t, s.Config.Auth, uuid.New(), "second@example.com")
		rebooked, code := s.createBooking(secondToken, req)
		require.Equal(t, http.StatusCreated, code, "cancelled slot should be bookable again")
		require.Equal(t, "Pending", rebooked.Status)
		require.NotEqual(t, created.ID, rebooked.ID)
	})

	s.Run("a slot the provider never published cannot be booked", func() {
		t := s.T()

		date := bookableDate()
		providerID := dbtest.CreateTestProvider(t, s.DB, "Dr. Asha Rao", 1500)

		token := authtest.IssueToken(t, s.Config.Auth, uuid.New(), "user@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqdto.CreateBookingRequest{
			ProviderID: providerID,
			Date:       date.Format("2006-01-02"),
			Time:       "10:00 AM",
			Channel:    "Online",
		}, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Slot not available")
	})
}
