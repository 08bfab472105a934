//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"mindvale-server/internal/handler/api"
	resdto "mindvale-server/internal/handler/dto/response"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/commands"
	"mindvale-server/internal/usecase/queries"
	"mindvale-server/tests/common/builder"
	"mindvale-server/tests/common/httptest"
	"mindvale-server/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Hand-rolled stubs: each call delegates to the assigned func, or fails the
// test if the endpoint was not supposed to reach the usecase.
type stubBookingCommands struct {
	create func(ctx context.Context, userID uuid.UUID, p commands.CreateBookingParams) (*queries.BookingView, error)
	cancel func(ctx context.Context, userID, bookingID uuid.UUID) (*queries.BookingView, error)
}

func (s *stubBookingCommands) Create(ctx context.Context, userID uuid.UUID, p commands.CreateBookingParams) (*queries.BookingView, error) {
	return s.create(ctx, userID, p)
}

func (s *stubBookingCommands) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*queries.BookingView, error) {
	return s.cancel(ctx, userID, bookingID)
}

type stubBookingQueries struct {
	getByID    func(ctx context.Context, actor, id uuid.UUID) (*queries.BookingView, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error)
}

func (s *stubBookingQueries) GetByID(ctx context.Context, actor, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByID(ctx, actor, id)
}

func (s *stubBookingQueries) GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return s.getByID(ctx, uuid.Nil, id)
}

func (s *stubBookingQueries) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.listByUser(ctx, userID)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	userID   uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	handler := api.NewBookingHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, handler.CreateBooking)
	s.router.GET("/bookings/my-bookings", authMiddleware, handler.GetMyBookings)
	s.router.GET("/bookings/:id", authMiddleware, handler.GetBooking)
	s.router.PATCH("/bookings/:id/cancel", authMiddleware, handler.CancelBooking)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	b := builder.NewBookingBuilder().WithUserID(s.userID)
	reqBody := b.BuildCreateRequest()
	view := b.BuildView()

	s.Run("success: 201 with the created booking", func() {
		s.commands.create = func(_ context.Context, userID uuid.UUID, p commands.CreateBookingParams) (*queries.BookingView, error) {
			s.Equal(s.userID, userID)
			s.Equal(reqBody.ProviderID, p.ProviderID)
			s.Equal(reqBody.Time, p.Time)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("Pending", body.Status)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: 400 on missing fields", func() {
		for _, field := range []string{"provider_id", "date", "time", "channel"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", requestMap, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: usecase errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "provider not found", err: errs.ErrProviderNotFound, expectCode: http.StatusNotFound},
			{name: "slot unavailable", err: errs.ErrSlotUnavailable, expectCode: http.StatusBadRequest},
			{name: "validation", err: errs.ErrValidation, expectCode: http.StatusBadRequest},
			{name: "database failure", err: errs.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				s.commands.create = func(context.Context, uuid.UUID, commands.CreateBookingParams) (*queries.BookingView, error) {
					return nil, c.err
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, c.expectCode, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetMyBookings() {
	items := []*queries.BookingListItem{
		builder.NewBookingBuilder().BuildListItem(),
		builder.NewBookingBuilder().BuildListItem(),
	}

	s.Run("success: 200 with the user's bookings", func() {
		s.queries.listByUser = func(_ context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
			s.Equal(s.userID, userID)
			return items, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/my-bookings", nil, "token")

		var body []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal(items[0].ID, body[0].ID)
	})

	s.Run("success: empty list is 200", func() {
		s.queries.listByUser = func(context.Context, uuid.UUID) ([]*queries.BookingListItem, error) {
			return nil, nil
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/my-bookings", nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView()

	s.Run("success: 200 with the booking", func() {
		s.queries.getByID = func(_ context.Context, actor, id uuid.UUID) (*queries.BookingView, error) {
			s.Equal(view.ID, id)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 for another user's booking", func() {
		s.queries.getByID = func(context.Context, uuid.UUID, uuid.UUID) (*queries.BookingView, error) {
			return nil, errs.ErrForbidden
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView()
	view.Status = "Cancelled"

	s.Run("success: 200 with the cancelled booking", func() {
		s.commands.cancel = func(_ context.Context, userID, bookingID uuid.UUID) (*queries.BookingView, error) {
			s.Equal(s.userID, userID)
			s.Equal(view.ID, bookingID)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+view.ID.String()+"/cancel", nil, "token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Cancelled", body.Status)
	})

	s.Run("error: 404 for an unknown booking", func() {
		s.commands.cancel = func(context.Context, uuid.UUID, uuid.UUID) (*queries.BookingView, error) {
			return nil, errs.ErrBookingNotFound
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+uuid.NewString()+"/cancel", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
