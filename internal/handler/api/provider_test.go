//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/handler/api"
	resdto "mindvale-server/internal/handler/dto/response"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/usecase/queries"
	"mindvale-server/tests/common/httptest"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubProviderQueries struct {
	getByID    func(ctx context.Context, id uuid.UUID) (*queries.ProviderView, error)
	listActive func(ctx context.Context) ([]*queries.ProviderView, error)
}

func (s *stubProviderQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ProviderView, error) {
	return s.getByID(ctx, id)
}

func (s *stubProviderQueries) ListActive(ctx context.Context) ([]*queries.ProviderView, error) {
	return s.listActive(ctx)
}

type stubAvailabilityQueries struct {
	forProvider func(ctx context.Context, providerID uuid.UUID, channel slot.Channel, date *time.Time) (*queries.AvailabilityView, error)
}

func (s *stubAvailabilityQueries) ForProvider(ctx context.Context, providerID uuid.UUID, channel slot.Channel, date *time.Time) (*queries.AvailabilityView, error) {
	return s.forProvider(ctx, providerID, channel, date)
}

type ProviderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	providers    *stubProviderQueries
	availability *stubAvailabilityQueries
}

func (s *ProviderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.providers = &stubProviderQueries{}
	s.availability = &stubAvailabilityQueries{}
	handler := api.NewProviderHandler(s.providers, s.availability)

	s.router.GET("/providers", handler.ListProviders)
	s.router.GET("/providers/:id", handler.GetProvider)
	s.router.GET("/providers/:id/availability", handler.GetAvailability)
}

func TestProviderHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProviderHandlerTestSuite))
}

func sampleProviderView() *queries.ProviderView {
	return &queries.ProviderView{
		ID:             uuid.New(),
		Name:           "Dr. Asha Verma",
		Title:          "Clinical Psychologist",
		PriceAmount:    1000,
		PriceCurrency:  "₹",
		SessionMinutes: 60,
		IsActive:       true,
	}
}

func (s *ProviderHandlerTestSuite) TestListProviders() {
	s.Run("success: 200 with active providers", func() {
		first := sampleProviderView()
		second := sampleProviderView()
		second.Name = "Dr. Rohan Mehta"
		s.providers.listActive = func(context.Context) ([]*queries.ProviderView, error) {
			return []*queries.ProviderView{first, second}, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/providers", nil, "")

		var body []*resdto.ProviderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal(first.ID, body[0].ID)
		s.Equal("Dr. Rohan Mehta", body[1].Name)
	})

	s.Run("success: 200 with empty list", func() {
		s.providers.listActive = func(context.Context) ([]*queries.ProviderView, error) {
			return nil, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/providers", nil, "")

		var body []*resdto.ProviderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})
}

func (s *ProviderHandlerTestSuite) TestGetProvider() {
	view := sampleProviderView()

	s.Run("success: 200 with the provider", func() {
		s.providers.getByID = func(_ context.Context, id uuid.UUID) (*queries.ProviderView, error) {
			s.Equal(view.ID, id)
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/providers/"+view.ID.String(), nil, "")

		var body resdto.ProviderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Name, body.Name)
		s.Equal(int64(1000), body.PriceAmount)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/providers/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid provider ID")
	})

	s.Run("error: 404 when unknown", func() {
		s.providers.getByID = func(context.Context, uuid.UUID) (*queries.ProviderView, error) {
			return nil, infra.WrapRepoErr("provider not found", errors.New("no rows"), infra.KindNotFound)
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/providers/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Provider not found")
	})
}

func (s *ProviderHandlerTestSuite) TestGetAvailability() {
	providerID := uuid.New()
	availabilityView := &queries.AvailabilityView{
		ProviderID: providerID,
		Channel:    "Online",
		Dates:      []string{"2026-09-01", "2026-09-02", "2026-09-03"},
	}

	s.Run("success: 200 with candidate dates only", func() {
		s.availability.forProvider = func(_ context.Context, id uuid.UUID, channel slot.Channel, date *time.Time) (*queries.AvailabilityView, error) {
			s.Equal(providerID, id)
			s.Equal(slot.ChannelOnline, channel)
			s.Nil(date)
			return availabilityView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability?channel=Online", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(providerID, body.ProviderID)
		s.Equal([]string{"2026-09-01", "2026-09-02", "2026-09-03"}, body.Dates)
		s.Empty(body.Times)
	})

	s.Run("success: 200 with times for a selected date", func() {
		withTimes := *availabilityView
		withTimes.SelectedDate = "2026-09-01"
		withTimes.Times = []queries.TimeEntryView{
			{Label: "10:00 AM", Status: "free"},
			{Label: "11:00 AM", Status: "booked"},
		}
		s.availability.forProvider = func(_ context.Context, _ uuid.UUID, _ slot.Channel, date *time.Time) (*queries.AvailabilityView, error) {
			s.Require().NotNil(date)
			s.Equal("2026-09-01", date.Format("2006-01-02"))
			return &withTimes, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability?channel=Online&date=2026-09-01", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-09-01", body.SelectedDate)
		s.Require().Len(body.Times, 2)
		s.Equal("10:00 AM", body.Times[0].Time)
		s.Equal("booked", body.Times[1].Status)
	})

	s.Run("success: Video is accepted as an alias for Online", func() {
		s.availability.forProvider = func(_ context.Context, _ uuid.UUID, channel slot.Channel, _ *time.Time) (*queries.AvailabilityView, error) {
			s.Equal(slot.ChannelOnline, channel)
			return availabilityView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability?channel=Video", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on invalid channel", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability?channel=Telepathy", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid channel")
	})

	s.Run("error: 400 on missing channel", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid channel")
	})

	s.Run("error: 400 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+providerID.String()+"/availability?channel=Online&date=01-09-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("error: 404 when the provider is unknown", func() {
		s.availability.forProvider = func(context.Context, uuid.UUID, slot.Channel, *time.Time) (*queries.AvailabilityView, error) {
			return nil, infra.WrapRepoErr("provider not found", errors.New("no rows"), infra.KindNotFound)
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/providers/"+uuid.NewString()+"/availability?channel=In-person", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Provider not found")
	})
}
