package response

import (
	"mindvale-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProviderResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	PriceAmount    int64     `json:"price_amount"`
	PriceCurrency  string    `json:"price_currency"`
	SessionMinutes int32     `json:"session_minutes"`
	IsActive       bool      `json:"is_active"`
}

type TimeEntryResponse struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type AvailabilityResponse struct {
	ProviderID   uuid.UUID           `json:"provider_id"`
	Channel      string              `json:"channel"`
	Dates        []string            `json:"dates"`
	SelectedDate string              `json:"selected_date,omitempty"`
	Times        []TimeEntryResponse `json:"times,omitempty"`
}

func FromProviderView(rm *queries.ProviderView) *ProviderResponse {
	var resp ProviderResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID:   rm.ProviderID,
		Channel:      rm.Channel,
		Dates:        rm.Dates,
		SelectedDate: rm.SelectedDate,
	}
	for _, t := range rm.Times {
		resp.Times = append(resp.Times, TimeEntryResponse{Time: t.Label, Status: t.Status})
	}
	return resp
}
