package request

import (
	"mindvale-server/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProviderID uuid.UUID `json:"provider_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Time       string    `json:"time" binding:"required"`
	Channel    string    `json:"channel" binding:"required"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ProviderID: r.ProviderID,
		Date:       r.Date,
		Time:       r.Time,
		Channel:    r.Channel,
		Notes:      r.Notes,
	}
}
