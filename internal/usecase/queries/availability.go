package queries

import (
	"context"
	"time"

	"mindvale-server/internal/domain/schedule"
	"mindvale-server/internal/domain/slot"
	"mindvale-server/internal/pkg/clock"

	"github.com/google/uuid"
)

type ProviderView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	PriceAmount    int64     `json:"price_amount"`
	PriceCurrency  string    `json:"price_currency"`
	SessionMinutes int32     `json:"session_minutes"`
	IsActive       bool      `json:"is_active"`
}

type ProviderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProviderView, error)
	ListActive(ctx context.Context) ([]*ProviderView, error)
	SlotsByProvider(ctx context.Context, providerID uuid.UUID) ([]slot.Slot, error)
}

// TimeEntryView annotates one working-hour label for the selected date.
type TimeEntryView struct {
	Label  string `json:"time"`
	Status string `json:"status"`
}

type AvailabilityView struct {
	ProviderID   uuid.UUID       `json:"provider_id"`
	Channel      string          `json:"channel"`
	Dates        []string        `json:"dates"`
	SelectedDate string          `json:"selected_date,omitempty"`
	Times        []TimeEntryView `json:"times,omitempty"`
}

type AvailabilityQueries interface {
	// ForProvider returns the candidate date row and, when date is non-nil,
	// the annotated time labels for that date.
	ForProvider(ctx context.Context, providerID uuid.UUID, channel slot.Channel, date *time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	providers ProviderReadStore
	hours     *schedule.Hours
	clock     clock.Clock
	dateCount int
}

func NewAvailabilityQueries(providers ProviderReadStore, hours *schedule.Hours, clk clock.Clock, dateCount int) AvailabilityQueries {
	if dateCount <= 0 {
		dateCount = 7
	}
	return &availabilityQueriesImpl{
		providers: providers,
		hours:     hours,
		clock:     clk,
		dateCount: dateCount,
	}
}

func (q *availabilityQueriesImpl) ForProvider(ctx context.Context, providerID uuid.UUID, channel slot.Channel, date *time.Time) (*AvailabilityView, error) {
	// Existence check first so a bad provider id is a 404, not an empty row.
	if _, err := q.providers.FindByID(ctx, providerID); err != nil {
		return nil, err
	}

	slots, err := q.providers.SlotsByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	dates := q.hours.CandidateDates(slots, channel, now, q.dateCount)

	view := &AvailabilityView{
		ProviderID: providerID,
		Channel:    channel.String(),
		Dates:      make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		view.Dates = append(view.Dates, d.Format("2006-01-02"))
	}

	if date != nil {
		selected := slot.TruncateToDate(*date)
		view.SelectedDate = selected.Format("2006-01-02")
		for _, entry := range q.hours.TimesForDate(slots, channel, selected, now) {
			view.Times = append(view.Times, TimeEntryView{
				Label:  entry.Label.String(),
				Status: string(entry.Status),
			})
		}
	}
	return view, nil
}
