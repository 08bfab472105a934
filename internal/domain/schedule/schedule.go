// Package schedule decides which slots are legitimately offerable at a given
// instant. Everything here is a pure function of slot data and a caller-supplied
// "now"; wall-clock access would make the rules untestable.
package schedule

import (
	"errors"
	"sort"
	"time"

	"mindvale-server/internal/domain/slot"
)

var (
	ErrNoBusinessHours  = errors.New("business hours must not be empty")
	ErrInvalidHourLabel = errors.New("business hours contain an invalid label")
)

// Hours holds the working-hours enumeration and the excluded weekdays.
// Both were hard-coded at every call site in earlier revisions; they are now
// injected once from configuration.
type Hours struct {
	labels   []slot.TimeOfDay
	position map[slot.TimeOfDay]int
	excluded map[time.Weekday]bool
}

func NewHours(labels []string, excludedWeekdays []int) (*Hours, error) {
	if len(labels) == 0 {
		return nil, ErrNoBusinessHours
	}
	h := &Hours{
		position: make(map[slot.TimeOfDay]int, len(labels)),
		excluded: make(map[time.Weekday]bool, len(excludedWeekdays)),
	}
	for i, raw := range labels {
		label, err := slot.NewTimeOfDay(raw)
		if err != nil {
			return nil, ErrInvalidHourLabel
		}
		h.labels = append(h.labels, label)
		h.position[label] = i
	}
	for _, wd := range excludedWeekdays {
		h.excluded[time.Weekday(wd)] = true
	}
	return h, nil
}

// Labels returns the working-hour labels in their fixed enumeration order.
func (h *Hours) Labels() []slot.TimeOfDay {
	return h.labels
}

func (h *Hours) Contains(t slot.TimeOfDay) bool {
	_, ok := h.position[t]
	return ok
}

func (h *Hours) ExcludedWeekday(wd time.Weekday) bool {
	return h.excluded[wd]
}

// IsOffered reports whether a slot may be shown as bookable right now.
// All conditions are AND-ed, in the order the booking flow checks them:
// channel match, not booked, weekday allowed, label within business hours,
// date not past, and (for today) label not already passed.
func (h *Hours) IsOffered(s slot.Slot, channel slot.Channel, now time.Time) bool {
	if s.Key.Channel != channel {
		return false
	}
	if s.IsBooked {
		return false
	}
	if h.excluded[s.Key.Date.Weekday()] {
		return false
	}
	if !h.Contains(s.Key.Time) {
		return false
	}

	// Calendar-day comparisons, never instant comparisons: slot dates are UTC
	// midnights from the DATE column while now carries the server zone.
	if dayBefore(s.Key.Date, now) {
		return false
	}
	if sameDay(s.Key.Date, now) && h.labelPassed(s.Key.Time, now) {
		return false
	}
	return true
}

// labelPassed reports whether the label is at or before the current
// minutes-since-midnight. Equal-to-now counts as passed.
func (h *Hours) labelPassed(label slot.TimeOfDay, now time.Time) bool {
	labelMinutes, err := label.MinutesSinceMidnight()
	if err != nil {
		return true
	}
	return labelMinutes <= now.Hour()*60+now.Minute()
}

// CandidateDates returns the distinct dates with at least one offerable slot,
// ascending. When fewer than want dates exist it pads forward day by day,
// skipping excluded weekdays, so the date picker always has a full row; padded
// days simply render with no free times.
func (h *Hours) CandidateDates(slots []slot.Slot, channel slot.Channel, now time.Time, want int) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, s := range slots {
		if !h.IsOffered(s, channel, now) {
			continue
		}
		key := s.Key.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, s.Key.Date)
	}
	sortDates(dates)

	if want <= 0 || len(dates) >= want {
		if want > 0 && len(dates) > want {
			dates = dates[:want]
		}
		return dates
	}

	cursor := slot.TruncateToDate(now)
	if len(dates) > 0 && dayBefore(cursor, dates[len(dates)-1]) {
		cursor = dates[len(dates)-1]
	}
	// The guard bounds extrapolation when every weekday is excluded.
	for guard := 0; len(dates) < want && guard < want*14; guard++ {
		cursor = cursor.AddDate(0, 0, 1)
		if h.excluded[cursor.Weekday()] {
			continue
		}
		key := cursor.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, cursor)
	}
	return dates
}

// TimeStatus annotates one working-hour label for a chosen date.
type TimeStatus string

const (
	TimeFree        TimeStatus = "free"
	TimeBooked      TimeStatus = "booked"
	TimePast        TimeStatus = "past"
	TimeUnavailable TimeStatus = "unavailable" // no slot exists for this label
)

type TimeEntry struct {
	Label  slot.TimeOfDay
	Status TimeStatus
}

// TimesForDate returns every working-hour label in enumeration order (never
// lexical), annotated with its availability on the given date.
func (h *Hours) TimesForDate(slots []slot.Slot, channel slot.Channel, date time.Time, now time.Time) []TimeEntry {
	byLabel := make(map[slot.TimeOfDay]slot.Slot)
	for _, s := range slots {
		if s.Key.Channel == channel && sameDay(s.Key.Date, date) {
			byLabel[s.Key.Time] = s
		}
	}

	entries := make([]TimeEntry, 0, len(h.labels))
	for _, label := range h.labels {
		entry := TimeEntry{Label: label, Status: TimeUnavailable}
		if s, ok := byLabel[label]; ok {
			switch {
			case sameDay(date, now) && h.labelPassed(label, now):
				entry.Status = TimePast
			case s.IsBooked:
				entry.Status = TimeBooked
			default:
				entry.Status = TimeFree
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

// sameDay compares calendar components in each value's own location. A slot's
// UTC-midnight date and a zoned wall clock agree on the day exactly when their
// components match.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
