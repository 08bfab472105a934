//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"mindvale-server/internal/domain/schedule"
	"mindvale-server/internal/domain/slot"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workingHours = []string{
	"10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM",
	"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

func newHours(t *testing.T) *schedule.Hours {
	t.Helper()
	h, err := schedule.NewHours(workingHours, []int{0}) // Sundays excluded
	require.NoError(t, err)
	return h
}

func mkSlot(t *testing.T, date time.Time, label, channel string, booked bool) slot.Slot {
	t.Helper()
	key, err := slot.NewKey(date, label, channel)
	require.NoError(t, err)
	return slot.Slot{Key: key, IsBooked: booked}
}

// 2026-03-16 is a Monday.
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestNewHours(t *testing.T) {
	_, err := schedule.NewHours(nil, nil)
	assert.ErrorIs(t, err, schedule.ErrNoBusinessHours)

	_, err = schedule.NewHours([]string{"10:00 AM", "25:00 PM"}, nil)
	assert.ErrorIs(t, err, schedule.ErrInvalidHourLabel)
}

func TestIsOffered(t *testing.T) {
	h := newHours(t)
	now := monday.Add(9 * time.Hour) // Monday 09:00

	t.Run("free future slot is offered", func(t *testing.T) {
		s := mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", false)
		assert.True(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("channel mismatch is not offered", func(t *testing.T) {
		s := mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "In-person", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("booked slot is not offered", func(t *testing.T) {
		s := mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", true)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("sunday slot is never offered", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, 6)
		require.Equal(t, time.Sunday, sunday.Weekday())

		s := mkSlot(t, sunday, "10:00 AM", "Online", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("label outside working hours is never offered", func(t *testing.T) {
		s := mkSlot(t, monday.AddDate(0, 0, 1), "09:00 AM", "Online", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("past date is not offered", func(t *testing.T) {
		s := mkSlot(t, monday.AddDate(0, 0, -3), "10:00 AM", "Online", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, now))
	})

	t.Run("todays passed label is excluded, tomorrows is not", func(t *testing.T) {
		afternoon := monday.Add(13*time.Hour + 30*time.Minute) // Monday 13:30

		today := mkSlot(t, monday, "10:00 AM", "Online", false)
		tomorrow := mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", false)

		assert.False(t, h.IsOffered(today, slot.ChannelOnline, afternoon))
		assert.True(t, h.IsOffered(tomorrow, slot.ChannelOnline, afternoon))
	})

	t.Run("todays passed label stays excluded when now is east of UTC", func(t *testing.T) {
		// Slot dates come out of the DATE column as UTC midnights; the wall
		// clock carries the server zone. The calendar day must still line up.
		ist := time.FixedZone("IST", 19800)
		afternoonIST := time.Date(2026, 3, 16, 13, 30, 0, 0, ist)

		s := mkSlot(t, monday, "10:00 AM", "Online", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, afternoonIST))
	})

	t.Run("todays future slot stays offered when now is west of UTC", func(t *testing.T) {
		est := time.FixedZone("EST", -5*3600)
		morningEST := time.Date(2026, 3, 16, 8, 0, 0, 0, est)

		s := mkSlot(t, monday, "04:00 PM", "Online", false)
		assert.True(t, h.IsOffered(s, slot.ChannelOnline, morningEST))
	})

	t.Run("label equal to now counts as passed", func(t *testing.T) {
		atTen := monday.Add(10 * time.Hour) // Monday 10:00 exactly
		s := mkSlot(t, monday, "10:00 AM", "Online", false)
		assert.False(t, h.IsOffered(s, slot.ChannelOnline, atTen))

		justBefore := monday.Add(9*time.Hour + 59*time.Minute)
		assert.True(t, h.IsOffered(s, slot.ChannelOnline, justBefore))
	})
}

func TestCandidateDates(t *testing.T) {
	h := newHours(t)
	now := monday.Add(9 * time.Hour)

	t.Run("pads to the requested count, skipping sundays", func(t *testing.T) {
		slots := []slot.Slot{
			mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", false),
			mkSlot(t, monday.AddDate(0, 0, 2), "11:00 AM", "Online", false),
		}

		dates := h.CandidateDates(slots, slot.ChannelOnline, now, 7)
		require.Len(t, dates, 7)

		// Real slot dates first, then extrapolated days.
		assert.Equal(t, monday.AddDate(0, 0, 1), dates[0])
		assert.Equal(t, monday.AddDate(0, 0, 2), dates[1])
		for _, d := range dates {
			assert.NotEqual(t, time.Sunday, d.Weekday(), d.Format("2006-01-02"))
		}
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]))
		}
	})

	t.Run("no slots still yields a full padded row", func(t *testing.T) {
		dates := h.CandidateDates(nil, slot.ChannelOnline, now, 7)
		require.Len(t, dates, 7)
		assert.True(t, dates[0].After(slot.TruncateToDate(now)))
		for _, d := range dates {
			assert.NotEqual(t, time.Sunday, d.Weekday())
		}
	})

	t.Run("deduplicates dates and sorts ascending", func(t *testing.T) {
		slots := []slot.Slot{
			mkSlot(t, monday.AddDate(0, 0, 3), "10:00 AM", "Online", false),
			mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", false),
			mkSlot(t, monday.AddDate(0, 0, 3), "11:00 AM", "Online", false),
		}

		dates := h.CandidateDates(slots, slot.ChannelOnline, now, 2)

		expected := []time.Time{monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 3)}
		if diff := cmp.Diff(expected, dates); diff != "" {
			t.Errorf("Candidate dates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fully booked dates fall back to calendar padding", func(t *testing.T) {
		slots := []slot.Slot{
			mkSlot(t, monday.AddDate(0, 0, 1), "10:00 AM", "Online", true),
		}
		// No offerable slot exists, so the row is pure forward padding
		// starting tomorrow.
		dates := h.CandidateDates(slots, slot.ChannelOnline, now, 3)
		require.Len(t, dates, 3)
		assert.Equal(t, monday.AddDate(0, 0, 1), dates[0])
	})
}

func TestTimesForDate(t *testing.T) {
	h := newHours(t)
	tomorrow := monday.AddDate(0, 0, 1)
	now := monday.Add(9 * time.Hour)

	t.Run("annotates every label in enumeration order", func(t *testing.T) {
		slots := []slot.Slot{
			mkSlot(t, tomorrow, "10:00 AM", "Online", false),
			mkSlot(t, tomorrow, "11:00 AM", "Online", true),
		}

		entries := h.TimesForDate(slots, slot.ChannelOnline, tomorrow, now)
		require.Len(t, entries, len(workingHours))

		byLabel := make(map[string]schedule.TimeStatus)
		for i, e := range entries {
			assert.Equal(t, workingHours[i], e.Label.String())
			byLabel[e.Label.String()] = e.Status
		}
		assert.Equal(t, schedule.TimeFree, byLabel["10:00 AM"])
		assert.Equal(t, schedule.TimeBooked, byLabel["11:00 AM"])
		assert.Equal(t, schedule.TimeUnavailable, byLabel["12:00 PM"])
	})

	t.Run("todays passed labels are marked past", func(t *testing.T) {
		afternoon := monday.Add(12*time.Hour + 30*time.Minute)
		slots := []slot.Slot{
			mkSlot(t, monday, "10:00 AM", "Online", false),
			mkSlot(t, monday, "02:00 PM", "Online", false),
		}

		entries := h.TimesForDate(slots, slot.ChannelOnline, monday, afternoon)
		byLabel := make(map[string]schedule.TimeStatus)
		for _, e := range entries {
			byLabel[e.Label.String()] = e.Status
		}
		assert.Equal(t, schedule.TimePast, byLabel["10:00 AM"])
		assert.Equal(t, schedule.TimeFree, byLabel["02:00 PM"])
	})

	t.Run("past marking follows the servers calendar day, not the instant", func(t *testing.T) {
		ist := time.FixedZone("IST", 19800)
		afternoonIST := time.Date(2026, 3, 16, 13, 30, 0, 0, ist)
		slots := []slot.Slot{
			mkSlot(t, monday, "10:00 AM", "Online", false),
			mkSlot(t, monday, "04:00 PM", "Online", false),
		}

		entries := h.TimesForDate(slots, slot.ChannelOnline, monday, afternoonIST)
		byLabel := make(map[string]schedule.TimeStatus)
		for _, e := range entries {
			byLabel[e.Label.String()] = e.Status
		}
		assert.Equal(t, schedule.TimePast, byLabel["10:00 AM"])
		assert.Equal(t, schedule.TimeFree, byLabel["04:00 PM"])
	})

	t.Run("other channels slots do not leak in", func(t *testing.T) {
		slots := []slot.Slot{
			mkSlot(t, tomorrow, "10:00 AM", "In-person", false),
		}
		entries := h.TimesForDate(slots, slot.ChannelOnline, tomorrow, now)
		for _, e := range entries {
			assert.Equal(t, schedule.TimeUnavailable, e.Status)
		}
	})
}
