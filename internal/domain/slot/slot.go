package slot

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidChannel   = errors.New("invalid channel")
	ErrInvalidTimeLabel = errors.New("invalid time label")
	ErrInvalidDate      = errors.New("invalid date")
)

// Channel is the session delivery mode. The wire values are fixed; the web
// client also sends "Video", which callers must map to Online before reaching
// the domain.
type Channel string

const (
	ChannelOnline   Channel = "Online"
	ChannelInPerson Channel = "In-person"
)

func NewChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelOnline, ChannelInPerson:
		return Channel(s), nil
	default:
		return "", ErrInvalidChannel
	}
}

func (c Channel) String() string {
	return string(c)
}

// TimeOfDay is a 12-hour clock label such as "10:00 AM" or "01:00 PM".
// Labels are the slot identity on the wire and in storage; they are never
// normalized to 24-hour form.
type TimeOfDay string

func NewTimeOfDay(s string) (TimeOfDay, error) {
	t := TimeOfDay(s)
	if _, err := t.MinutesSinceMidnight(); err != nil {
		return "", err
	}
	return t, nil
}

// MinutesSinceMidnight converts the label to minutes. Noon (12:00 PM) is 720;
// midnight (12:00 AM) wraps to 0.
func (t TimeOfDay) MinutesSinceMidnight() (int, error) {
	parts := strings.SplitN(string(t), " ", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidTimeLabel
	}
	period := parts[1]
	if period != "AM" && period != "PM" {
		return 0, ErrInvalidTimeLabel
	}

	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return 0, ErrInvalidTimeLabel
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil || hours < 1 || hours > 12 {
		return 0, ErrInvalidTimeLabel
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidTimeLabel
	}

	total := hours*60 + minutes
	if period == "PM" && hours != 12 {
		total += 12 * 60
	} else if period == "AM" && hours == 12 {
		total -= 12 * 60
	}
	return total, nil
}

func (t TimeOfDay) String() string {
	return string(t)
}

// Key identifies a slot within a provider: (calendar date, time label, channel).
// Date carries no time-of-day component.
type Key struct {
	Date    time.Time
	Time    TimeOfDay
	Channel Channel
}

func NewKey(date time.Time, label string, channel string) (Key, error) {
	t, err := NewTimeOfDay(label)
	if err != nil {
		return Key{}, err
	}
	ch, err := NewChannel(channel)
	if err != nil {
		return Key{}, err
	}
	if date.IsZero() {
		return Key{}, ErrInvalidDate
	}
	return Key{Date: TruncateToDate(date), Time: t, Channel: ch}, nil
}

func (k Key) Equal(other Key) bool {
	return k.Date.Equal(other.Date) && k.Time == other.Time && k.Channel == other.Channel
}

// Slot is one bookable entry in a provider's calendar. IsBooked is the single
// source of truth for whether the slot can be selected.
type Slot struct {
	Key      Key
	IsBooked bool
}

// TruncateToDate zeroes the time-of-day component, preserving the calendar day
// in the given location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
