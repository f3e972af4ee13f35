package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "17:00"
	clockLayout  = "15:04"
)

var (
	ErrInvalidDay   = errors.New("invalid day of week")
	ErrInvalidClock = errors.New("invalid clock time")
	ErrInvalidRange = errors.New("start time must be before end time")
)

// Slot is one of the seven fixed weekday records of a creator.
type Slot struct {
	CreatorID string
	DayOfWeek time.Weekday
	Available bool
	StartTime string
	EndTime   string
	UpdatedAt time.Time
}

func DefaultSlot(creatorID string, day time.Weekday) Slot {
	return Slot{
		CreatorID: creatorID,
		DayOfWeek: day,
		StartTime: DefaultStart,
		EndTime:   DefaultEnd,
	}
}

// Normalize validates the slot and canonicalizes its clock times.
func (s Slot) Normalize() (Slot, error) {
	if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
		return s, fmt.Errorf("%w: %d", ErrInvalidDay, int(s.DayOfWeek))
	}

	start, err := parseClock(s.StartTime, DefaultStart)
	if err != nil {
		return s, err
	}
	end, err := parseClock(s.EndTime, DefaultEnd)
	if err != nil {
		return s, err
	}
	if s.Available && !start.Before(end) {
		return s, fmt.Errorf("%w: %s-%s", ErrInvalidRange, start.Format(clockLayout), end.Format(clockLayout))
	}

	s.StartTime = start.Format(clockLayout)
	s.EndTime = end.Format(clockLayout)
	return s, nil
}

// Week returns all seven days, filling unsaved days with defaults.
func Week(creatorID string, saved []Slot) []Slot {
	out := make([]Slot, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		out[day] = DefaultSlot(creatorID, day)
	}
	for _, slot := range saved {
		if slot.DayOfWeek < time.Sunday || slot.DayOfWeek > time.Saturday {
			continue
		}
		out[slot.DayOfWeek] = slot
	}
	return out
}

func parseClock(raw, fallback string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = fallback
	}
	// Postgres TIME columns come back as HH:MM:SS.
	if len(value) == len("15:04:05") {
		value = value[:5]
	}
	parsed, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	return parsed, nil
}
