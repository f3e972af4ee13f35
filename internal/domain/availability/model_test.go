package availability

import (
	"errors"
	"testing"
	"time"
)

func TestSlotNormalize(t *testing.T) {
	slot, err := Slot{DayOfWeek: time.Monday, Available: true, StartTime: "08:30:00", EndTime: "12:00"}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if slot.StartTime != "08:30" || slot.EndTime != "12:00" {
		t.Fatalf("unexpected clock values %s-%s", slot.StartTime, slot.EndTime)
	}

	defaults, err := Slot{DayOfWeek: time.Sunday}.Normalize()
	if err != nil {
		t.Fatalf("normalize defaults: %v", err)
	}
	if defaults.StartTime != DefaultStart || defaults.EndTime != DefaultEnd {
		t.Fatalf("expected default clock values, got %s-%s", defaults.StartTime, defaults.EndTime)
	}

	if _, err := (Slot{DayOfWeek: 7}).Normalize(); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
	if _, err := (Slot{DayOfWeek: time.Friday, StartTime: "25:00"}).Normalize(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
	if _, err := (Slot{DayOfWeek: time.Friday, Available: true, StartTime: "18:00", EndTime: "09:00"}).Normalize(); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := (Slot{DayOfWeek: time.Friday, Available: false, StartTime: "18:00", EndTime: "09:00"}).Normalize(); err != nil {
		t.Fatalf("unavailable day should not validate range: %v", err)
	}
}

func TestWeekFillsMissingDays(t *testing.T) {
	week := Week("creator-1", []Slot{
		{CreatorID: "creator-1", DayOfWeek: time.Wednesday, Available: true, StartTime: "10:00", EndTime: "14:00"},
	})
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if !week[time.Wednesday].Available {
		t.Fatalf("expected saved wednesday slot")
	}
	if week[time.Monday].Available || week[time.Monday].StartTime != DefaultStart {
		t.Fatalf("expected default monday slot, got %+v", week[time.Monday])
	}
}
