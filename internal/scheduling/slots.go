package scheduling

import (
	"errors"
	"time"

	"dailywag-backend/internal/domain/entity"
)

// SlotInterval is the fixed step between generated appointment times.
const SlotInterval = 30 * time.Minute

const (
	DateLayout         = "2006-01-02"
	SlotDisplayLayout  = "3:04 PM"
	SlotValueLayout    = "2006-01-02 15:04:05"
	bookedTimeOfDayFmt = time.TimeOnly
)

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// Slot is a candidate appointment time. It is computed on every request and
// never stored.
type Slot struct {
	Value     time.Time
	Display   string
	Available bool
}

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// DayStart truncates t to local midnight.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GenerateSlots walks the day's schedule window in SlotInterval steps,
// starting at the window start and stopping before the window end. A slot
// is unavailable when its time of day appears in booked ("15:04:05").
// A nil or inactive schedule, or one whose start is not before its end,
// yields no slots.
func GenerateSlots(date time.Time, schedule *entity.WeeklySchedule, booked []string) []Slot {
	slots := []Slot{}
	if schedule == nil || !schedule.IsActive {
		return slots
	}

	start, end := schedule.Window()
	if start >= end {
		return slots
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	day := DayStart(date)
	for cur := start; cur < end; cur += SlotInterval {
		at := atOffset(day, cur)
		_, isTaken := taken[at.Format(bookedTimeOfDayFmt)]
		slots = append(slots, Slot{
			Value:     at,
			Display:   at.Format(SlotDisplayLayout),
			Available: !isTaken,
		})
	}

	return slots
}

// atOffset builds the wall-clock time offset from midnight, so days with a
// DST change still produce the scheduled clock times.
func atOffset(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	s := int((offset % time.Minute) / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location())
}
