package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Weekday is the full English day name stored on weekly schedules.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = map[string]Weekday{
	"Monday":    Monday,
	"Tuesday":   Tuesday,
	"Wednesday": Wednesday,
	"Thursday":  Thursday,
	"Friday":    Friday,
	"Saturday":  Saturday,
	"Sunday":    Sunday,
}

// ParseWeekday accepts only the exact day names.
func ParseWeekday(s string) (Weekday, bool) {
	d, ok := weekdays[s]
	return d, ok
}

func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// WeeklySchedule is the recurring availability window of a provider on one
// day of the week. There is at most one row per (provider_key, day_of_week).
type WeeklySchedule struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderKey string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_weekly_schedules_provider_day,priority:1" json:"provider_key"`
	DoctorID    *uuid.UUID     `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	DayOfWeek   Weekday        `gorm:"type:varchar(10);not null;uniqueIndex:idx_weekly_schedules_provider_day,priority:2" json:"day_of_week"`
	StartTime   datatypes.Time `gorm:"type:time;not null" json:"start_time"`
	EndTime     datatypes.Time `gorm:"type:time;not null" json:"end_time"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

func (s *WeeklySchedule) Provider() Provider {
	return ProviderFromDoctorID(s.DoctorID)
}

// Window returns the schedule bounds as offsets from midnight.
func (s *WeeklySchedule) Window() (start, end time.Duration) {
	return time.Duration(s.StartTime), time.Duration(s.EndTime)
}

// Index orders days Monday first.
func (d Weekday) Index() int {
	switch d {
	case Monday:
		return 0
	case Tuesday:
		return 1
	case Wednesday:
		return 2
	case Thursday:
		return 3
	case Friday:
		return 4
	case Saturday:
		return 5
	case Sunday:
		return 6
	}
	return 7
}
