package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipPlan string

const (
	MembershipPlanSilver   MembershipPlan = "Silver"
	MembershipPlanGold     MembershipPlan = "Gold"
	MembershipPlanPlatinum MembershipPlan = "Platinum"
)

func ParseMembershipPlan(s string) (MembershipPlan, bool) {
	switch p := MembershipPlan(s); p {
	case MembershipPlanSilver, MembershipPlanGold, MembershipPlanPlatinum:
		return p, true
	}
	return "", false
}

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusExpired MembershipStatus = "expired"
)

// Membership is a customer's plan subscription. StartDate and EndDate are
// calendar dates held at UTC midnight; the plan covers EndDate itself.
type Membership struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Plan      MembershipPlan   `gorm:"type:varchar(20);not null" json:"plan"`
	StartDate time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time        `gorm:"type:date;not null" json:"end_date"`
	Status    MembershipStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MembershipStatusActive
	}
	return nil
}

// CalendarDate drops the clock and zone of t as seen in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
