package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionScheduleSet      = "schedule.set"
	AuditActionBookingCreate    = "booking.create"
	AuditActionBookingStatus    = "booking.status"
	AuditActionBookingCheckIn   = "booking.check_in"
	AuditActionBookingSweep     = "booking.sweep"
	AuditActionPetCreate        = "pet.create"
	AuditActionPetUpdate        = "pet.update"
	AuditActionPetDelete        = "pet.delete"
	AuditActionAdoptionList     = "adoption.list"
	AuditActionAdoptionRequest  = "adoption.request"
	AuditActionAdoptionDecide   = "adoption.decide"
	AuditActionProductCreate    = "product.create"
	AuditActionProductUpdate    = "product.update"
	AuditActionProductDelete    = "product.delete"
	AuditActionImmunizationAdd  = "immunization.add"
	AuditActionImmunizationDrop = "immunization.delete"
	AuditActionMembershipJoin   = "membership.subscribe"
)
