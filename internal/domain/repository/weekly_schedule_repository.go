package repository

import (
	"context"

	"dailywag-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type WeeklyScheduleRepository interface {
	// Upsert inserts or overwrites the entry keyed by (provider, day).
	Upsert(ctx context.Context, db *gorm.DB, schedule *entity.WeeklySchedule) error
	FindByProvider(ctx context.Context, db *gorm.DB, provider entity.Provider) ([]entity.WeeklySchedule, error)
	FindDay(ctx context.Context, db *gorm.DB, provider entity.Provider, day entity.Weekday) (*entity.WeeklySchedule, error)
}
