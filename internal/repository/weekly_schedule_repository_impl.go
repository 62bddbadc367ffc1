package repository

import (
	"context"
	"errors"
	"slices"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type weeklyScheduleRepository struct{}

func NewWeeklyScheduleRepository() domainRepo.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{}
}

func (r *weeklyScheduleRepository) Upsert(ctx context.Context, db *gorm.DB, schedule *entity.WeeklySchedule) error {
	schedule.ProviderKey = schedule.Provider().Key()
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_key"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_active", "updated_at"}),
		}).
		Create(schedule).Error
}

func (r *weeklyScheduleRepository) FindByProvider(ctx context.Context, db *gorm.DB, provider entity.Provider) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	err := db.WithContext(ctx).Where("provider_key = ?", provider.Key()).Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	slices.SortFunc(schedules, func(a, b entity.WeeklySchedule) int {
		return a.DayOfWeek.Index() - b.DayOfWeek.Index()
	})
	return schedules, nil
}

func (r *weeklyScheduleRepository) FindDay(ctx context.Context, db *gorm.DB, provider entity.Provider, day entity.Weekday) (*entity.WeeklySchedule, error) {
	var schedule entity.WeeklySchedule
	err := db.WithContext(ctx).
		Where("provider_key = ? AND day_of_week = ?", provider.Key(), day).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}
