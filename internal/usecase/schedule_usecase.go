package usecase

import (
	"context"
	"errors"
	"time"

	"dailywag-backend/internal/converter"
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/domain/repository"
	"dailywag-backend/internal/scheduling"
	"dailywag-backend/internal/service"
	"dailywag-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidDay        = errors.New("invalid day, use Monday to Sunday")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrDoctorNotFound    = errors.New("doctor not found")
)

type ScheduleUsecase interface {
	SetSchedule(ctx context.Context, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, doctorID *uuid.UUID) (*dto.ScheduleListResponse, error)
	GetSlots(ctx context.Context, date string, doctorID *uuid.UUID) (*dto.SlotListResponse, error)
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	loc          *time.Location
	scheduleRepo repository.WeeklyScheduleRepository
	bookingRepo  repository.BookingRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	scheduleRepo repository.WeeklyScheduleRepository,
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		loc:          loc,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// SetSchedule upserts one weekday of a calendar. Admins may target any
// doctor or, with no doctor_id, the grooming calendar. Doctors always set
// their own calendar.
func (u *scheduleUsecase) SetSchedule(ctx context.Context, req *dto.SetScheduleRequest) (*dto.ScheduleResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := u.resolveProvider(ctx, c, req.DoctorID)
	if err != nil {
		return nil, err
	}

	day, ok := entity.ParseWeekday(req.DayOfWeek)
	if !ok {
		return nil, ErrInvalidDay
	}
	start, ok := validator.ParseClock(req.StartTime)
	if !ok {
		return nil, ErrInvalidTimeFormat
	}
	end, ok := validator.ParseClock(req.EndTime)
	if !ok {
		return nil, ErrInvalidTimeFormat
	}

	active := req.IsActive == nil || *req.IsActive
	if active && start >= end {
		return nil, ErrInvalidTimeRange
	}

	schedule := &entity.WeeklySchedule{
		DoctorID:  provider.DoctorIDPtr(),
		DayOfWeek: day,
		StartTime: clockToTime(start),
		EndTime:   clockToTime(end),
		IsActive:  active,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Upsert(ctx, tx, schedule); err != nil {
		u.log.Warnf("Failed to upsert schedule %s/%s: %+v", provider, day, err)
		return nil, err
	}

	saved, err := u.scheduleRepo.FindDay(ctx, tx, provider, day)
	if err != nil {
		u.log.Warnf("Failed to reload schedule %s/%s: %+v", provider, day, err)
		return nil, err
	}
	if saved == nil {
		saved = schedule
	}

	resp := converter.ScheduleToResponse(saved)
	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionScheduleSet, "weekly_schedule", provider.Key()+"/"+string(day), nil, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit schedule %s/%s: %+v", provider, day, err)
		return nil, err
	}

	u.log.Infof("Schedule set: provider=%s, day=%s, %s-%s, active=%t", provider, day, resp.StartTime, resp.EndTime, active)
	return resp, nil
}

func (u *scheduleUsecase) resolveProvider(ctx context.Context, c caller, doctorID *uuid.UUID) (entity.Provider, error) {
	switch {
	case c.IsDoctor():
		if doctorID != nil && *doctorID != c.UserID {
			return entity.Provider{}, ErrForbidden
		}
		return entity.DoctorProvider(c.UserID), nil
	case c.IsAdmin():
		provider := entity.ProviderFromDoctorID(doctorID)
		if provider.IsGrooming() {
			return provider, nil
		}
		doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, provider.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", provider.DoctorID, err)
			return entity.Provider{}, err
		}
		if doctor == nil {
			return entity.Provider{}, ErrDoctorNotFound
		}
		return provider, nil
	}
	return entity.Provider{}, ErrForbidden
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, doctorID *uuid.UUID) (*dto.ScheduleListResponse, error) {
	provider := entity.ProviderFromDoctorID(doctorID)

	schedules, err := u.scheduleRepo.FindByProvider(ctx, u.db, provider)
	if err != nil {
		u.log.Warnf("Failed to find schedule for %s: %+v", provider, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Provider:  provider.Key(),
		Schedules: converter.SchedulesToResponses(schedules),
	}, nil
}

// GetSlots lists the 30-minute slots of the provider on date. A closed day
// is an empty list, not an error.
func (u *scheduleUsecase) GetSlots(ctx context.Context, date string, doctorID *uuid.UUID) (*dto.SlotListResponse, error) {
	day, err := scheduling.ParseDate(date, u.loc)
	if err != nil {
		return nil, err
	}
	provider := entity.ProviderFromDoctorID(doctorID)

	schedule, err := u.scheduleRepo.FindDay(ctx, u.db, provider, entity.WeekdayOf(day))
	if err != nil {
		u.log.Warnf("Failed to find %s schedule for %s: %+v", provider, date, err)
		return nil, err
	}

	var booked []string
	if schedule != nil && schedule.IsActive {
		booked, err = u.bookingRepo.FindBookedTimes(ctx, u.db, provider, scheduling.DayStart(day))
		if err != nil {
			u.log.Warnf("Failed to find booked times for %s on %s: %+v", provider, date, err)
			return nil, err
		}
	}

	return &dto.SlotListResponse{
		Date:     day.Format(scheduling.DateLayout),
		Provider: provider.Key(),
		Slots:    converter.SlotsToResponses(scheduling.GenerateSlots(day, schedule, booked)),
	}, nil
}

func clockToTime(offset time.Duration) datatypes.Time {
	return datatypes.NewTime(
		int(offset/time.Hour),
		int(offset%time.Hour/time.Minute),
		int(offset%time.Minute/time.Second),
		0,
	)
}
