package repository

import (
	"context"
	"errors"
	"time"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	booking.Status = entity.BookingStatusPending
	booking.CheckedInAt = nil
	booking.ScheduledAt = booking.ScheduledAt.UTC()
	return db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.WithContext(ctx).
		Preload("Pet").Preload("Customer").Preload("Doctor").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, db *gorm.DB, customerID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Preload("Pet").Preload("Doctor").
		Where("customer_id = ?", customerID).
		Order("scheduled_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByDoctorID lists a doctor's queue, earliest first.
func (r *bookingRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Preload("Pet").Preload("Customer").
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := db.WithContext(ctx).Preload("Pet").Preload("Customer").Preload("Doctor")

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.From != nil {
			query = query.Where("scheduled_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("scheduled_at < ?", *filter.To)
		}
	}

	if err := query.Order("scheduled_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus overwrites the status unconditionally.
// Returns affected rows: 0 means the booking does not exist.
func (r *bookingRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.BookingStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) FindBookedTimes(ctx context.Context, db *gorm.DB, provider entity.Provider, dayStart time.Time) ([]string, error) {
	query := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("scheduled_at >= ? AND scheduled_at < ?", dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC()).
		Where("status <> ?", entity.BookingStatusCancelled)

	if provider.IsGrooming() {
		query = query.Where("doctor_id IS NULL")
	} else {
		query = query.Where("doctor_id = ?", provider.DoctorID)
	}

	var scheduled []time.Time
	if err := query.Pluck("scheduled_at", &scheduled).Error; err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(scheduled))
	for _, at := range scheduled {
		booked = append(booked, at.In(dayStart.Location()).Format(time.TimeOnly))
	}
	return booked, nil
}

// CheckIn only moves a booking that is still Confirmed, so a concurrent
// status change wins over a stale check-in.
func (r *bookingRepository) CheckIn(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, entity.BookingStatusConfirmed).
		Updates(map[string]interface{}{
			"status":        entity.BookingStatusCheckedIn,
			"checked_in_at": at.UTC(),
		})
	return result.RowsAffected, result.Error
}

// MarkNoShows moves Confirmed bookings whose check-in window has closed.
func (r *bookingRepository) MarkNoShows(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status = ? AND scheduled_at < ?", entity.BookingStatusConfirmed, now.Add(-entity.NoShowAfter).UTC()).
		Update("status", entity.BookingStatusNoShow)
	return result.RowsAffected, result.Error
}

// MarkCompleted closes Checked-In bookings once the appointment has run its course.
func (r *bookingRepository) MarkCompleted(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status = ? AND scheduled_at < ?", entity.BookingStatusCheckedIn, now.Add(-entity.CompletionAfter).UTC()).
		Update("status", entity.BookingStatusCompleted)
	return result.RowsAffected, result.Error
}
