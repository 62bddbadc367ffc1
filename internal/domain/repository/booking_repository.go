package repository

import (
	"context"
	"time"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	// Create always stores the booking as Pending.
	Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, db *gorm.DB, customerID uuid.UUID) ([]entity.Booking, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Booking, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.BookingStatus) (int64, error)
	// FindBookedTimes returns the "15:04:05" time of day of every non-cancelled
	// booking of the provider within [dayStart, dayStart+24h).
	FindBookedTimes(ctx context.Context, db *gorm.DB, provider entity.Provider, dayStart time.Time) ([]string, error)
	CheckIn(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
	MarkNoShows(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
	MarkCompleted(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}
