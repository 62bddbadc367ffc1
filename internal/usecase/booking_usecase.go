package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailywag-backend/internal/converter"
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/domain/repository"
	repo "dailywag-backend/internal/repository"
	"dailywag-backend/internal/scheduling"
	"dailywag-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotOwned     = errors.New("booking does not belong to you")
	ErrDoctorRequired      = errors.New("medical bookings require a doctor")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidScheduledAt  = errors.New("invalid scheduled time, use YYYY-MM-DD HH:MM:SS")
	ErrBookingInPast       = errors.New("cannot book a time in the past")
	ErrInvalidBookingQuery = errors.New("invalid booking filter")
)

type BookingUsecase interface {
	CreateGroomingBooking(ctx context.Context, req *dto.CreateGroomingBookingRequest) (*dto.BookingResponse, error)
	CreateMedicalBooking(ctx context.Context, req *dto.CreateMedicalBookingRequest) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetDoctorBookings(ctx context.Context) (*dto.BookingListResponse, error)
	GetAllBookings(ctx context.Context, query *dto.BookingListQuery) (*dto.BookingListResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	CheckIn(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	// SweepStatuses applies the automatic No-Show and Completed transitions
	// as of now.
	SweepStatuses(ctx context.Context, now time.Time) error
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	loc          *time.Location
	now          func() time.Time
	bookingRepo  repository.BookingRepository
	petRepo      repository.PetRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	events       service.BookingEventService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	bookingRepo repository.BookingRepository,
	petRepo repository.PetRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	events service.BookingEventService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		loc:          loc,
		now:          time.Now,
		bookingRepo:  bookingRepo,
		petRepo:      petRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		events:       events,
	}
}

func (u *bookingUsecase) CreateGroomingBooking(ctx context.Context, req *dto.CreateGroomingBookingRequest) (*dto.BookingResponse, error) {
	return u.create(ctx, entity.BookingTypeGrooming, nil, req.PetID, req.ScheduledAt, req.ServiceDescription)
}

func (u *bookingUsecase) CreateMedicalBooking(ctx context.Context, req *dto.CreateMedicalBookingRequest) (*dto.BookingResponse, error) {
	if req.DoctorID == nil || *req.DoctorID == uuid.Nil {
		return nil, ErrDoctorRequired
	}
	return u.create(ctx, entity.BookingTypeMedical, req.DoctorID, req.PetID, req.ScheduledAt, req.ServiceDescription)
}

// create stores a Pending booking. Slots are advisory: the requested time
// is not checked against existing bookings.
func (u *bookingUsecase) create(ctx context.Context, bookingType entity.BookingType, doctorID *uuid.UUID, petID uuid.UUID, scheduledAt, description string) (*dto.BookingResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	at, err := time.ParseInLocation(scheduling.SlotValueLayout, scheduledAt, u.loc)
	if err != nil {
		return nil, ErrInvalidScheduledAt
	}
	if at.Before(u.now()) {
		return nil, ErrBookingInPast
	}

	if doctorID != nil {
		doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, *doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *doctorID, err)
			return nil, err
		}
		if doctor == nil || (doctor.User.IsActive != nil && !*doctor.User.IsActive) {
			return nil, ErrDoctorNotFound
		}
	}

	pet, err := u.petRepo.FindByID(ctx, u.db, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil || pet.OwnerID != c.UserID {
		return nil, ErrPetNotFound
	}

	booking := &entity.Booking{
		CustomerID:         c.UserID,
		PetID:              petID,
		DoctorID:           doctorID,
		Type:               bookingType,
		ScheduledAt:        at,
		ServiceDescription: description,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookingRepo.Create(ctx, tx, booking); err != nil {
		if repo.IsForeignKeyError(err, "pet") {
			return nil, ErrPetNotFound
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionBookingCreate, "booking", booking.ID.String(), converter.BookingToResponse(booking)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit booking: %+v", err)
		return nil, err
	}

	u.log.Infof("Booking created: id=%s, provider=%s, type=%s, at=%s", booking.ID, booking.Provider(), bookingType, at.Format(time.RFC3339))
	u.publish(ctx, service.BookingEventCreated, booking)

	return u.reload(ctx, booking)
}

func (u *bookingUsecase) GetMyBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.SweepStatuses(ctx, u.now()); err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindByCustomerID(ctx, u.db, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for customer %s: %+v", c.UserID, err)
		return nil, err
	}

	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetDoctorBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !c.IsDoctor() {
		return nil, ErrForbidden
	}
	if err := u.SweepStatuses(ctx, u.now()); err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindByDoctorID(ctx, u.db, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for doctor %s: %+v", c.UserID, err)
		return nil, err
	}

	return listResponse(bookings), nil
}

func (u *bookingUsecase) GetAllBookings(ctx context.Context, query *dto.BookingListQuery) (*dto.BookingListResponse, error) {
	filter, err := u.toFilter(query)
	if err != nil {
		return nil, err
	}
	if err := u.SweepStatuses(ctx, u.now()); err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find all bookings: %+v", err)
		return nil, err
	}

	return listResponse(bookings), nil
}

func (u *bookingUsecase) toFilter(query *dto.BookingListQuery) (*entity.BookingFilter, error) {
	filter := &entity.BookingFilter{}
	if query == nil {
		return filter, nil
	}

	if query.Status != "" {
		status, ok := entity.ParseBookingStatus(query.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if query.Type != "" {
		bookingType := entity.BookingType(query.Type)
		if bookingType != entity.BookingTypeGrooming && bookingType != entity.BookingTypeMedical {
			return nil, ErrInvalidBookingQuery
		}
		filter.Type = &bookingType
	}
	if query.From != "" {
		from, err := scheduling.ParseDate(query.From, u.loc)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := scheduling.ParseDate(query.To, u.loc)
		if err != nil {
			return nil, err
		}
		// inclusive end date
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	return filter, nil
}

// GetBooking is visible to the owner, the assigned doctor and admins.
func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.SweepStatuses(ctx, u.now()); err != nil {
		return nil, err
	}

	booking, err := u.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !c.IsAdmin() && !booking.OwnedBy(c.UserID) && !booking.AssignedTo(c.UserID) {
		return nil, ErrBookingNotOwned
	}

	return converter.BookingToResponse(booking), nil
}

// UpdateStatus overwrites the status. Admins may change any booking, doctors
// only the ones assigned to them.
func (u *bookingUsecase) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	status, ok := entity.ParseBookingStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	booking, err := u.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch {
	case c.IsAdmin():
	case c.IsDoctor() && booking.AssignedTo(c.UserID):
	case c.IsDoctor():
		return nil, ErrBookingNotOwned
	default:
		return nil, ErrForbidden
	}

	previous := booking.Status

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.bookingRepo.UpdateStatus(ctx, tx, bookingID, status)
	if err != nil {
		u.log.Warnf("Failed to update status of booking %s: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionBookingStatus, "booking", bookingID.String(), previous, status); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit status of booking %s: %+v", bookingID, err)
		return nil, err
	}

	booking.Status = status
	u.log.Infof("Booking %s status: %s -> %s by %s", bookingID, previous, status, c.UserID)
	u.publish(ctx, service.BookingEventStatusChanged, booking)

	return u.reload(ctx, booking)
}

// CheckIn lets the owner check a Confirmed booking in between 60 minutes
// before and 15 minutes after its scheduled time.
func (u *bookingUsecase) CheckIn(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	booking, err := u.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(c.UserID) {
		return nil, ErrBookingNotOwned
	}

	now := u.now()
	if err := scheduling.EvaluateCheckIn(booking, now); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.bookingRepo.CheckIn(ctx, tx, bookingID, now)
	if err != nil {
		u.log.Warnf("Failed to check in booking %s: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		// status changed since it was read
		return nil, &scheduling.CheckInError{Reason: scheduling.ErrCheckInNotConfirmed}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionBookingCheckIn, "booking", bookingID.String(), booking.Status, entity.BookingStatusCheckedIn); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit check-in of booking %s: %+v", bookingID, err)
		return nil, err
	}

	booking.Status = entity.BookingStatusCheckedIn
	booking.CheckedInAt = &now
	u.log.Infof("Booking %s checked in at %s", bookingID, now.Format(time.RFC3339))
	u.publish(ctx, service.BookingEventCheckedIn, booking)

	return u.reload(ctx, booking)
}

// SweepStatuses runs both automatic transitions independently; a failure of
// one does not skip the other.
func (u *bookingUsecase) SweepStatuses(ctx context.Context, now time.Time) error {
	var errs []error

	noShows, err := u.bookingRepo.MarkNoShows(ctx, u.db, now)
	if err != nil {
		u.log.Warnf("Failed to mark no-shows: %+v", err)
		errs = append(errs, fmt.Errorf("mark no-shows: %w", err))
	}

	completed, err := u.bookingRepo.MarkCompleted(ctx, u.db, now)
	if err != nil {
		u.log.Warnf("Failed to mark completed bookings: %+v", err)
		errs = append(errs, fmt.Errorf("mark completed: %w", err))
	}

	if noShows > 0 || completed > 0 {
		u.log.Infof("Booking sweep: %d no-show, %d completed", noShows, completed)
		metadata := map[string]interface{}{
			"no_show":   noShows,
			"completed": completed,
			"as_of":     now.UTC().Format(time.RFC3339),
		}
		// the transitions are already stored; a lost audit entry only warns
		if err := u.auditService.LogSystem(ctx, u.db.WithContext(ctx), entity.AuditActionBookingSweep, metadata); err != nil {
			u.log.Warnf("Failed to audit booking sweep: %+v", err)
		}
	}

	return errors.Join(errs...)
}

func (u *bookingUsecase) find(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(ctx, u.db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// reload sweeps first so a write never answers with a status already past
// its deadline, then returns the stored booking with its relations. It falls
// back to the in-memory copy when the booking cannot be read back.
func (u *bookingUsecase) reload(ctx context.Context, booking *entity.Booking) (*dto.BookingResponse, error) {
	if err := u.SweepStatuses(ctx, u.now()); err != nil {
		return nil, err
	}

	full, err := u.bookingRepo.FindByID(ctx, u.db, booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return converter.BookingToResponse(booking), nil
	}
	return converter.BookingToResponse(full), nil
}

func (u *bookingUsecase) publish(ctx context.Context, routingKey string, booking *entity.Booking) {
	u.events.Publish(ctx, routingKey, service.BookingEvent{
		BookingID:   booking.ID,
		CustomerID:  booking.CustomerID,
		DoctorID:    booking.DoctorID,
		Type:        string(booking.Type),
		Status:      string(booking.Status),
		ScheduledAt: booking.ScheduledAt,
		OccurredAt:  u.now().UTC(),
	})
}

func listResponse(bookings []entity.Booking) *dto.BookingListResponse {
	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}
}
