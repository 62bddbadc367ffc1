package repository

import (
	"context"
	"slices"
	"testing"
	"time"

	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/testdb"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingFixture struct {
	db       *gorm.DB
	repo     *bookingRepository
	customer *entity.User
	doctor   *entity.User
	pet      *entity.Pet
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	db := testdb.Open(t)
	customer := testdb.CreateUser(t, db, entity.RoleIDCustomer, "Carla")
	return &bookingFixture{
		db:       db,
		repo:     &bookingRepository{},
		customer: customer,
		doctor:   testdb.CreateDoctor(t, db, "Dan", "General"),
		pet:      testdb.CreatePet(t, db, customer.ID, "Biscuit"),
	}
}

func (f *bookingFixture) book(t *testing.T, doctorID *uuid.UUID, at time.Time, status entity.BookingStatus) *entity.Booking {
	t.Helper()
	booking := &entity.Booking{
		CustomerID:  f.customer.ID,
		PetID:       f.pet.ID,
		DoctorID:    doctorID,
		Type:        entity.BookingTypeGrooming,
		ScheduledAt: at,
		Status:      entity.BookingStatusCompleted,
	}
	if doctorID != nil {
		booking.Type = entity.BookingTypeMedical
	}
	if err := f.repo.Create(context.Background(), f.db, booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if status != entity.BookingStatusPending {
		if _, err := f.repo.UpdateStatus(context.Background(), f.db, booking.ID, status); err != nil {
			t.Fatalf("update status: %v", err)
		}
	}
	booking.Status = status
	return booking
}

func (f *bookingFixture) status(t *testing.T, id uuid.UUID) entity.BookingStatus {
	t.Helper()
	got, err := f.repo.FindByID(context.Background(), f.db, id)
	if err != nil || got == nil {
		t.Fatalf("FindByID(%s) = %v, %v", id, got, err)
	}
	return got.Status
}

func TestBookingCreateForcesPending(t *testing.T) {
	f := newBookingFixture(t)
	at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	booking := f.book(t, nil, at, entity.BookingStatusPending)

	if got := f.status(t, booking.ID); got != entity.BookingStatusPending {
		t.Fatalf("status = %s, want Pending", got)
	}
}

func TestBookingCreateAllowsDoubleBooking(t *testing.T) {
	f := newBookingFixture(t)
	at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	f.book(t, nil, at, entity.BookingStatusPending)
	f.book(t, nil, at, entity.BookingStatusPending)

	bookings, err := f.repo.FindByCustomerID(context.Background(), f.db, f.customer.ID)
	if err != nil {
		t.Fatalf("FindByCustomerID: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("len = %d, want 2", len(bookings))
	}
}

func TestFindBookedTimesScopesByProviderAndSkipsCancelled(t *testing.T) {
	f := newBookingFixture(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	f.book(t, nil, day.Add(9*time.Hour+30*time.Minute), entity.BookingStatusConfirmed)
	f.book(t, nil, day.Add(10*time.Hour), entity.BookingStatusCancelled)
	f.book(t, nil, day.Add(24*time.Hour+9*time.Hour), entity.BookingStatusConfirmed)
	f.book(t, &f.doctor.ID, day.Add(11*time.Hour), entity.BookingStatusPending)

	grooming, err := f.repo.FindBookedTimes(context.Background(), f.db, entity.GroomingProvider(), day)
	if err != nil {
		t.Fatalf("FindBookedTimes grooming: %v", err)
	}
	if !slices.Equal(grooming, []string{"09:30:00"}) {
		t.Fatalf("grooming booked = %v, want [09:30:00]", grooming)
	}

	doctor, err := f.repo.FindBookedTimes(context.Background(), f.db, entity.DoctorProvider(f.doctor.ID), day)
	if err != nil {
		t.Fatalf("FindBookedTimes doctor: %v", err)
	}
	if !slices.Equal(doctor, []string{"11:00:00"}) {
		t.Fatalf("doctor booked = %v, want [11:00:00]", doctor)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	f := newBookingFixture(t)

	rows, err := f.repo.UpdateStatus(context.Background(), f.db, uuid.New(), entity.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows = %d, want 0", rows)
	}
}

func TestCheckInOnlyMovesConfirmed(t *testing.T) {
	f := newBookingFixture(t)
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	pending := f.book(t, nil, at, entity.BookingStatusPending)
	confirmed := f.book(t, nil, at, entity.BookingStatusConfirmed)

	rows, err := f.repo.CheckIn(context.Background(), f.db, pending.ID, at)
	if err != nil || rows != 0 {
		t.Fatalf("CheckIn pending = %d, %v; want 0, nil", rows, err)
	}

	rows, err = f.repo.CheckIn(context.Background(), f.db, confirmed.ID, at.Add(-10*time.Minute))
	if err != nil || rows != 1 {
		t.Fatalf("CheckIn confirmed = %d, %v; want 1, nil", rows, err)
	}

	got, err := f.repo.FindByID(context.Background(), f.db, confirmed.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != entity.BookingStatusCheckedIn || got.CheckedInAt == nil {
		t.Fatalf("after check-in: status=%s checked_in_at=%v", got.Status, got.CheckedInAt)
	}
}

func TestSweepTransitions(t *testing.T) {
	f := newBookingFixture(t)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	staleConfirmed := f.book(t, nil, now.Add(-16*time.Minute), entity.BookingStatusConfirmed)
	freshConfirmed := f.book(t, nil, now.Add(-14*time.Minute), entity.BookingStatusConfirmed)
	staleCheckedIn := f.book(t, nil, now.Add(-61*time.Minute), entity.BookingStatusCheckedIn)
	freshCheckedIn := f.book(t, nil, now.Add(-59*time.Minute), entity.BookingStatusCheckedIn)
	oldPending := f.book(t, nil, now.Add(-5*time.Hour), entity.BookingStatusPending)

	noShows, err := f.repo.MarkNoShows(context.Background(), f.db, now)
	if err != nil || noShows != 1 {
		t.Fatalf("MarkNoShows = %d, %v; want 1, nil", noShows, err)
	}
	completed, err := f.repo.MarkCompleted(context.Background(), f.db, now)
	if err != nil || completed != 1 {
		t.Fatalf("MarkCompleted = %d, %v; want 1, nil", completed, err)
	}

	want := map[uuid.UUID]entity.BookingStatus{
		staleConfirmed.ID: entity.BookingStatusNoShow,
		freshConfirmed.ID: entity.BookingStatusConfirmed,
		staleCheckedIn.ID: entity.BookingStatusCompleted,
		freshCheckedIn.ID: entity.BookingStatusCheckedIn,
		oldPending.ID:     entity.BookingStatusPending,
	}
	for id, status := range want {
		if got := f.status(t, id); got != status {
			t.Fatalf("booking %s status = %s, want %s", id, got, status)
		}
	}
}

func TestBookingListOrdering(t *testing.T) {
	f := newBookingFixture(t)
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	early := f.book(t, &f.doctor.ID, base, entity.BookingStatusPending)
	late := f.book(t, &f.doctor.ID, base.Add(2*time.Hour), entity.BookingStatusPending)

	mine, err := f.repo.FindByCustomerID(context.Background(), f.db, f.customer.ID)
	if err != nil {
		t.Fatalf("FindByCustomerID: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != late.ID {
		t.Fatalf("customer list not newest first")
	}

	queue, err := f.repo.FindByDoctorID(context.Background(), f.db, f.doctor.ID)
	if err != nil {
		t.Fatalf("FindByDoctorID: %v", err)
	}
	if len(queue) != 2 || queue[0].ID != early.ID {
		t.Fatalf("doctor list not earliest first")
	}
	if queue[0].Pet == nil || queue[0].Pet.Name != "Biscuit" {
		t.Fatalf("doctor list pet not preloaded: %+v", queue[0].Pet)
	}

	status := entity.BookingStatusPending
	all, err := f.repo.FindAll(context.Background(), f.db, &entity.BookingFilter{Status: &status})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != late.ID {
		t.Fatalf("admin list not newest first")
	}
}
