package usecase

import (
	"errors"
	"testing"
	"time"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/scheduling"
	"dailywag-backend/internal/testdb"

	"github.com/google/uuid"
)

// confirmedAt books the customer's pet with the doctor at the given time and
// confirms it.
func (c *clinic) confirmedAt(t *testing.T, at time.Time) *dto.BookingResponse {
	t.Helper()

	pet := testdb.CreatePet(t, c.db, c.customer.ID, "Mochi")
	booking, err := c.bookings.CreateMedicalBooking(as(c.customer), &dto.CreateMedicalBookingRequest{
		PetID:       pet.ID,
		DoctorID:    &c.doctor.ID,
		ScheduledAt: at.Format(scheduling.SlotValueLayout),
	})
	if err != nil {
		t.Fatalf("CreateMedicalBooking: %v", err)
	}
	confirmed, err := c.bookings.UpdateStatus(as(c.doctor), booking.ID, &dto.UpdateBookingStatusRequest{Status: "Confirmed"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	return confirmed
}

func TestCreateBooking(t *testing.T) {
	c := newClinic(t)
	pet := testdb.CreatePet(t, c.db, c.customer.ID, "Biscuit")
	stranger := testdb.CreateUser(t, c.db, entity.RoleIDCustomer, "Sam")
	unknown := uuid.New()

	groom, err := c.bookings.CreateGroomingBooking(as(c.customer), &dto.CreateGroomingBookingRequest{
		PetID:              pet.ID,
		ScheduledAt:        "2025-06-02 10:00:00",
		ServiceDescription: "Bath and nail trim",
	})
	if err != nil {
		t.Fatalf("CreateGroomingBooking: %v", err)
	}
	if groom.Status != string(entity.BookingStatusPending) || groom.Provider != "grooming" || groom.DoctorID != nil {
		t.Fatalf("grooming booking = %+v, want pending grooming", groom)
	}
	if groom.Pet == nil || groom.Pet.Name != "Biscuit" {
		t.Fatalf("pet summary = %+v, want Biscuit", groom.Pet)
	}

	tests := []struct {
		name   string
		caller *entity.User
		req    dto.CreateMedicalBookingRequest
		want   error
	}{
		{name: "no doctor", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, ScheduledAt: "2025-06-02 10:00:00"}, want: ErrDoctorRequired},
		{name: "unknown doctor", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &unknown, ScheduledAt: "2025-06-02 10:00:00"}, want: ErrDoctorNotFound},
		{name: "bad time", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &c.doctor.ID, ScheduledAt: "2025-06-02T10:00"}, want: ErrInvalidScheduledAt},
		{name: "in the past", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &c.doctor.ID, ScheduledAt: "2025-05-01 10:00:00"}, want: ErrBookingInPast},
		{name: "someone else's pet", caller: stranger, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &c.doctor.ID, ScheduledAt: "2025-06-02 10:00:00"}, want: ErrPetNotFound},
		// slots are advisory, so the same time can be taken twice
		{name: "same time again", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &c.doctor.ID, ScheduledAt: "2025-06-02 10:00:00"}},
		{name: "same time twice", caller: c.customer, req: dto.CreateMedicalBookingRequest{PetID: pet.ID, DoctorID: &c.doctor.ID, ScheduledAt: "2025-06-02 10:00:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.bookings.CreateMedicalBooking(as(tt.caller), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CreateMedicalBooking error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && resp.Status != string(entity.BookingStatusPending) {
				t.Fatalf("status = %s, want Pending", resp.Status)
			}
		})
	}

	var count int64
	c.db.Model(&entity.Booking{}).Count(&count)
	if count != 3 {
		t.Fatalf("stored bookings = %d, want 3", count)
	}
}

func TestUpdateStatus(t *testing.T) {
	c := newClinic(t)
	other := testdb.CreateDoctor(t, c.db, "Otto", "Dermatology")
	pet := testdb.CreatePet(t, c.db, c.customer.ID, "Biscuit")

	booking, err := c.bookings.CreateMedicalBooking(as(c.customer), &dto.CreateMedicalBookingRequest{
		PetID:       pet.ID,
		DoctorID:    &c.doctor.ID,
		ScheduledAt: "2025-06-02 10:00:00",
	})
	if err != nil {
		t.Fatalf("CreateMedicalBooking: %v", err)
	}

	tests := []struct {
		name      string
		caller    *entity.User
		bookingID uuid.UUID
		status    string
		want      error
	}{
		{name: "unknown booking", caller: c.admin, bookingID: uuid.New(), status: "Confirmed", want: ErrBookingNotFound},
		{name: "invalid status", caller: c.admin, bookingID: booking.ID, status: "Done", want: ErrInvalidStatus},
		{name: "other doctor", caller: other, bookingID: booking.ID, status: "Confirmed", want: ErrBookingNotOwned},
		{name: "customer", caller: c.customer, bookingID: booking.ID, status: "Cancelled", want: ErrForbidden},
		{name: "assigned doctor", caller: c.doctor, bookingID: booking.ID, status: "Confirmed"},
		{name: "admin overrides terminal", caller: c.admin, bookingID: booking.ID, status: "Completed"},
		{name: "admin reopens", caller: c.admin, bookingID: booking.ID, status: "Pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.bookings.UpdateStatus(as(tt.caller), tt.bookingID, &dto.UpdateBookingStatusRequest{Status: tt.status})
			if !errors.Is(err, tt.want) {
				t.Fatalf("UpdateStatus error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && resp.Status != tt.status {
				t.Fatalf("status = %s, want %s", resp.Status, tt.status)
			}
		})
	}
}

func TestUpdateStatus_AnswersAfterSweep(t *testing.T) {
	c := newClinic(t)
	booking := c.confirmedAt(t, monday.Add(9*time.Hour))

	c.setNow(monday.Add(11 * time.Hour))
	resp, err := c.bookings.UpdateStatus(as(c.admin), booking.ID, &dto.UpdateBookingStatusRequest{Status: "Confirmed"})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if resp.Status != string(entity.BookingStatusNoShow) {
		t.Fatalf("UpdateStatus answered %s, want No-Show", resp.Status)
	}

	stored, err := c.bookings.GetBooking(as(c.admin), booking.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if stored.Status != resp.Status {
		t.Fatalf("GetBooking = %s, UpdateStatus answered %s", stored.Status, resp.Status)
	}
}

func TestCheckIn_Window(t *testing.T) {
	at := monday.Add(10 * time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		reason   error
		waitMins int
	}{
		{name: "61 minutes early", now: at.Add(-61 * time.Minute), reason: scheduling.ErrCheckInTooEarly, waitMins: 1},
		{name: "opens at 60 minutes", now: at.Add(-60 * time.Minute)},
		{name: "on time", now: at},
		{name: "closes at 15 minutes", now: at.Add(15 * time.Minute)},
		{name: "16 minutes late", now: at.Add(16 * time.Minute), reason: scheduling.ErrCheckInMissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClinic(t)
			booking := c.confirmedAt(t, at)

			c.setNow(tt.now)
			resp, err := c.bookings.CheckIn(as(c.customer), booking.ID)
			if tt.reason == nil {
				if err != nil {
					t.Fatalf("CheckIn: %v", err)
				}
				if resp.Status != string(entity.BookingStatusCheckedIn) || resp.CheckedInAt == nil {
					t.Fatalf("booking = %+v, want Checked-In with time", resp)
				}
				return
			}

			var checkInErr *scheduling.CheckInError
			if !errors.As(err, &checkInErr) || !errors.Is(err, tt.reason) {
				t.Fatalf("CheckIn error = %v, want %v", err, tt.reason)
			}
			if checkInErr.WaitMinutes != tt.waitMins {
				t.Fatalf("WaitMinutes = %d, want %d", checkInErr.WaitMinutes, tt.waitMins)
			}
		})
	}
}

func TestCheckIn_Rejections(t *testing.T) {
	c := newClinic(t)
	at := monday.Add(10 * time.Hour)
	booking := c.confirmedAt(t, at)
	c.setNow(at)

	stranger := testdb.CreateUser(t, c.db, entity.RoleIDCustomer, "Sam")
	if _, err := c.bookings.CheckIn(as(stranger), booking.ID); !errors.Is(err, ErrBookingNotOwned) {
		t.Fatalf("stranger check-in error = %v, want ErrBookingNotOwned", err)
	}
	if _, err := c.bookings.CheckIn(as(c.customer), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("unknown check-in error = %v, want ErrBookingNotFound", err)
	}

	if _, err := c.bookings.CheckIn(as(c.customer), booking.ID); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := c.bookings.CheckIn(as(c.customer), booking.ID); !errors.Is(err, scheduling.ErrCheckInNotConfirmed) {
		t.Fatalf("second check-in error = %v, want ErrCheckInNotConfirmed", err)
	}
}

func TestBookingReads_SweepFirst(t *testing.T) {
	c := newClinic(t)
	missed := c.confirmedAt(t, monday.Add(9*time.Hour))
	attended := c.confirmedAt(t, monday.Add(10*time.Hour))

	c.setNow(monday.Add(10 * time.Hour))
	if _, err := c.bookings.CheckIn(as(c.customer), attended.ID); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	// 09:00 was missed, the 10:00 visit started 61 minutes ago
	c.setNow(monday.Add(11*time.Hour + time.Minute))
	list, err := c.bookings.GetMyBookings(as(c.customer))
	if err != nil {
		t.Fatalf("GetMyBookings: %v", err)
	}

	statuses := map[uuid.UUID]string{}
	for _, b := range list.Bookings {
		statuses[b.ID] = b.Status
	}
	if statuses[missed.ID] != string(entity.BookingStatusNoShow) {
		t.Fatalf("missed booking = %s, want No-Show", statuses[missed.ID])
	}
	if statuses[attended.ID] != string(entity.BookingStatusCompleted) {
		t.Fatalf("attended booking = %s, want Completed", statuses[attended.ID])
	}

	// the check-in answer already swept 09:00, the read completed 10:00
	var sweeps int64
	c.db.Model(&entity.AuditLog{}).Where("action = ? AND user_id IS NULL", entity.AuditActionBookingSweep).Count(&sweeps)
	if sweeps != 2 {
		t.Fatalf("sweep audit entries = %d, want 2", sweeps)
	}

	// nothing left to move
	if err := c.bookings.SweepStatuses(as(c.admin), c.bookings.now()); err != nil {
		t.Fatalf("SweepStatuses: %v", err)
	}
	c.db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionBookingSweep).Count(&sweeps)
	if sweeps != 2 {
		t.Fatalf("idle sweep wrote an audit entry")
	}
}

func TestGetBooking_Visibility(t *testing.T) {
	c := newClinic(t)
	booking := c.confirmedAt(t, monday.Add(10*time.Hour))
	other := testdb.CreateDoctor(t, c.db, "Otto", "Dermatology")
	stranger := testdb.CreateUser(t, c.db, entity.RoleIDCustomer, "Sam")

	for _, user := range []*entity.User{c.customer, c.doctor, c.admin} {
		if _, err := c.bookings.GetBooking(as(user), booking.ID); err != nil {
			t.Fatalf("GetBooking as %s: %v", user.FirstName, err)
		}
	}
	for _, user := range []*entity.User{other, stranger} {
		if _, err := c.bookings.GetBooking(as(user), booking.ID); !errors.Is(err, ErrBookingNotOwned) {
			t.Fatalf("GetBooking as %s error = %v, want ErrBookingNotOwned", user.FirstName, err)
		}
	}
}

func TestGetAllBookings_Filter(t *testing.T) {
	c := newClinic(t)
	c.confirmedAt(t, monday.Add(10*time.Hour))
	c.confirmedAt(t, monday.Add(34*time.Hour))

	pet := testdb.CreatePet(t, c.db, c.customer.ID, "Biscuit")
	if _, err := c.bookings.CreateGroomingBooking(as(c.customer), &dto.CreateGroomingBookingRequest{
		PetID:       pet.ID,
		ScheduledAt: "2025-06-02 15:00:00",
	}); err != nil {
		t.Fatalf("CreateGroomingBooking: %v", err)
	}

	tests := []struct {
		name  string
		query dto.BookingListQuery
		want  int
	}{
		{name: "all", want: 3},
		{name: "confirmed", query: dto.BookingListQuery{Status: "Confirmed"}, want: 2},
		{name: "grooming", query: dto.BookingListQuery{Type: "grooming"}, want: 1},
		{name: "monday only", query: dto.BookingListQuery{From: "2025-06-02", To: "2025-06-02"}, want: 2},
		{name: "tuesday onwards", query: dto.BookingListQuery{From: "2025-06-03"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := c.bookings.GetAllBookings(as(c.admin), &tt.query)
			if err != nil {
				t.Fatalf("GetAllBookings: %v", err)
			}
			if list.Total != tt.want {
				t.Fatalf("Total = %d, want %d", list.Total, tt.want)
			}
		})
	}

	if _, err := c.bookings.GetAllBookings(as(c.admin), &dto.BookingListQuery{Type: "boarding"}); !errors.Is(err, ErrInvalidBookingQuery) {
		t.Fatalf("bad type error = %v, want ErrInvalidBookingQuery", err)
	}
}
