package usecase

import (
	"errors"
	"testing"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/scheduling"
	"dailywag-backend/internal/testdb"

	"github.com/google/uuid"
)

func boolPtr(b bool) *bool { return &b }

func TestSetSchedule_Authorization(t *testing.T) {
	c := newClinic(t)
	other := testdb.CreateDoctor(t, c.db, "Otto", "Dermatology")
	unknown := uuid.New()

	tests := []struct {
		name     string
		caller   *entity.User
		doctorID *uuid.UUID
		want     error
		provider string
	}{
		{name: "doctor sets own", caller: c.doctor, provider: "doctor:" + c.doctor.ID.String()},
		{name: "doctor names self", caller: c.doctor, doctorID: &c.doctor.ID, provider: "doctor:" + c.doctor.ID.String()},
		{name: "doctor sets another", caller: c.doctor, doctorID: &other.ID, want: ErrForbidden},
		{name: "admin sets grooming", caller: c.admin, provider: "grooming"},
		{name: "admin sets doctor", caller: c.admin, doctorID: &other.ID, provider: "doctor:" + other.ID.String()},
		{name: "admin sets unknown doctor", caller: c.admin, doctorID: &unknown, want: ErrDoctorNotFound},
		{name: "customer", caller: c.customer, want: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.schedules.SetSchedule(as(tt.caller), &dto.SetScheduleRequest{
				DoctorID:  tt.doctorID,
				DayOfWeek: "Monday",
				StartTime: "09:00",
				EndTime:   "12:00",
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetSchedule error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && resp.Provider != tt.provider {
				t.Fatalf("provider = %s, want %s", resp.Provider, tt.provider)
			}
		})
	}
}

func TestSetSchedule_Validation(t *testing.T) {
	c := newClinic(t)

	tests := []struct {
		name string
		req  dto.SetScheduleRequest
		want error
	}{
		{name: "bad day", req: dto.SetScheduleRequest{DayOfWeek: "monday", StartTime: "09:00", EndTime: "12:00"}, want: ErrInvalidDay},
		{name: "bad start", req: dto.SetScheduleRequest{DayOfWeek: "Monday", StartTime: "9am", EndTime: "12:00"}, want: ErrInvalidTimeFormat},
		{name: "bad end", req: dto.SetScheduleRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "25:00"}, want: ErrInvalidTimeFormat},
		{name: "inverted active", req: dto.SetScheduleRequest{DayOfWeek: "Monday", StartTime: "12:00", EndTime: "09:00"}, want: ErrInvalidTimeRange},
		{name: "inverted inactive", req: dto.SetScheduleRequest{DayOfWeek: "Monday", StartTime: "12:00", EndTime: "09:00", IsActive: boolPtr(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.schedules.SetSchedule(as(c.doctor), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetSchedule error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSetSchedule_OverwritesDay(t *testing.T) {
	c := newClinic(t)
	ctx := as(c.doctor)

	for _, req := range []dto.SetScheduleRequest{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: "Monday", StartTime: "13:00", EndTime: "17:00"},
		{DayOfWeek: "Tuesday", StartTime: "08:00", EndTime: "10:00", IsActive: boolPtr(false)},
	} {
		if _, err := c.schedules.SetSchedule(ctx, &req); err != nil {
			t.Fatalf("SetSchedule(%s): %v", req.DayOfWeek, err)
		}
	}

	list, err := c.schedules.GetSchedule(ctx, &c.doctor.ID)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if len(list.Schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(list.Schedules))
	}
	mon := list.Schedules[0]
	if mon.DayOfWeek != "Monday" || mon.StartTime != "13:00:00" || mon.EndTime != "17:00:00" || !mon.IsActive {
		t.Fatalf("Monday = %+v, want active 13:00-17:00", mon)
	}
	if list.Schedules[1].IsActive {
		t.Fatalf("Tuesday should be inactive")
	}

	var audits int64
	c.db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionScheduleSet).Count(&audits)
	if audits != 3 {
		t.Fatalf("audit entries = %d, want 3", audits)
	}
}

func TestGetSlots_MarksBookedTimes(t *testing.T) {
	c := newClinic(t)

	if _, err := c.schedules.SetSchedule(as(c.admin), &dto.SetScheduleRequest{
		DoctorID:  &c.doctor.ID,
		DayOfWeek: "Monday",
		StartTime: "09:00",
		EndTime:   "12:00",
	}); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}

	pet := testdb.CreatePet(t, c.db, c.customer.ID, "Biscuit")
	booking, err := c.bookings.CreateMedicalBooking(as(c.customer), &dto.CreateMedicalBookingRequest{
		PetID:       pet.ID,
		DoctorID:    &c.doctor.ID,
		ScheduledAt: "2025-06-02 09:30:00",
	})
	if err != nil {
		t.Fatalf("CreateMedicalBooking: %v", err)
	}
	if _, err := c.bookings.UpdateStatus(as(c.admin), booking.ID, &dto.UpdateBookingStatusRequest{Status: "Confirmed"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	slots, err := c.schedules.GetSlots(as(c.customer), "2025-06-02", &c.doctor.ID)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if len(slots.Slots) != 6 {
		t.Fatalf("got %d slots, want 6", len(slots.Slots))
	}

	first, second := slots.Slots[0], slots.Slots[1]
	if first.Value != "2025-06-02 09:00:00" || first.Display != "9:00 AM" || !first.Available {
		t.Fatalf("first slot = %+v, want available 09:00", first)
	}
	if second.Value != "2025-06-02 09:30:00" || second.Available {
		t.Fatalf("second slot = %+v, want booked 09:30", second)
	}
	if last := slots.Slots[5]; last.Value != "2025-06-02 11:30:00" {
		t.Fatalf("last slot = %s, want 11:30", last.Value)
	}

	// the grooming calendar is separate
	groom, err := c.schedules.GetSlots(as(c.customer), "2025-06-02", nil)
	if err != nil {
		t.Fatalf("GetSlots grooming: %v", err)
	}
	if len(groom.Slots) != 0 {
		t.Fatalf("grooming slots = %d, want 0", len(groom.Slots))
	}

	if _, err := c.bookings.UpdateStatus(as(c.admin), booking.ID, &dto.UpdateBookingStatusRequest{Status: "Cancelled"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	slots, err = c.schedules.GetSlots(as(c.customer), "2025-06-02", &c.doctor.ID)
	if err != nil {
		t.Fatalf("GetSlots after cancel: %v", err)
	}
	if !slots.Slots[1].Available {
		t.Fatalf("09:30 should be free after cancellation")
	}
}

func TestGetSlots_ClosedDayAndBadDate(t *testing.T) {
	c := newClinic(t)

	if _, err := c.schedules.SetSchedule(as(c.admin), &dto.SetScheduleRequest{
		DayOfWeek: "Monday",
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  boolPtr(false),
	}); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}

	slots, err := c.schedules.GetSlots(as(c.customer), "2025-06-02", nil)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if slots.Provider != "grooming" || len(slots.Slots) != 0 {
		t.Fatalf("slots = %+v, want no grooming slots", slots)
	}

	if _, err := c.schedules.GetSlots(as(c.customer), "06/02/2025", nil); !errors.Is(err, scheduling.ErrInvalidDate) {
		t.Fatalf("GetSlots bad date error = %v, want ErrInvalidDate", err)
	}
}
