package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"dailywag-backend/internal/delivery/http/middleware"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/repository"
	"dailywag-backend/internal/service"
	"dailywag-backend/internal/testdb"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 2 June 2025 is a Monday.
var monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func as(user *entity.User) context.Context {
	return middleware.WithIdentity(context.Background(), user.ID, user.RoleID)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type clinic struct {
	db        *gorm.DB
	schedules *scheduleUsecase
	bookings  *bookingUsecase
	pets      *petUsecase
	adoptions *adoptionUsecase
	products  *productUsecase
	members   *membershipUsecase

	admin    *entity.User
	doctor   *entity.User
	customer *entity.User
}

func newClinic(t *testing.T) *clinic {
	t.Helper()

	db := testdb.Open(t)
	log := quietLogger()

	scheduleRepo := repository.NewWeeklyScheduleRepository()
	bookingRepo := repository.NewBookingRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	petRepo := repository.NewPetRepository()
	audit := service.NewAuditService(log, repository.NewAuditLogRepository())
	events := service.NewBookingEventService(nil, log)

	c := &clinic{
		db:        db,
		schedules: NewScheduleUsecase(db, log, time.UTC, scheduleRepo, bookingRepo, doctorRepo, audit).(*scheduleUsecase),
		bookings:  NewBookingUsecase(db, log, time.UTC, bookingRepo, petRepo, doctorRepo, audit, events).(*bookingUsecase),
		pets:      NewPetUsecase(db, log, time.UTC, petRepo, repository.NewImmunizationRepository(), audit).(*petUsecase),
		adoptions: NewAdoptionUsecase(db, log, petRepo, repository.NewAdoptionRepository(), audit).(*adoptionUsecase),
		products:  NewProductUsecase(db, log, repository.NewProductRepository(), audit).(*productUsecase),
		members:   NewMembershipUsecase(db, log, time.UTC, repository.NewMembershipRepository(), audit).(*membershipUsecase),
		admin:     testdb.CreateUser(t, db, entity.RoleIDAdmin, "Ada"),
		doctor:    testdb.CreateDoctor(t, db, "Vera", "Surgery"),
		customer:  testdb.CreateUser(t, db, entity.RoleIDCustomer, "Cody"),
	}
	c.setNow(monday.Add(-24 * time.Hour))
	return c
}

func (c *clinic) setNow(at time.Time) {
	c.bookings.now = fixedClock(at)
	c.adoptions.now = fixedClock(at)
	c.members.now = fixedClock(at)
}
