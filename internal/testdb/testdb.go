// Package testdb opens throwaway sqlite databases carrying the full schema,
// for repository and usecase tests.
package testdb

import (
	"testing"

	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an in-memory database. A single connection keeps every
// query on the same in-memory instance, so code under test must run its
// statements through the transaction it opened.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.WeeklySchedule{},
		&entity.Pet{},
		&entity.Immunization{},
		&entity.Booking{},
		&entity.AdoptionRequest{},
		&entity.Product{},
		&entity.AuditLog{},
		&entity.Membership{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDCustomer, RoleName: entity.RoleCustomer},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

func CreateUser(t testing.TB, db *gorm.DB, roleID int, firstName string) *entity.User {
	t.Helper()

	user := &entity.User{
		RoleID:    roleID,
		Email:     firstName + "-" + uuid.NewString()[:8] + "@dailywag.test",
		FirstName: firstName,
	}
	if err := db.Omit("Role").Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateDoctor creates an active doctor with a profile.
func CreateDoctor(t testing.TB, db *gorm.DB, firstName, specialization string) *entity.User {
	t.Helper()

	user := CreateUser(t, db, entity.RoleIDDoctor, firstName)
	profile := &entity.DoctorProfile{
		UserID:         user.ID,
		LicenseNumber:  "LIC-" + user.ID.String()[:8],
		Specialization: specialization,
	}
	if err := db.Omit("User").Create(profile).Error; err != nil {
		t.Fatalf("create doctor profile: %v", err)
	}
	return user
}

func CreatePet(t testing.TB, db *gorm.DB, ownerID uuid.UUID, name string) *entity.Pet {
	t.Helper()

	pet := &entity.Pet{
		OwnerID:  ownerID,
		Name:     name,
		Category: "Dog",
		Age:      3,
	}
	if err := db.Omit("Owner", "Immunizations").Create(pet).Error; err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return pet
}
