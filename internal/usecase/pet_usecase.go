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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPetNotFound          = errors.New("pet not found")
	ErrImmunizationNotFound = errors.New("immunization record not found")
	ErrInvalidVaccineDate   = errors.New("invalid vaccine date, use YYYY-MM-DD")
)

type PetUsecase interface {
	GetMyPets(ctx context.Context) (*dto.PetListResponse, error)
	GetAllPets(ctx context.Context) (*dto.PetListResponse, error)
	GetPet(ctx context.Context, petID uuid.UUID) (*dto.PetResponse, error)
	CreatePet(ctx context.Context, req *dto.CreatePetRequest) (*dto.PetResponse, error)
	UpdatePet(ctx context.Context, petID uuid.UUID, req *dto.UpdatePetRequest) (*dto.PetResponse, error)
	DeletePet(ctx context.Context, petID uuid.UUID) error
	GetImmunizations(ctx context.Context, petID uuid.UUID) (*dto.ImmunizationListResponse, error)
	AddImmunization(ctx context.Context, petID uuid.UUID, req *dto.CreateImmunizationRequest) (*dto.ImmunizationListResponse, error)
	DeleteImmunization(ctx context.Context, petID uuid.UUID, immunizationID int64) error
}

type petUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	loc              *time.Location
	petRepo          repository.PetRepository
	immunizationRepo repository.ImmunizationRepository
	auditService     service.AuditService
}

func NewPetUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	petRepo repository.PetRepository,
	immunizationRepo repository.ImmunizationRepository,
	auditService service.AuditService,
) PetUsecase {
	return &petUsecase{
		db:               db,
		log:              log,
		loc:              loc,
		petRepo:          petRepo,
		immunizationRepo: immunizationRepo,
		auditService:     auditService,
	}
}

func (u *petUsecase) GetMyPets(ctx context.Context) (*dto.PetListResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	pets, err := u.petRepo.FindByOwner(ctx, u.db, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to find pets of %s: %+v", c.UserID, err)
		return nil, err
	}

	return &dto.PetListResponse{Pets: converter.PetsToResponses(pets), Total: len(pets)}, nil
}

func (u *petUsecase) GetAllPets(ctx context.Context) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all pets: %+v", err)
		return nil, err
	}

	return &dto.PetListResponse{Pets: converter.PetsToResponses(pets), Total: len(pets)}, nil
}

func (u *petUsecase) GetPet(ctx context.Context, petID uuid.UUID) (*dto.PetResponse, error) {
	pet, err := u.visiblePet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return converter.PetToResponse(pet), nil
}

func (u *petUsecase) CreatePet(ctx context.Context, req *dto.CreatePetRequest) (*dto.PetResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	pet := &entity.Pet{
		OwnerID:          c.UserID,
		Name:             req.Name,
		Category:         req.Category,
		Breed:            req.Breed,
		Age:              req.Age,
		MedicalCondition: req.MedicalCondition,
		PhotoURL:         req.PhotoURL,
		AdoptionStatus:   entity.AdoptionStatusNotAvailable,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.petRepo.Create(ctx, tx, pet); err != nil {
		u.log.Warnf("Failed to create pet: %+v", err)
		return nil, err
	}

	resp := converter.PetToResponse(pet)
	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionPetCreate, "pet", pet.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit pet: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *petUsecase) UpdatePet(ctx context.Context, petID uuid.UUID, req *dto.UpdatePetRequest) (*dto.PetResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	pet, err := u.ownedPet(ctx, c, petID)
	if err != nil {
		return nil, err
	}
	before := converter.PetToResponse(pet)

	pet.Name = req.Name
	pet.Category = req.Category
	pet.Breed = req.Breed
	pet.Age = req.Age
	pet.MedicalCondition = req.MedicalCondition
	pet.PhotoURL = req.PhotoURL

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.petRepo.Update(ctx, tx, pet)
	if err != nil {
		u.log.Warnf("Failed to update pet %s: %+v", petID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPetNotFound
	}

	after := converter.PetToResponse(pet)
	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionPetUpdate, "pet", petID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit pet %s: %+v", petID, err)
		return nil, err
	}

	return after, nil
}

func (u *petUsecase) DeletePet(ctx context.Context, petID uuid.UUID) error {
	c, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	pet, err := u.ownedPet(ctx, c, petID)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.petRepo.Delete(ctx, tx, petID, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to delete pet %s: %+v", petID, err)
		return err
	}
	if rows == 0 {
		return ErrPetNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &c.UserID, entity.AuditActionPetDelete, "pet", petID.String(), converter.PetToResponse(pet)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit pet deletion %s: %+v", petID, err)
		return err
	}

	return nil
}

func (u *petUsecase) GetImmunizations(ctx context.Context, petID uuid.UUID) (*dto.ImmunizationListResponse, error) {
	if _, err := u.visiblePet(ctx, petID); err != nil {
		return nil, err
	}

	records, err := u.immunizationRepo.FindByPetID(ctx, u.db, petID)
	if err != nil {
		u.log.Warnf("Failed to find immunizations of pet %s: %+v", petID, err)
		return nil, err
	}

	return &dto.ImmunizationListResponse{Immunizations: converter.ImmunizationsToResponses(records)}, nil
}

func (u *petUsecase) AddImmunization(ctx context.Context, petID uuid.UUID, req *dto.CreateImmunizationRequest) (*dto.ImmunizationListResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsCustomer() {
		return nil, ErrForbidden
	}

	vaccineDate, err := scheduling.ParseDate(req.VaccineDate, u.loc)
	if err != nil {
		return nil, ErrInvalidVaccineDate
	}
	record := &entity.Immunization{
		PetID:       petID,
		VaccineName: req.VaccineName,
		VaccineDate: vaccineDate,
		Comments:    req.Comments,
	}
	if req.DueDate != "" {
		dueDate, err := scheduling.ParseDate(req.DueDate, u.loc)
		if err != nil {
			return nil, ErrInvalidVaccineDate
		}
		record.DueDate = &dueDate
	}

	pet, err := u.petRepo.FindByID(ctx, u.db, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.immunizationRepo.Create(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to add immunization to pet %s: %+v", petID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionImmunizationAdd, "immunization", petID.String(), req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit immunization of pet %s: %+v", petID, err)
		return nil, err
	}

	return u.GetImmunizations(ctx, petID)
}

func (u *petUsecase) DeleteImmunization(ctx context.Context, petID uuid.UUID, immunizationID int64) error {
	c, err := callerFromContext(ctx)
	if err != nil {
		return err
	}
	if c.IsCustomer() {
		return ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.immunizationRepo.Delete(ctx, tx, petID, immunizationID)
	if err != nil {
		u.log.Warnf("Failed to delete immunization %d: %+v", immunizationID, err)
		return err
	}
	if rows == 0 {
		return ErrImmunizationNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &c.UserID, entity.AuditActionImmunizationDrop, "immunization", petID.String(), immunizationID); err != nil {
		return err
	}

	return tx.Commit().Error
}

// visiblePet returns a pet the caller may read: owners see their own pets,
// staff see every pet.
func (u *petUsecase) visiblePet(ctx context.Context, petID uuid.UUID) (*entity.Pet, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	pet, err := u.petRepo.FindByID(ctx, u.db, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil || (c.IsCustomer() && pet.OwnerID != c.UserID) {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

func (u *petUsecase) ownedPet(ctx context.Context, c caller, petID uuid.UUID) (*entity.Pet, error) {
	pet, err := u.petRepo.FindByID(ctx, u.db, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil || pet.OwnerID != c.UserID {
		return nil, ErrPetNotFound
	}
	return pet, nil
}
