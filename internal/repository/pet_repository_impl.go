package repository

import (
	"context"
	"errors"

	"dailywag-backend/internal/domain/entity"
	domainRepo "dailywag-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type petRepository struct{}

func NewPetRepository() domainRepo.PetRepository {
	return &petRepository{}
}

func (r *petRepository) Create(ctx context.Context, db *gorm.DB, pet *entity.Pet) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(pet).Error
}

func (r *petRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Pet, error) {
	var pet entity.Pet
	err := db.WithContext(ctx).Where("id = ?", id).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.WithContext(ctx).Preload("Owner").Order("created_at DESC").Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindByAdoptionStatus(ctx context.Context, db *gorm.DB, status entity.AdoptionStatus) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.WithContext(ctx).Where("adoption_status = ?", status).Order("created_at DESC").Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, db *gorm.DB, pet *entity.Pet) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Pet{}).
		Where("id = ? AND owner_id = ?", pet.ID, pet.OwnerID).
		Updates(map[string]interface{}{
			"name":              pet.Name,
			"category":          pet.Category,
			"breed":             pet.Breed,
			"age":               pet.Age,
			"medical_condition": pet.MedicalCondition,
			"photo_url":         pet.PhotoURL,
		})
	return result.RowsAffected, result.Error
}

func (r *petRepository) UpdateAdoptionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, to entity.AdoptionStatus, from ...entity.AdoptionStatus) (int64, error) {
	query := db.WithContext(ctx).Model(&entity.Pet{}).Where("id = ?", id)
	if len(from) > 0 {
		query = query.Where("adoption_status IN ?", from)
	}
	result := query.Update("adoption_status", to)
	return result.RowsAffected, result.Error
}

func (r *petRepository) TransferOwnership(ctx context.Context, db *gorm.DB, id, newOwnerID uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.Pet{}).
		Where("id = ?", id).
		Update("owner_id", newOwnerID).Error
}

func (r *petRepository) Delete(ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Pet{})
	return result.RowsAffected, result.Error
}

// Immunization Repository

type immunizationRepository struct{}

func NewImmunizationRepository() domainRepo.ImmunizationRepository {
	return &immunizationRepository{}
}

func (r *immunizationRepository) Create(ctx context.Context, db *gorm.DB, record *entity.Immunization) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *immunizationRepository) FindByPetID(ctx context.Context, db *gorm.DB, petID uuid.UUID) ([]entity.Immunization, error) {
	var records []entity.Immunization
	err := db.WithContext(ctx).Where("pet_id = ?", petID).Order("vaccine_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *immunizationRepository) Delete(ctx context.Context, db *gorm.DB, petID uuid.UUID, id int64) (int64, error) {
	result := db.WithContext(ctx).Where("id = ? AND pet_id = ?", id, petID).Delete(&entity.Immunization{})
	return result.RowsAffected, result.Error
}
