package usecase

import (
	"context"
	"errors"
	"time"

	"dailywag-backend/internal/converter"
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/domain/repository"
	"dailywag-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPetNotAvailable         = errors.New("pet is not available for adoption")
	ErrPetNotListable          = errors.New("pet cannot be listed for adoption")
	ErrOwnPetAdoption          = errors.New("you already own this pet")
	ErrAdoptionRequestNotFound = errors.New("adoption request not found")
	ErrAdoptionAlreadyDecided  = errors.New("adoption request is already decided")
	ErrInvalidAdoptionDecision = errors.New("decision must be approved or rejected")
)

type AdoptionUsecase interface {
	GetAvailablePets(ctx context.Context) (*dto.PetListResponse, error)
	ListPetForAdoption(ctx context.Context, petID uuid.UUID) (*dto.PetResponse, error)
	RequestAdoption(ctx context.Context, petID uuid.UUID) (*dto.AdoptionRequestResponse, error)
	GetMyRequests(ctx context.Context) (*dto.AdoptionRequestListResponse, error)
	GetPendingRequests(ctx context.Context) (*dto.AdoptionRequestListResponse, error)
	DecideRequest(ctx context.Context, requestID uuid.UUID, req *dto.DecideAdoptionRequest) (*dto.AdoptionRequestResponse, error)
}

type adoptionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	now          func() time.Time
	petRepo      repository.PetRepository
	adoptionRepo repository.AdoptionRepository
	auditService service.AuditService
}

func NewAdoptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	petRepo repository.PetRepository,
	adoptionRepo repository.AdoptionRepository,
	auditService service.AuditService,
) AdoptionUsecase {
	return &adoptionUsecase{
		db:           db,
		log:          log,
		now:          time.Now,
		petRepo:      petRepo,
		adoptionRepo: adoptionRepo,
		auditService: auditService,
	}
}

func (u *adoptionUsecase) GetAvailablePets(ctx context.Context) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindByAdoptionStatus(ctx, u.db, entity.AdoptionStatusAvailable)
	if err != nil {
		u.log.Warnf("Failed to find adoptable pets: %+v", err)
		return nil, err
	}

	return &dto.PetListResponse{Pets: converter.PetsToResponses(pets), Total: len(pets)}, nil
}

// ListPetForAdoption makes a pet adoptable. Adopted pets and pets with a
// pending request cannot be listed again.
func (u *adoptionUsecase) ListPetForAdoption(ctx context.Context, petID uuid.UUID) (*dto.PetResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !c.IsAdmin() {
		return nil, ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pet, err := u.petRepo.FindByID(ctx, tx, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	rows, err := u.petRepo.UpdateAdoptionStatus(ctx, tx, petID, entity.AdoptionStatusAvailable, entity.AdoptionStatusNotAvailable)
	if err != nil {
		u.log.Warnf("Failed to list pet %s for adoption: %+v", petID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPetNotListable
	}

	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionAdoptionList, "pet", petID.String(), pet.AdoptionStatus, entity.AdoptionStatusAvailable); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit adoption listing of pet %s: %+v", petID, err)
		return nil, err
	}

	pet.AdoptionStatus = entity.AdoptionStatusAvailable
	return converter.PetToResponse(pet), nil
}

// RequestAdoption reserves an available pet for the caller: the request is
// stored and the pet moves to pending in one transaction.
func (u *adoptionUsecase) RequestAdoption(ctx context.Context, petID uuid.UUID) (*dto.AdoptionRequestResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pet, err := u.petRepo.FindByID(ctx, tx, petID)
	if err != nil {
		u.log.Warnf("Failed to find pet %s: %+v", petID, err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.OwnerID == c.UserID {
		return nil, ErrOwnPetAdoption
	}

	rows, err := u.petRepo.UpdateAdoptionStatus(ctx, tx, petID, entity.AdoptionStatusPending, entity.AdoptionStatusAvailable)
	if err != nil {
		u.log.Warnf("Failed to reserve pet %s: %+v", petID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPetNotAvailable
	}

	request := &entity.AdoptionRequest{
		PetID:     petID,
		AdopterID: c.UserID,
		Status:    entity.AdoptionRequestPending,
	}
	if err := u.adoptionRepo.Create(ctx, tx, request); err != nil {
		u.log.Warnf("Failed to create adoption request for pet %s: %+v", petID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionAdoptionRequest, "adoption_request", request.ID.String(), map[string]interface{}{"pet_id": petID}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit adoption request for pet %s: %+v", petID, err)
		return nil, err
	}

	pet.AdoptionStatus = entity.AdoptionStatusPending
	request.Pet = pet
	return converter.AdoptionRequestToResponse(request), nil
}

func (u *adoptionUsecase) GetMyRequests(ctx context.Context) (*dto.AdoptionRequestListResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := u.adoptionRepo.FindByAdopter(ctx, u.db, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to find adoption requests of %s: %+v", c.UserID, err)
		return nil, err
	}

	return &dto.AdoptionRequestListResponse{Requests: converter.AdoptionRequestsToResponses(requests), Total: len(requests)}, nil
}

func (u *adoptionUsecase) GetPendingRequests(ctx context.Context) (*dto.AdoptionRequestListResponse, error) {
	requests, err := u.adoptionRepo.FindPending(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find pending adoption requests: %+v", err)
		return nil, err
	}

	return &dto.AdoptionRequestListResponse{Requests: converter.AdoptionRequestsToResponses(requests), Total: len(requests)}, nil
}

// DecideRequest closes a pending request. Approval marks the pet adopted and
// hands it to the adopter; rejection puts it back on the adoption list.
func (u *adoptionUsecase) DecideRequest(ctx context.Context, requestID uuid.UUID, req *dto.DecideAdoptionRequest) (*dto.AdoptionRequestResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !c.IsAdmin() {
		return nil, ErrForbidden
	}

	decision := entity.AdoptionRequestStatus(req.Decision)
	if decision != entity.AdoptionRequestApproved && decision != entity.AdoptionRequestRejected {
		return nil, ErrInvalidAdoptionDecision
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.adoptionRepo.FindByID(ctx, tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find adoption request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrAdoptionRequestNotFound
	}
	if !request.IsPending() {
		return nil, ErrAdoptionAlreadyDecided
	}

	decidedAt := u.now()
	request.Status = decision
	request.DecidedAt = &decidedAt

	rows, err := u.adoptionRepo.Decide(ctx, tx, request)
	if err != nil {
		u.log.Warnf("Failed to decide adoption request %s: %+v", requestID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAdoptionAlreadyDecided
	}

	petStatus := entity.AdoptionStatusAvailable
	if decision == entity.AdoptionRequestApproved {
		petStatus = entity.AdoptionStatusAdopted
	}
	if _, err := u.petRepo.UpdateAdoptionStatus(ctx, tx, request.PetID, petStatus, entity.AdoptionStatusPending); err != nil {
		u.log.Warnf("Failed to move pet %s to %s: %+v", request.PetID, petStatus, err)
		return nil, err
	}
	if decision == entity.AdoptionRequestApproved {
		if err := u.petRepo.TransferOwnership(ctx, tx, request.PetID, request.AdopterID); err != nil {
			u.log.Warnf("Failed to transfer pet %s to %s: %+v", request.PetID, request.AdopterID, err)
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &c.UserID, entity.AuditActionAdoptionDecide, "adoption_request", requestID.String(), entity.AdoptionRequestPending, decision); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit adoption decision %s: %+v", requestID, err)
		return nil, err
	}

	u.log.Infof("Adoption request %s %s", requestID, decision)

	if request.Pet != nil {
		request.Pet.AdoptionStatus = petStatus
		if decision == entity.AdoptionRequestApproved {
			request.Pet.OwnerID = request.AdopterID
		}
	}
	return converter.AdoptionRequestToResponse(request), nil
}
