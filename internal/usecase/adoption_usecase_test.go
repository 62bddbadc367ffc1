package usecase

import (
	"errors"
	"testing"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/testdb"

	"github.com/google/uuid"
)

func (c *clinic) listedPet(t *testing.T) *entity.Pet {
	t.Helper()

	pet := testdb.CreatePet(t, c.db, c.admin.ID, "Rescue")
	if _, err := c.adoptions.ListPetForAdoption(as(c.admin), pet.ID); err != nil {
		t.Fatalf("ListPetForAdoption: %v", err)
	}
	return pet
}

func (c *clinic) reloadPet(t *testing.T, id uuid.UUID) entity.Pet {
	t.Helper()

	var pet entity.Pet
	if err := c.db.First(&pet, "id = ?", id).Error; err != nil {
		t.Fatalf("reload pet: %v", err)
	}
	return pet
}

func TestAdoption_Approve(t *testing.T) {
	c := newClinic(t)
	pet := c.listedPet(t)
	rival := testdb.CreateUser(t, c.db, entity.RoleIDCustomer, "Riley")

	if _, err := c.adoptions.ListPetForAdoption(as(c.customer), pet.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("customer listing error = %v, want ErrForbidden", err)
	}
	if _, err := c.adoptions.RequestAdoption(as(c.admin), pet.ID); !errors.Is(err, ErrOwnPetAdoption) {
		t.Fatalf("owner request error = %v, want ErrOwnPetAdoption", err)
	}

	request, err := c.adoptions.RequestAdoption(as(c.customer), pet.ID)
	if err != nil {
		t.Fatalf("RequestAdoption: %v", err)
	}
	if got := c.reloadPet(t, pet.ID).AdoptionStatus; got != entity.AdoptionStatusPending {
		t.Fatalf("pet status = %s, want pending", got)
	}

	if _, err := c.adoptions.RequestAdoption(as(rival), pet.ID); !errors.Is(err, ErrPetNotAvailable) {
		t.Fatalf("second request error = %v, want ErrPetNotAvailable", err)
	}

	pending, err := c.adoptions.GetPendingRequests(as(c.admin))
	if err != nil {
		t.Fatalf("GetPendingRequests: %v", err)
	}
	if pending.Total != 1 {
		t.Fatalf("pending = %d, want 1", pending.Total)
	}

	decided, err := c.adoptions.DecideRequest(as(c.admin), request.ID, &dto.DecideAdoptionRequest{Decision: "approved"})
	if err != nil {
		t.Fatalf("DecideRequest: %v", err)
	}
	if decided.Status != string(entity.AdoptionRequestApproved) || decided.DecidedAt == nil {
		t.Fatalf("decided = %+v, want approved with time", decided)
	}

	adopted := c.reloadPet(t, pet.ID)
	if adopted.AdoptionStatus != entity.AdoptionStatusAdopted || adopted.OwnerID != c.customer.ID {
		t.Fatalf("pet = %s owned by %s, want adopted by customer", adopted.AdoptionStatus, adopted.OwnerID)
	}

	if _, err := c.adoptions.DecideRequest(as(c.admin), request.ID, &dto.DecideAdoptionRequest{Decision: "rejected"}); !errors.Is(err, ErrAdoptionAlreadyDecided) {
		t.Fatalf("second decision error = %v, want ErrAdoptionAlreadyDecided", err)
	}
	if _, err := c.adoptions.ListPetForAdoption(as(c.admin), pet.ID); !errors.Is(err, ErrPetNotListable) {
		t.Fatalf("relisting adopted pet error = %v, want ErrPetNotListable", err)
	}
}

func TestAdoption_RejectReturnsPetToList(t *testing.T) {
	c := newClinic(t)
	pet := c.listedPet(t)

	request, err := c.adoptions.RequestAdoption(as(c.customer), pet.ID)
	if err != nil {
		t.Fatalf("RequestAdoption: %v", err)
	}

	if _, err := c.adoptions.DecideRequest(as(c.admin), request.ID, &dto.DecideAdoptionRequest{Decision: "maybe"}); !errors.Is(err, ErrInvalidAdoptionDecision) {
		t.Fatalf("bad decision error = %v, want ErrInvalidAdoptionDecision", err)
	}
	if _, err := c.adoptions.DecideRequest(as(c.admin), uuid.New(), &dto.DecideAdoptionRequest{Decision: "rejected"}); !errors.Is(err, ErrAdoptionRequestNotFound) {
		t.Fatalf("unknown request error = %v, want ErrAdoptionRequestNotFound", err)
	}
	if _, err := c.adoptions.DecideRequest(as(c.admin), request.ID, &dto.DecideAdoptionRequest{Decision: "rejected"}); err != nil {
		t.Fatalf("DecideRequest: %v", err)
	}

	back := c.reloadPet(t, pet.ID)
	if back.AdoptionStatus != entity.AdoptionStatusAvailable || back.OwnerID != c.admin.ID {
		t.Fatalf("pet = %s owned by %s, want available with admin", back.AdoptionStatus, back.OwnerID)
	}

	available, err := c.adoptions.GetAvailablePets(as(c.customer))
	if err != nil {
		t.Fatalf("GetAvailablePets: %v", err)
	}
	if available.Total != 1 {
		t.Fatalf("available = %d, want 1", available.Total)
	}

	mine, err := c.adoptions.GetMyRequests(as(c.customer))
	if err != nil {
		t.Fatalf("GetMyRequests: %v", err)
	}
	if mine.Total != 1 || mine.Requests[0].Status != string(entity.AdoptionRequestRejected) {
		t.Fatalf("my requests = %+v, want one rejected", mine)
	}
}
