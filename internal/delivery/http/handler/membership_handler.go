package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/response"
	"dailywag-backend/pkg/validator"
)

type MembershipHandler struct {
	membershipUsecase usecase.MembershipUsecase
	validator         *validator.CustomValidator
}

func NewMembershipHandler(membershipUsecase usecase.MembershipUsecase, validator *validator.CustomValidator) *MembershipHandler {
	return &MembershipHandler{
		membershipUsecase: membershipUsecase,
		validator:         validator,
	}
}

func (h *MembershipHandler) GetMyMembership(w http.ResponseWriter, r *http.Request) {
	membership, err := h.membershipUsecase.GetMyMembership(r.Context())
	if err != nil {
		h.membershipError(w, err, "Failed to get membership")
		return
	}

	// no plan is a normal answer, not a 404
	if membership == nil {
		response.Success(w, http.StatusOK, "No active membership", nil)
		return
	}

	response.Success(w, http.StatusOK, "Membership retrieved successfully", membership)
}

func (h *MembershipHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	membership, err := h.membershipUsecase.Subscribe(r.Context(), &req)
	if err != nil {
		h.membershipError(w, err, "Failed to activate membership")
		return
	}

	response.Success(w, http.StatusCreated, "Welcome to "+membership.Plan+" membership", membership)
}

func (h *MembershipHandler) membershipError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "User not authenticated")
	case errors.Is(err, usecase.ErrInvalidMembershipPlan):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
