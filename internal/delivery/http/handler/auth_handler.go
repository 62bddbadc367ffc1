package handler

import (
	"errors"
	"net/http"

	"dailywag-backend/internal/delivery/http/middleware"
	"dailywag-backend/internal/usecase"
	"dailywag-backend/pkg/jwt"
	"dailywag-backend/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	jwtService  *jwt.JWTService
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		jwtService:  jwtService,
	}
}

// Logout revokes the presented access token for the rest of its lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	err := h.authUsecase.Logout(r.Context(), claims.TokenID, h.jwtService.RemainingLifetime(claims))
	if err != nil {
		if errors.Is(err, usecase.ErrLogoutOffline) {
			response.Error(w, http.StatusServiceUnavailable, "Logout is not available right now", nil)
			return
		}
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.GetCurrentUser(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "Invalid token")
		case errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, usecase.ErrUserInactive):
			response.Forbidden(w, "User account is inactive")
		default:
			response.InternalServerError(w, "Failed to get user info")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
