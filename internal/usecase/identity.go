package usecase

import (
	"context"
	"errors"

	"dailywag-backend/internal/delivery/http/middleware"
	"dailywag-backend/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("user not found in context")
	ErrForbidden       = errors.New("you don't have permission to perform this action")
)

// caller is the authenticated user behind a request.
type caller struct {
	UserID uuid.UUID
	RoleID int
}

func (c caller) IsAdmin() bool    { return c.RoleID == entity.RoleIDAdmin }
func (c caller) IsDoctor() bool   { return c.RoleID == entity.RoleIDDoctor }
func (c caller) IsCustomer() bool { return c.RoleID == entity.RoleIDCustomer }

func callerFromContext(ctx context.Context) (caller, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return caller{}, ErrUnauthenticated
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return caller{}, ErrUnauthenticated
	}
	return caller{UserID: userID, RoleID: roleID}, nil
}
