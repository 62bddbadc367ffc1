package converter

import (
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
)

func MembershipToResponse(membership *entity.Membership) *dto.MembershipResponse {
	if membership == nil {
		return nil
	}

	return &dto.MembershipResponse{
		ID:        membership.ID,
		UserID:    membership.UserID,
		Plan:      string(membership.Plan),
		StartDate: membership.StartDate.Format(dateLayout),
		EndDate:   membership.EndDate.Format(dateLayout),
		Status:    string(membership.Status),
		CreatedAt: membership.CreatedAt,
	}
}
