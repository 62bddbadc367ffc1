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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidMembershipPlan = errors.New("invalid plan, use Silver, Gold or Platinum")
)

const defaultMembershipMonths = 1

type MembershipUsecase interface {
	// GetMyMembership returns nil when the caller has no plan running today.
	GetMyMembership(ctx context.Context) (*dto.MembershipResponse, error)
	Subscribe(ctx context.Context, req *dto.SubscribeMembershipRequest) (*dto.MembershipResponse, error)
}

type membershipUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	loc            *time.Location
	now            func() time.Time
	membershipRepo repository.MembershipRepository
	auditService   service.AuditService
}

func NewMembershipUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	membershipRepo repository.MembershipRepository,
	auditService service.AuditService,
) MembershipUsecase {
	return &membershipUsecase{
		db:             db,
		log:            log,
		loc:            loc,
		now:            time.Now,
		membershipRepo: membershipRepo,
		auditService:   auditService,
	}
}

func (u *membershipUsecase) GetMyMembership(ctx context.Context) (*dto.MembershipResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	membership, err := u.membershipRepo.FindActive(ctx, u.db, c.UserID, u.today())
	if err != nil {
		u.log.Warnf("Failed to find membership of %s: %+v", c.UserID, err)
		return nil, err
	}

	return converter.MembershipToResponse(membership), nil
}

// Subscribe replaces any running plan with a new one starting today.
func (u *membershipUsecase) Subscribe(ctx context.Context, req *dto.SubscribeMembershipRequest) (*dto.MembershipResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	plan, ok := entity.ParseMembershipPlan(req.Plan)
	if !ok {
		return nil, ErrInvalidMembershipPlan
	}
	months := req.Months
	if months < 1 {
		months = defaultMembershipMonths
	}

	start := u.today()
	membership := &entity.Membership{
		UserID:    c.UserID,
		Plan:      plan,
		StartDate: start,
		EndDate:   start.AddDate(0, months, 0),
		Status:    entity.MembershipStatusActive,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	expired, err := u.membershipRepo.ExpireActive(ctx, tx, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to expire memberships of %s: %+v", c.UserID, err)
		return nil, err
	}

	if err := u.membershipRepo.Create(ctx, tx, membership); err != nil {
		u.log.Warnf("Failed to create membership: %+v", err)
		return nil, err
	}

	resp := converter.MembershipToResponse(membership)
	if err := u.auditService.LogCreate(ctx, tx, &c.UserID, entity.AuditActionMembershipJoin, "membership", membership.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit membership: %+v", err)
		return nil, err
	}

	u.log.Infof("Membership %s for %s until %s (%d replaced)", plan, c.UserID, resp.EndDate, expired)
	return resp, nil
}

func (u *membershipUsecase) today() time.Time {
	return entity.CalendarDate(u.now(), u.loc)
}
