package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/user"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/ctxutil"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status types.KYCStatus) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo user.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo user.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.E("user", "get_me", apperr.ErrUnauthorized)
	}
	u, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.E("user", "get_me", apperr.ErrNotFound)
	}
	return u, nil
}

func (us *userService) UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status types.KYCStatus) error {
	switch status {
	case types.KYCPending, types.KYCVerified, types.KYCRejected:
	default:
		return apperr.Validation("user", "update_kyc_status", "unknown kyc status")
	}
	return us.userRepo.UpdateKYCStatus(ctx, nil, userID, status)
}
