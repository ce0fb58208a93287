package identity

import (
	"context"
	"errors"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages user accounts on behalf of an authenticated actor
type UserService struct {
	txScope   TransactionScope
	userRepo  identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	txScope TransactionScope,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		txScope:   txScope,
		userRepo:  userRepo,
		jwt:       jwtService,
		blacklist: blacklist,
		logger:    logger,
	}
}

// List returns all users for staff and only the actor otherwise
func (s *UserService) List(ctx context.Context, actor access.Actor, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
	}
	if !actor.IsStaff {
		domainFilter.OnlyID = actor.UserID
	}

	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses, total, nil
}

// GetByID returns a user visible to the actor. Other users' accounts are
// reported as not found to non-staff callers.
func (s *UserService) GetByID(ctx context.Context, actor access.Actor, id uint64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.IsSelfOrAdmin(actor, user) {
		return nil, identity.ErrUserNotFound
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update applies a partial update. A password change revokes every token
// issued to the user before it.
func (s *UserService) Update(ctx context.Context, actor access.Actor, id uint64, req UpdateUserRequest) (*UserResponse, error) {
	var user *identity.User
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		user, err = repos.UserRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsSelfOrAdmin(actor, user) {
			return shared.ErrForbidden
		}
		if err := applyUserUpdate(user, req); err != nil {
			return err
		}
		if err := checkUnique(ctx, repos.UserRepo(), user); err != nil {
			return err
		}
		return repos.UserRepo().Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		if err := s.blacklist.InvalidateUserTokens(ctx, user.ID, s.jwt.GetExpiration()); err != nil {
			s.logger.Error("Failed to invalidate user tokens", zap.Uint64("user_id", user.ID), zap.Error(err))
		}
	}

	s.logger.Info("User updated", zap.Uint64("user_id", user.ID), zap.Uint64("actor_id", actor.UserID))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes the account with its contacts, shop and orders
func (s *UserService) Delete(ctx context.Context, actor access.Actor, id uint64) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		user, err := repos.UserRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsSelfOrAdmin(actor, user) {
			return shared.ErrForbidden
		}
		return repos.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, shared.ErrForbidden) {
			s.logger.Warn("User delete denied", zap.Uint64("user_id", id), zap.Uint64("actor_id", actor.UserID))
		}
		return err
	}

	s.logger.Info("User deleted", zap.Uint64("user_id", id), zap.Uint64("actor_id", actor.UserID))
	return nil
}

func applyUserUpdate(user *identity.User, req UpdateUserRequest) error {
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Username != nil {
		if err := user.SetUsername(*req.Username); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return err
		}
	}

	profile := identity.Profile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Position != nil {
		profile.Position = *req.Position
	}
	return user.SetProfile(profile)
}
