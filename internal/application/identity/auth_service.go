package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, email confirmation and token lifecycle
type AuthService struct {
	txScope    TransactionScope
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	txScope TransactionScope,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		txScope:    txScope,
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates an inactive user together with its confirmation token.
// UserRegistered is published only after both rows are committed.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Email, req.Username, req.Password, identity.UserType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := user.SetProfile(identity.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
	}); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := checkUnique(ctx, repos.UserRepo(), user); err != nil {
			return err
		}
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}
		token, err := identity.NewConfirmEmailToken(user.ID)
		if err != nil {
			return err
		}
		if err := repos.ConfirmTokenRepo().Create(ctx, token); err != nil {
			return err
		}
		user.MarkRegistered(token)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Uint64("user_id", user.ID),
		zap.String("type", string(user.Type)))
	s.publishEvents(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// ConfirmEmail activates the account owning key. The email must match the
// token's user; any mismatch is reported as an invalid key.
func (s *AuthService) ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) (*UserResponse, error) {
	return s.confirm(ctx, req.Key, func(u *identity.User) bool {
		return strings.EqualFold(u.Email, strings.TrimSpace(req.Email))
	})
}

// ConfirmEmailByKey activates the account from an emailed activation link
func (s *AuthService) ConfirmEmailByKey(ctx context.Context, key string) (*UserResponse, error) {
	return s.confirm(ctx, key, func(*identity.User) bool { return true })
}

func (s *AuthService) confirm(ctx context.Context, key string, matches func(*identity.User) bool) (*UserResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, identity.ErrInvalidConfirmKey
	}

	var user *identity.User
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		token, err := repos.ConfirmTokenRepo().FindByKey(ctx, key)
		if err != nil {
			return err
		}
		user, err = repos.UserRepo().FindByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				return identity.ErrInvalidConfirmKey
			}
			return err
		}
		if !matches(user) {
			return identity.ErrInvalidConfirmKey
		}

		user.Activate()
		if err := repos.UserRepo().Update(ctx, user); err != nil {
			return err
		}
		return repos.ConfirmTokenRepo().Delete(ctx, token.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User email confirmed", zap.Uint64("user_id", user.ID))
	s.publishEvents(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.Uint64("user_id", user.ID))
		return nil, identity.ErrInvalidCredentials
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for inactive account", zap.Uint64("user_id", user.ID))
		return nil, identity.ErrAccountInactive
	}

	issued, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("User logged in", zap.Uint64("user_id", user.ID))
	return &LoginResponse{
		Email:     user.Email,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" || input.ExpiresIn <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.ExpiresIn); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return err
	}
	return nil
}

// Authenticate resolves a raw token to an active user. Every failure cause
// (bad signature, expiry, revocation, unknown or inactive user) yields the
// same ErrAuthFailed so callers cannot tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*identity.User, *auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil, shared.ErrAuthFailed
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, nil, shared.ErrAuthFailed
	}
	if revoked {
		return nil, nil, shared.ErrAuthFailed
	}
	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check user token invalidation", zap.Error(err))
		return nil, nil, shared.ErrAuthFailed
	}
	if invalidated {
		return nil, nil, shared.ErrAuthFailed
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, nil, shared.ErrAuthFailed
	}
	return user, claims, nil
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	user.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish user events", zap.Error(err))
	}
}

// checkUnique rejects an email or username already held by another user
func checkUnique(ctx context.Context, repo identity.UserRepository, user *identity.User) error {
	taken, err := repo.ExistsByEmail(ctx, user.Email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return identity.ErrEmailTaken
	}
	taken, err = repo.ExistsByUsername(ctx, user.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return identity.ErrUsernameTaken
	}
	return nil
}
