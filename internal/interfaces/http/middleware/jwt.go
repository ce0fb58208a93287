package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/auth"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	JWTClaimsKey  = "jwt_claims"
	ActorKey      = "actor"
	AuthHeaderKey = "Authorization"
)

// Authenticator resolves a raw access token to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.User, *auth.Claims, error)
}

// ShopLookup finds the shop owned by a user
type ShopLookup interface {
	FindByUser(ctx context.Context, userID uint64) (*catalog.Shop, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Authenticator is required for token validation
	Authenticator Authenticator
	// Shops resolves the actor's shop for partners; optional
	Shops ShopLookup
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware authenticates "Authorization: Token <jwt>" requests and
// stores the resulting access.Actor in the context. Every failure answers
// with the same 401 so callers cannot tell why a token was refused.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := auth.ExtractToken(c.GetHeader(AuthHeaderKey))
		if token == "" {
			rejectUnauthenticated(c, log, "missing or malformed authorization header")
			return
		}

		ctx := c.Request.Context()
		user, claims, err := cfg.Authenticator.Authenticate(ctx, token)
		if err != nil {
			rejectUnauthenticated(c, log, err.Error())
			return
		}

		actor := access.Actor{
			UserID:  user.ID,
			IsStaff: user.IsStaff,
			Partner: user.IsShop(),
		}
		if actor.Partner && cfg.Shops != nil {
			shop, err := cfg.Shops.FindByUser(ctx, user.ID)
			switch {
			case err == nil:
				actor.ShopID = shop.ID
			case !errors.Is(err, catalog.ErrShopNotFound):
				log.Error("Failed to resolve actor shop", zap.Uint64("user_id", user.ID), zap.Error(err))
				abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(ActorKey, actor)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, user.ID))

		log.Debug("JWT authentication successful", zap.Uint64("user_id", user.ID))
		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context, log *zap.Logger, reason string) {
	log.Debug("JWT authentication failed",
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)
	abortWithError(c, http.StatusUnauthorized, shared.ErrAuthFailed.Code, shared.ErrAuthFailed.Message)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetActor returns the authenticated caller. ok is false on routes that
// did not pass through JWTAuthMiddleware.
func GetActor(c *gin.Context) (access.Actor, bool) {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(access.Actor); ok {
			return actor, true
		}
	}
	return access.Actor{}, false
}

// RequirePartner lets only shop users through
func RequirePartner() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, shared.ErrAuthFailed.Code, shared.ErrAuthFailed.Message)
			return
		}
		if !actor.Partner && !actor.IsStaff {
			abortWithError(c, http.StatusForbidden, shared.ErrForbidden.Code, "Only shop users may do this")
			return
		}
		c.Next()
	}
}
