// Package identity contains the application services for accounts and
// authentication.
package identity

import (
	"context"

	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles sign-in, token refresh and logout
type AuthService struct {
	userRepo     identity.Repository
	roleResolver identity.RoleResolver
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates an auth service. roleResolver decides the
// effective role on refresh; the default reads the user store, tests
// and future directory integrations inject their own.
func NewAuthService(
	userRepo identity.Repository,
	roleResolver identity.RoleResolver,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		roleResolver: roleResolver,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same answer for unknown user and wrong password
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}
	if !user.Active {
		s.logger.Warn("login attempt on inactive account", zap.String("username", user.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", user.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	capabilities := identity.CapabilityStrings(identity.CapabilitiesFor(user.Role))
	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role.String(),
		Capabilities: capabilities,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	return &LoginResponse{User: toUserResponse(user), Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new pair. The role and its
// capabilities are re-resolved so role changes and deactivations take
// effect at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	if claims.ID != "" {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("failed to check refresh token blacklist", zap.Error(err))
		} else if blacklisted {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	role, err := s.roleResolver.ResolveRole(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is no longer active")
	}

	capabilities := identity.CapabilityStrings(identity.CapabilitiesFor(role))
	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken, role.String(), capabilities)
	if err != nil {
		if err == auth.ErrMaxRefreshExceeded {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Session expired, sign in again")
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	// The old refresh token is single use
	if claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("failed to revoke used refresh token", zap.Error(err))
		}
	}
	return tokens, nil
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already unusable
		return nil
	}
	if claims.ID == "" {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

// LogoutEverywhere invalidates every outstanding token of a user
func (s *AuthService) LogoutEverywhere(ctx context.Context, userID string) error {
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID, s.jwtService.GetRefreshTokenExpiration())
}
