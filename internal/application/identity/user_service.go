package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user account management
type UserService struct {
	userRepo identity.Repository
	auth     *AuthService
	logger   *zap.Logger
}

// NewUserService creates a user service. The auth service is used to
// force-expire sessions when an account is deactivated or changes role.
func NewUserService(userRepo identity.Repository, auth *AuthService, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, auth: auth, logger: logger}
}

// Create adds a user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, req.DisplayName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	resp := toUserResponse(user)
	return &resp, nil
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and replaces it. All of
// the user's sessions are invalidated.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.auth.LogoutEverywhere(ctx, user.ID.String())
}

// ChangeRole switches a user's role. Outstanding tokens keep the old
// capabilities until they expire, so sessions are force-expired here.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.ChangeRole(identity.Role(req.Role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.auth.LogoutEverywhere(ctx, user.ID.String()); err != nil {
		s.logger.Error("failed to invalidate sessions after role change", zap.Error(err))
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Deactivate blocks a user from signing in and expires their sessions
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.auth.LogoutEverywhere(ctx, user.ID.String()); err != nil {
		s.logger.Error("failed to invalidate sessions after deactivation", zap.Error(err))
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Reactivate allows a user to sign in again
func (s *UserService) Reactivate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, req ListUsersRequest) ([]UserResponse, int64, error) {
	filter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.PageSize,
			OrderBy:  req.OrderBy,
			OrderDir: req.OrderDir,
			Search:   req.Search,
		},
		Active: req.Active,
	}
	if req.Role != "" {
		role := identity.Role(req.Role)
		if !role.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ROLE", "Unknown role")
		}
		filter.Role = &role
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = toUserResponse(&users[i])
	}
	return responses, total, nil
}
