package services

import (
	"context"
	"errors"
	"log"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/adapters/persistence/repositories"
	"trip-planner/internal/config"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"
	"trip-planner/internal/pkg/jwt"
	"trip-planner/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic: credential login,
// registration, token refresh, and per-request principal resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents an access and refresh token issued together
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse represents the authentication wire response
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
	Type         string `json:"type"`
}

// Login authenticates a user by username and password. Unknown username
// and wrong password both fail with ErrInvalidCredentials so the caller
// cannot tell which field was wrong.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
		Username:     user.Username,
		Type:         "Bearer",
	}, nil
}

// Register registers a new user with the default USER role.
// Username is checked before email; the first taken identity wins.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	userRole, err := s.roleRepo.GetByName(ctx, authz.RoleUser)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Roles:    []models.Role{*userRole},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Username)
	return user, nil
}

// Refresh verifies a refresh-kind token and reissues a fresh pair keyed to
// the re-loaded current user. Any verification failure is terminal.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.VerifyRefreshToken(refreshToken, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)

	return &AuthResponse{
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
		Username:     user.Username,
		Type:         "Bearer",
	}, nil
}

// ResolvePrincipal turns a raw access token into a Principal. The role set
// comes from the freshly loaded user record, not from the token, so a role
// change takes effect on the next request.
func (s *AuthService) ResolvePrincipal(ctx context.Context, accessToken string) (*authz.Principal, error) {
	claims, err := jwt.VerifyAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &authz.Principal{
		ID:       user.ID,
		Username: user.Username,
		Roles:    user.RoleNames(),
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// issueTokenPair issues an access and refresh token for a user
func (s *AuthService) issueTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenLifetime(),
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		user.Username,
		s.cfg.JWT.Secret,
		s.cfg.JWT.RefreshTokenLifetime(),
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}
