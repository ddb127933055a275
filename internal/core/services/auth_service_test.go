package services

import (
	"context"
	"errors"
	"testing"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/config"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"
	"trip-planner/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "unit-test-secret",
			AccessTokenHours: 24,
			RefreshTokenDays: 7,
		},
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, username, plain string, roles ...models.Role) *models.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("password.Hash() error = %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Roles:    roles,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubRoleRepo) {
	t.Helper()
	userRepo := newStubUserRepo()
	roleRepo := newStubRoleRepo(authz.RoleUser, authz.RoleAdmin, authz.RoleModerator)
	return NewAuthService(userRepo, roleRepo, testConfig()), userRepo, roleRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, userRepo, roleRepo := newTestAuthService(t)
	adminRole, _ := roleRepo.GetByName(context.Background(), authz.RoleAdmin)
	seedUser(t, userRepo, "admin", "admin123", *adminRole)

	result, err := svc.Login(context.Background(), &LoginInput{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Username != "admin" {
		t.Errorf("Username = %q, want %q", result.Username, "admin")
	}
	if result.Type != "Bearer" {
		t.Errorf("Type = %q, want %q", result.Type, "Bearer")
	}
	if result.Token == "" || result.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if result.Token == result.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "alice", "correct-pass")

	// Unknown username and wrong password must be indistinguishable.
	for _, input := range []*LoginInput{
		{Username: "nobody", Password: "whatever"},
		{Username: "alice", Password: "wrong-pass"},
	} {
		_, err := svc.Login(context.Background(), input)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q) error = %v, want ErrInvalidCredentials", input.Username, err)
		}
	}
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret99",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if len(user.Roles) != 1 || user.Roles[0].Name != authz.RoleUser {
		t.Errorf("roles = %v, want [USER]", user.RoleNames())
	}
	if user.Password == "secret99" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "short",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if ok, _ := userRepo.ExistsByUsername(context.Background(), "carol"); ok {
		t.Error("user was created despite invalid password")
	}
}

func TestRegisterDuplicateChecksUsernameFirst(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "taken", "pass123")

	// Both identities collide; the username error must win.
	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "pass123",
	})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("error = %v, want ErrDuplicateUsername", err)
	}

	_, err = svc.Register(context.Background(), &RegisterInput{
		Username: "fresh",
		Email:    "taken@example.com",
		Password: "pass123",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRefreshReissuesPair(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "alice", "pass123")

	login, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "pass123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.Token == "" || refreshed.RefreshToken == "" {
		t.Error("refresh did not issue a full pair")
	}
	if refreshed.Username != "alice" {
		t.Errorf("Username = %q, want %q", refreshed.Username, "alice")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	seedUser(t, userRepo, "alice", "pass123")

	login, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "pass123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// An access token presented at the refresh endpoint must be refused.
	if _, err := svc.Refresh(context.Background(), login.Token); err == nil {
		t.Error("Refresh() accepted an access-kind token")
	}
}

func TestResolvePrincipalReadsLiveRoles(t *testing.T) {
	svc, userRepo, roleRepo := newTestAuthService(t)
	user := seedUser(t, userRepo, "alice", "pass123")

	login, err := svc.Login(context.Background(), &LoginInput{Username: "alice", Password: "pass123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	p, err := svc.ResolvePrincipal(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("ResolvePrincipal() error = %v", err)
	}
	if p.IsAdmin() {
		t.Fatal("principal is admin before role grant")
	}

	// Grant ADMIN after the token was issued. The very next resolution
	// must already see it: the role set lives in storage, not the token.
	adminRole, _ := roleRepo.GetByName(context.Background(), authz.RoleAdmin)
	if err := userRepo.AddRole(context.Background(), user, adminRole); err != nil {
		t.Fatalf("AddRole() error = %v", err)
	}

	p, err = svc.ResolvePrincipal(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("ResolvePrincipal() error = %v", err)
	}
	if !p.IsAdmin() {
		t.Error("principal does not reflect the live role grant")
	}
}

func TestResolvePrincipalRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	if _, err := svc.ResolvePrincipal(context.Background(), "not-a-token"); err == nil {
		t.Error("ResolvePrincipal() accepted garbage")
	}
}
