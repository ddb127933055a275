package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/config"
	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/services"
	"trip-planner/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

// fixedUserRepo serves a single user record; everything else is not found.
type fixedUserRepo struct {
	user *models.User
}

func (r *fixedUserRepo) Create(context.Context, *models.User) error { return nil }
func (r *fixedUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fixedUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fixedUserRepo) Update(context.Context, *models.User) error { return nil }
func (r *fixedUserRepo) List(context.Context, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (r *fixedUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *fixedUserRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *fixedUserRepo) AddRole(context.Context, *models.User, *models.Role) error {
	return nil
}
func (r *fixedUserRepo) RemoveRole(context.Context, *models.User, *models.Role) error {
	return nil
}
func (r *fixedUserRepo) CountWithRole(context.Context, uint) (int64, error) { return 0, nil }

type emptyRoleRepo struct{}

func (emptyRoleRepo) Create(context.Context, *models.Role) error { return nil }
func (emptyRoleRepo) GetByID(context.Context, uint) (*models.Role, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyRoleRepo) GetByName(context.Context, string) (*models.Role, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyRoleRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }
func (emptyRoleRepo) Update(context.Context, *models.Role) error         { return nil }
func (emptyRoleRepo) Delete(context.Context, uint) error                 { return nil }
func (emptyRoleRepo) List(context.Context) ([]*models.Role, error)       { return nil, nil }

func newTestApp(user *models.User) *fiber.App {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           testSecret,
			AccessTokenHours: 24,
			RefreshTokenDays: 7,
		},
	}
	authService := services.NewAuthService(&fixedUserRepo{user: user}, emptyRoleRepo{}, cfg)

	app := fiber.New()
	app.Use(Authenticate(authService))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.JSON(fiber.Map{"principal": nil})
		}
		return c.JSON(fiber.Map{"principal": p.Username})
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin", RequireRoles(authz.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func accessTokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(user.ID, user.Username, testSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	return token
}

func testUser(roles ...string) *models.User {
	user := &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	for i, name := range roles {
		user.Roles = append(user.Roles, models.Role{ID: uint(i + 1), Name: name})
	}
	return user
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	user := testUser(authz.RoleUser)
	app := newTestApp(user)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["principal"] != "alice" {
		t.Errorf("principal = %v, want alice", body["principal"])
	}
}

func TestAuthenticateSwallowsBadTokens(t *testing.T) {
	app := newTestApp(testUser(authz.RoleUser))

	// A public route must still answer 200 whatever the header carries.
	headers := []string{
		"",
		"Bearer garbage",
		"Basic dXNlcjpwYXNz",
		"Bearer " + accessTokenFor(t, &models.User{ID: 9, Username: "ghost"}),
	}

	for _, header := range headers {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("header %q: status = %d, want 200", header, resp.StatusCode)
			continue
		}

		var body map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["principal"] != nil {
			t.Errorf("header %q produced principal %v, want none", header, body["principal"])
		}
	}
}

func TestRequireAuthUniform401(t *testing.T) {
	app := newTestApp(testUser(authz.RoleUser))

	for _, header := range []string{"", "Bearer garbage"} {
		req := httptest.NewRequest("GET", "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, resp.StatusCode)
			continue
		}

		// Every rejection carries the same body shape.
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			Path    string `json:"path"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error != "Unauthorized" {
			t.Errorf("error = %q, want Unauthorized", body.Error)
		}
		if body.Path != "/private" {
			t.Errorf("path = %q, want /private", body.Path)
		}
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	user := testUser(authz.RoleUser)
	app := newTestApp(user)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		t.Error("expected a response body")
	}
}

func TestRequireRolesAdminPasses(t *testing.T) {
	user := testUser(authz.RoleAdmin)
	app := newTestApp(user)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthenticateIsIdempotent(t *testing.T) {
	user := testUser(authz.RoleUser)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, AccessTokenHours: 24, RefreshTokenDays: 7}}
	authService := services.NewAuthService(&fixedUserRepo{user: user}, emptyRoleRepo{}, cfg)

	app := fiber.New()
	// Registered twice; the second pass must not disturb the first result.
	app.Use(Authenticate(authService))
	app.Use(Authenticate(authService))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.JSON(fiber.Map{"principal": nil})
		}
		return c.JSON(fiber.Map{"principal": p.Username})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, user))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["principal"] != "alice" {
		t.Errorf("principal = %v, want alice", body["principal"])
	}
}
