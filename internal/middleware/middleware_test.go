package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *tenant.Registry {
	r := tenant.NewRegistry()
	r.Register(&tenant.TenantConfig{TenantID: "acme"})
	return r
}

func TestTenantMiddlewareSources(t *testing.T) {
	app := fiber.New()
	app.Use(TenantMiddleware(newRegistry()))
	app.Get("/api/health", func(c *fiber.Ctx) error { return c.SendString("up") })
	app.Get("/api/reports", func(c *fiber.Ctx) error { return c.SendString(tenant.GetTenantID(c)) })

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"header", "/api/reports", "acme", fiber.StatusOK},
		{"query param", "/api/reports?tenant_id=acme", "", fiber.StatusOK},
		{"unknown header", "/api/reports", "globex", fiber.StatusBadRequest},
		{"unknown query param", "/api/reports?tenant_id=globex", "", fiber.StatusBadRequest},
		{"missing", "/api/reports", "", fiber.StatusBadRequest},
		{"skipped path", "/api/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("X-Tenant-ID", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestTenantMiddlewareDefersBearerRequests(t *testing.T) {
	app := fiber.New()
	app.Use(TenantMiddleware(newRegistry()))
	app.Get("/api/reports", func(c *fiber.Ctx) error { return c.SendString(tenant.GetTenantID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTenantFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		claims jwt.MapClaims
		status int
		want   string
	}{
		{"explicit tenant wins", "acme", jwt.MapClaims{"tenant_id": "globex"}, fiber.StatusOK, "acme"},
		{"claim fills tenant", "", jwt.MapClaims{"tenant_id": "acme"}, fiber.StatusOK, "acme"},
		{"unknown claim", "", jwt.MapClaims{"tenant_id": "globex"}, fiber.StatusBadRequest, ""},
		{"no claim", "", jwt.MapClaims{}, fiber.StatusBadRequest, ""},
		{"no token", "", nil, fiber.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				if tt.preset != "" {
					c.Locals("tenant_id", tt.preset)
				}
				if tt.claims != nil {
					c.Locals("user", &jwt.Token{Claims: tt.claims})
				}
				return c.Next()
			})
			app.Get("/x", TenantFromClaims(newRegistry()), func(c *fiber.Ctx) error {
				return c.SendString(tenant.GetTenantID(c))
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(body))
			}
		})
	}
}

func TestAdminRequired(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Roles: []string{models.RoleAdmin}}
	regular := &models.User{ID: uuid.New()}

	tests := []struct {
		name   string
		user   *models.User
		status int
	}{
		{"anonymous", nil, fiber.StatusUnauthorized},
		{"regular user", regular, fiber.StatusForbidden},
		{"admin", admin, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals(actorKey, access.FromUser(tt.user))
				return c.Next()
			})
			app.Get("/admin", AdminRequired(), func(c *fiber.Ctx) error { return c.SendString("ok") })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestActorLoaderWithoutTokenIsAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", ActorLoader(nil), func(c *fiber.Ctx) error {
		assert.False(t, CurrentActor(c).IsAuthenticated())
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRequireActor(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireActor(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
