package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Reports  *handlers.ReportHandler
	Comments *handlers.CommentHandler
	Projects *handlers.ProjectHandler
	Users    *handlers.UserHandler
	Catalog  *handlers.CatalogHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, registry *tenant.Registry, h Handlers) {
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no tenant required)
	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	// No token is verified here, so a bearer-only request still needs a tenant.
	claimTenant := middleware.TenantFromClaims(registry)
	auth.Post("/register", claimTenant, h.Auth.Register)
	auth.Post("/login", claimTenant, h.Auth.Login)
	auth.Post("/refresh", claimTenant, h.Auth.Refresh)

	// Middleware chains are applied per route so public reads stay open.
	// A bearer-only request gets its tenant from the verified claim.
	optional := []fiber.Handler{middleware.OptionalJWT(cfg), claimTenant, middleware.ActorLoader(db)}
	protected := []fiber.Handler{middleware.JWTProtected(cfg), claimTenant, middleware.ActorLoader(db), middleware.RequireActor()}
	admin := append(append([]fiber.Handler{}, protected...), middleware.AdminRequired())

	with := func(chain []fiber.Handler, handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, chain...), handler)
	}

	api.Post("/auth/logout", with(protected, h.Auth.Logout)...)

	// Reports
	api.Get("/reports", with(optional, h.Reports.List)...)
	api.Post("/reports", with(protected, h.Reports.Create)...)
	api.Get("/reports/:id", with(optional, h.Reports.Show)...)
	api.Put("/reports/:id", with(protected, h.Reports.Update)...)
	api.Delete("/reports/:id", with(protected, h.Reports.Delete)...)
	api.Post("/reports/:id/toggle-archive", with(protected, h.Reports.ToggleArchive)...)

	// Comments
	api.Get("/reports/:id/comments", with(optional, h.Comments.ListByReport)...)
	api.Post("/reports/:id/comments", with(protected, h.Comments.Create)...)
	api.Put("/comments/:id", with(protected, h.Comments.Update)...)
	api.Delete("/comments/:id", with(protected, h.Comments.Delete)...)

	// Projects
	api.Get("/projects", with(protected, h.Projects.List)...)
	api.Post("/projects", with(protected, h.Projects.Create)...)
	api.Get("/projects/:id", with(protected, h.Projects.Show)...)
	api.Put("/projects/:id", with(protected, h.Projects.Update)...)
	api.Delete("/projects/:id", with(protected, h.Projects.Delete)...)
	api.Post("/projects/:id/members", with(protected, h.Projects.AddMembers)...)
	api.Delete("/projects/:id/members/:userId", with(protected, h.Projects.RemoveMember)...)

	// Users
	api.Get("/users", with(admin, h.Users.List)...)
	api.Get("/users/:id", with(protected, h.Users.Show)...)
	api.Put("/users/:id", with(protected, h.Users.Update)...)
	api.Delete("/users/:id", with(protected, h.Users.Delete)...)
	api.Put("/users/:id/password", with(protected, h.Users.ChangePassword)...)
	api.Put("/users/:id/promote", with(admin, h.Users.Promote)...)
	api.Put("/users/:id/demote", with(admin, h.Users.Demote)...)
	api.Put("/users/:id/toggle-block", with(admin, h.Users.ToggleBlock)...)

	// Catalog
	api.Get("/categories", with(optional, h.Catalog.ListCategories)...)
	api.Get("/categories/:id", with(optional, h.Catalog.ShowCategory)...)
	api.Post("/categories", with(admin, h.Catalog.CreateCategory)...)
	api.Put("/categories/:id", with(admin, h.Catalog.UpdateCategory)...)
	api.Delete("/categories/:id", with(admin, h.Catalog.DeleteCategory)...)
	api.Get("/tags", with(optional, h.Catalog.ListTags)...)
	api.Get("/tags/:id", with(optional, h.Catalog.ShowTag)...)
	api.Post("/tags", with(admin, h.Catalog.CreateTag)...)
	api.Put("/tags/:id", with(admin, h.Catalog.UpdateTag)...)
	api.Delete("/tags/:id", with(admin, h.Catalog.DeleteTag)...)
}
