package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/moewai/aquaflow/internal/config"     // import configuration for rate limiting settings
	"github.com/moewai/aquaflow/internal/handler"    // import the handlers that implement business logic
	"github.com/moewai/aquaflow/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/moewai/aquaflow/internal/planner"    // import the production planner used by the production routes
	"github.com/moewai/aquaflow/internal/session"    // import the navigation table that drives role checks
	"github.com/moewai/aquaflow/internal/store"      // import the persisted collections behind every route
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the full authenticated API surface.  Unauthenticated
// operations live under /v1/auth, while protected endpoints live under /v1.
// Role sets on each protected group come from the navigation table, so the
// server enforces exactly what the navigation promises.
func RegisterAPI(e *echo.Echo, cfg config.Config, reg *store.Registry, sessions *session.Manager, plan *planner.Planner, rdb *redis.Client) {
	a := handler.NewAuthHandler(cfg, sessions)

	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session.  The demo has no registration: login
	// means picking one of the seeded profiles.
	g := e.Group("/v1/auth")
	// Register a GET endpoint listing the profiles available for login.
	g.GET("/profiles", a.Profiles)
	// Register a POST endpoint to start a session as a chosen profile.
	g.POST("/login", a.Login)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.  Protected endpoints live under /v1.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the configured secret.
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	// Apply token-bucket rate limiting to every authenticated endpoint.  The
	// middleware is a pass-through when limiting is disabled or Redis is
	// unavailable.
	auth.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	// Logout requires a token: the session id to close comes from the JWT.
	auth.POST("/auth/logout", a.Logout)

	// Session inspection endpoints.  Any authenticated role may read its own
	// session state or switch its active view.
	s := handler.NewSessionHandler(sessions)
	auth.GET("/session", s.Get)
	auth.PUT("/session/view", s.SetView)

	// Generic CRUD over the administrative collections, mounted under /v1
	// by collection name.  Each set takes its allowed roles from the
	// matching navigation entry; agents share the "users" entry because the
	// UI manages them on the same screen.
	handler.RegisterCollection(auth, reg.Users, session.RolesForEntry("users"))
	handler.RegisterCollection(auth, reg.Agents, session.RolesForEntry("users"))
	handler.RegisterCollection(auth, reg.Outlets, session.RolesForEntry("outlets"))
	handler.RegisterCollection(auth, reg.Factories, session.RolesForEntry("factories"))
	handler.RegisterCollection(auth, reg.Products, session.RolesForEntry("inventory"))

	// Orders carry business rules (pricing, stock, scoping), so they get
	// dedicated handlers instead of the generic CRUD set.
	o := handler.NewOrderHandler(reg)
	ordersGroup := auth.Group("/orders", middleware.RequireRole(session.RolesForEntry("orders")...))
	ordersGroup.GET("", o.List)
	ordersGroup.POST("", o.Place)
	// The price list backing the ordering screen shares the orders role
	// set; the inventory CRUD on /products stays a management surface.
	auth.GET("/catalog", o.Catalog, middleware.RequireRole(session.RolesForEntry("orders")...))
	// Status changes are an office operation; customers never move an order
	// themselves, so this route carries the dashboard's role set.
	auth.PATCH("/orders/:id", o.UpdateStatus, middleware.RequireRole(session.RolesForEntry("dashboard")...))

	// The driver's route checklist is restricted to roles that see the
	// delivery navigation entry.
	r := handler.NewRouteHandler(reg)
	routeGroup := auth.Group("/route", middleware.RequireRole(session.RolesForEntry("delivery")...))
	routeGroup.GET("", r.Stops)
	routeGroup.POST("/:id/complete", r.Complete)

	// Dashboard metrics for the office roles.
	d := handler.NewDashboardHandler(reg)
	auth.GET("/dashboard", d.Metrics, middleware.RequireRole(session.RolesForEntry("dashboard")...))

	// Production batches and the AI-assisted plan.
	p := handler.NewProductionHandler(reg, plan)
	prodGroup := auth.Group("/production", middleware.RequireRole(session.RolesForEntry("production")...))
	prodGroup.GET("/batches", p.ListBatches)
	prodGroup.POST("/batches", p.CreateBatch)
	prodGroup.POST("/plan", p.Plan)
}
