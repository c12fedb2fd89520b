// cmd/server/main.go
// This is the entry point for the League API server.
// In Go, the "main" package and its "main()" function is where the program starts executing.
// The "cmd/server" directory follows a common Go convention: the cmd/ folder holds executable
// binaries, and internal/ holds reusable packages that are not meant to be imported by other projects.
package main

import (
	"os"
	"time"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows the web UI to talk to
	// the API even though they're running on different origins (hosts/ports)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// fiberlog prints request details (method, path, status, duration) to stdout
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	// clockwork wraps time.Now behind an interface so the analytics date windows
	// are deterministic in tests; the real clock is injected here
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	// Internal packages — our own code, imported by module path
	"github.com/ecspl/league-api/internal/analytics"
	"github.com/ecspl/league-api/internal/config"
	"github.com/ecspl/league-api/internal/database"
	"github.com/ecspl/league-api/internal/handlers"
	"github.com/ecspl/league-api/internal/middleware"
	"github.com/ecspl/league-api/internal/store"
	"github.com/ecspl/league-api/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	// cfg is a pointer (*Config) containing all runtime settings like port, database URL, etc.
	cfg := config.Load()

	// Structured logging. In development the console writer prints human-readable
	// lines; in production we emit plain JSON for the log pipeline.
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Connect to the PostgreSQL database.
	// We store the returned *gorm.DB — it's used by middleware and handlers to run queries.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run any pending SQL migration files (in the migrations/ directory).
	// Migrations are SQL scripts that create or alter tables. Running them on startup
	// ensures the database schema is always in sync when the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Create a new WebSocket Hub and start it in a goroutine.
	// The Hub manages all live connections — coaches watching RSVPs roll in for a match.
	// "go hub.Run()" starts Run() as a goroutine: a lightweight concurrent function
	// that runs in the background without blocking the rest of startup.
	hub := websocket.NewHub()
	go hub.Run()

	// Assemble the analytics engine: the GORM-backed store satisfies the
	// read-only analytics.Store contract, and each analyzer gets the real clock.
	st := store.New(db)
	clock := clockwork.NewRealClock()
	reporter := analytics.NewSubstitutionReporter(st, clock)
	scorer := analytics.NewReliabilityScorer(st, clock)
	insights := analytics.NewInsightsAnalyzer(st, clock)

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "League API",
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	app.Use(fiberlog.New())
	// cors.New() allows requests from any origin (needed for the web UI in development).
	// In production, lock this down to your specific domain.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	// GET /health is a liveness check used by the load balancer to verify the server is running.
	app.Get("/health", handlers.HealthCheck)

	// --- External analytics API ---
	// Read-only reporting surface for integrations (the Discord bot, dashboards).
	// Authenticated by API key (X-API-Key header or api_key query parameter)
	// rather than a user JWT — these callers are services, not people.
	external := app.Group("/api/external/v1", middleware.APIKey(cfg))
	external.Get("/analytics/substitution-needs", handlers.SubstitutionNeeds(reporter))
	external.Get("/analytics/player-patterns", handlers.PlayerPatterns(scorer))
	external.Get("/analytics/match-insights", handlers.MatchInsights(insights))

	// --- Authenticated API routes ---
	// All routes under /api/v1 require a valid JWT.
	// middleware.Auth(cfg, db) validates the token AND syncs the user to our database.
	//
	// Route group pattern: app.Group(prefix, middlewares...) applies the middleware
	// to every route registered on the returned group — we don't have to repeat it per route.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Schedule and roster routes
	api.Get("/matches", handlers.GetMatches(st))
	api.Get("/teams/:id/roster", handlers.GetTeamRoster(db, st))

	// RSVP route — any authenticated user can record availability
	api.Post("/matches/:id/availability", handlers.RecordAvailability(db, hub))

	// Substitute request routes
	// GET  /api/v1/substitute-requests — list, with optional match/team/status filters
	// POST /api/v1/substitute-requests — file a request (coach and admin only)
	api.Get("/substitute-requests", handlers.ListSubRequests(db))
	api.Post("/substitute-requests", middleware.RequireRole("admin", "coach"), handlers.CreateSubRequest(db))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all network interfaces.
	log.Info().Str("port", cfg.Port).Msg("starting server")
	log.Fatal().Err(app.Listen(":" + cfg.Port)).Msg("server stopped")
}
