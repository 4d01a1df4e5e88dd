package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/service"
)

const (
	ServiceName    = "google-keep-rest-api"
	ServiceVersion = "1.0.0"

	healthCacheKey = "health"
)

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
	Health(ctx *fiber.Ctx) error
	Root(ctx *fiber.Ctx) error
}

type healthController struct {
	noteService service.INoteService
	// probeCache keeps monitoring traffic from hammering the Keep API; the
	// connectivity probe is reused for a few seconds.
	probeCache *cache.Cache
}

func NewHealthController(noteService service.INoteService) IHealthController {
	return &healthController{
		noteService: noteService,
		probeCache:  cache.New(5*time.Second, time.Minute),
	}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/", c.Root)
	app.Get("/health", c.Health)
	app.Get("/api/health", c.Health)
}

// Health reports Keep connectivity. The endpoint itself always answers 200;
// a broken session shows up as status "unhealthy" in the body.
func (c *healthController) Health(ctx *fiber.Ctx) error {
	connected := c.connected(ctx)

	status := "healthy"
	if !connected {
		status = "unhealthy"
	}

	return ctx.JSON(dto.HealthResponse{
		Status:              status,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		Service:             ServiceName,
		GoogleKeepConnected: connected,
		Version:             ServiceVersion,
	})
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.RootResponse{
		Service: "Google Keep REST API",
		Version: ServiceVersion,
		Endpoints: map[string]string{
			"health": "/health or /api/health",
			"search": "GET /api/notes/search?query=...",
			"create": "POST /api/notes",
			"get":    "GET /api/notes/{note_id}",
			"update": "PUT /api/notes/{note_id}",
			"delete": "DELETE /api/notes/{note_id}",
			"list":   "GET /api/notes",
		},
	})
}

func (c *healthController) connected(ctx *fiber.Ctx) bool {
	if v, found := c.probeCache.Get(healthCacheKey); found {
		return v.(bool)
	}
	connected := c.noteService.Connected(ctx.Context())
	c.probeCache.Set(healthCacheKey, connected, cache.DefaultExpiration)
	return connected
}
