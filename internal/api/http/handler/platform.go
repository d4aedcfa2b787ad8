package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// PlatformService defines dashboard navigation.
type PlatformService interface {
	Initialize(ctx context.Context) (view.Dashboard, error)
	LoadView(ctx context.Context, name string) (any, error)
}

// Streamer upgrades a request to the render stream.
type Streamer interface {
	Serve(w http.ResponseWriter, r *http.Request) error
}

// Platform handles navigation and the render stream.
type Platform struct {
	base
	platformService PlatformService
	streamer        Streamer
}

// NewPlatform creates a new Platform handler.
func NewPlatform(platformService PlatformService, streamer Streamer, events model.ContextManager, logger *logger.Logger) *Platform {
	return &Platform{
		base:            base{events: events, logger: logger},
		platformService: platformService,
		streamer:        streamer,
	}
}

// Init renders the dashboard, or answers 401 so the client shows the login page.
func (h *Platform) Init(c *gin.Context) {
	dashboard, err := h.platformService.Initialize(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, dashboard)
}

func (h *Platform) View(c *gin.Context) {
	v, err := h.platformService.LoadView(c.Request.Context(), c.Param("view"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, v)
}

// Stream serves the websocket render stream.
func (h *Platform) Stream(c *gin.Context) {
	if err := h.streamer.Serve(c.Writer, c.Request); err != nil {
		_ = c.Error(err)
		h.logger.Warn("Platform handler: websocket upgrade failed",
			"error", err.Error())
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
