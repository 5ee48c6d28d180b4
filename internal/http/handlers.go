package http

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/quantumauth-io/quantum-oracle-client/internal/connection"
	"github.com/quantumauth-io/quantum-oracle-client/internal/dashboard"
	"github.com/quantumauth-io/quantum-oracle-client/internal/poller"
	"github.com/quantumauth-io/quantum-oracle-client/internal/provider"
)

// Engine is the part of the engine the API drives.
type Engine interface {
	Connect(ctx context.Context) error
	Disconnect()
	Refresh() bool
	View() dashboard.View
	Status() connection.Status
	Stats() poller.Stats
}

type Handler struct {
	engine   Engine
	strategy string
}

func NewHandler(engine Engine, strategy string) *Handler {
	return &Handler{engine: engine, strategy: strategy}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		JSONKeyStatus:   "ok",
		JSONKeyState:    h.engine.Status().State,
		JSONKeyStats:    h.engine.Stats(),
		JSONKeyStrategy: h.strategy,
	})
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.View())
}

// Connect blocks until the wallet answers, which may include a user prompt.
func (h *Handler) Connect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), connectTimeout)
	defer cancel()

	if err := h.engine.Connect(ctx); err != nil {
		c.JSON(connectErrorStatus(err), gin.H{
			JSONKeyOK:    false,
			JSONKeyError: err.Error(),
			JSONKeyView:  h.engine.View(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{JSONKeyOK: true, JSONKeyView: h.engine.View()})
}

func (h *Handler) Disconnect(c *gin.Context) {
	h.engine.Disconnect()
	c.JSON(http.StatusOK, gin.H{JSONKeyOK: true, JSONKeyView: h.engine.View()})
}

func (h *Handler) Refresh(c *gin.Context) {
	if !h.engine.Refresh() {
		c.JSON(http.StatusConflict, gin.H{
			JSONKeyOK:      false,
			JSONKeyStarted: false,
			JSONKeyError:   "not connected or a refresh is already running",
		})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{JSONKeyOK: true, JSONKeyStarted: true})
}

func connectErrorStatus(err error) int {
	switch {
	case errors.Is(err, connection.ErrConnectInProgress), errors.Is(err, connection.ErrWrongNetwork):
		return http.StatusConflict
	case errors.Is(err, provider.ErrUserRejected):
		return http.StatusForbidden
	case errors.Is(err, provider.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
