package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	almanacSvc almanac.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(almanacSvc almanac.Service, logger *slog.Logger) *Handler {
	return &Handler{
		almanacSvc: almanacSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// GenerateAlmanac validates the request and returns a reading.
func (h *Handler) GenerateAlmanac(c *gin.Context) {
	var req almanac.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "Invalid request body", err))
		return
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	reading, err := h.almanacSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, reading)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
