package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	actionDashboard = ""
	actionGenerate  = "generate"
	actionCleanup   = "cleanup"
	actionStats     = "stats"
)

// TriggerHandler serves the operator trigger endpoint
type TriggerHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewTriggerHandler creates a new TriggerHandler
func NewTriggerHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *TriggerHandler {
	return &TriggerHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "trigger").Logger(),
	}
}

// Trigger handles GET /api/blog/trigger
// Query: secret (required), action (generate, cleanup, stats, or empty for the dashboard), batch
func (h *TriggerHandler) Trigger(c *gin.Context) {
	if !h.authorized(c.Query("secret")) {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("Rejected trigger call with invalid secret")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	switch action := c.Query("action"); action {
	case actionGenerate:
		h.generate(c)
	case actionCleanup:
		h.cleanup(c)
	case actionStats:
		h.stats(c)
	case actionDashboard:
		h.dashboard(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "action must be one of: generate, cleanup, stats",
		})
	}
}

// authorized compares in constant time; an unset secret locks the endpoint
func (h *TriggerHandler) authorized(given string) bool {
	expected := h.cfg.Pipeline.Secret
	if expected == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}

func (h *TriggerHandler) generate(c *gin.Context) {
	batchSize, err := h.batchSize(c.Query("batch"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.services.Pipeline.Generate(c.Request.Context(), batchSize)
	if err != nil {
		h.fail(c, "generate", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// batchSize parses the optional batch override, clamped to [1, max]
func (h *TriggerHandler) batchSize(raw string) (int, error) {
	if raw == "" {
		return h.cfg.Pipeline.BatchSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("batch must be an integer")
	}
	if n < 1 {
		n = 1
	}
	if limit := h.cfg.Pipeline.MaxBatchSize; limit > 0 && n > limit {
		n = limit
	}
	return n, nil
}

func (h *TriggerHandler) cleanup(c *gin.Context) {
	result, err := h.services.Pipeline.Cleanup(c.Request.Context())
	if err != nil {
		h.fail(c, "cleanup", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TriggerHandler) stats(c *gin.Context) {
	stats, err := h.services.Pipeline.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *TriggerHandler) dashboard(c *gin.Context) {
	stats, err := h.services.Pipeline.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "dashboard", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, dashboardTemplate.Name(), dashboardData{
		Stats:     stats,
		Secret:    c.Query("secret"),
		BatchSize: h.cfg.Pipeline.BatchSize,
	})
}

func (h *TriggerHandler) fail(c *gin.Context, action string, err error) {
	h.log.Error().Err(err).Str("action", action).Msg("Trigger action failed")

	msg := "Internal server error"
	if errors.Is(err, service.ErrGeneratorNotConfigured) {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}
