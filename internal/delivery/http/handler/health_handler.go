package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/usecase/dto"
)

// HealthChecker - зависимость, которую проверяет /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler - обработчик проверки состояния
type HealthHandler struct {
	storage string
	store   HealthChecker
	logger  *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler
func NewHealthHandler(storage string, store HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		store:   store,
		logger:  logger,
	}
}

// Health godoc
// @Summary Проверка состояния
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:  "healthy",
		Storage: h.storage,
		Checks:  map[string]string{"storage": "ok"},
	}

	if err := h.store.Health(ctx); err != nil {
		h.logger.Warn("Storage health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Checks["storage"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(resp)
}
