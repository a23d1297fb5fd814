package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/delivery/http/handler"
	"github.com/places-microservice/internal/delivery/http/middleware"
	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
)

const healthPath = "/api/v1/health"

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	placesHandler *handler.PlacesHandler
	brandHandler  *handler.BrandHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placesHandler *handler.PlacesHandler,
	brandHandler *handler.BrandHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Places Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Places.FetchTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		placesHandler: placesHandler,
		brandHandler:  brandHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	if secret := s.config.Auth.JWTSecret; secret != "" {
		api.Use(middleware.JWTAuth([]byte(secret), s.logger, healthPath))
	} else {
		s.logger.Warn("AUTH_JWT_SECRET is empty, API is served without authentication")
	}

	api.Get("/health", s.healthHandler.Health)

	// Places routes
	api.Post("/places/nearby", s.placesHandler.SearchNearby)
	api.Get("/places/nearby", s.placesHandler.SearchNearbyGET)
	api.Get("/places/categories", s.placesHandler.GetCategories)
	api.Get("/places/photo", s.placesHandler.GetPhoto)

	// Brand routes
	api.Get("/brands/:wikidata_id/image", s.brandHandler.GetBrandImage)
}

// App - доступ к fiber.App, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			logger.Warn("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.Error(err),
			)
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{
				Error: errors.New(httpErrorCode(fiberErr.Code), fiberErr.Message, fiberErr.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_SERVER_ERROR"
	}
	return "BAD_REQUEST"
}
