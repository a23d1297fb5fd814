package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/pkg/validator"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/usecase/dto"
)

// PlacesHandler - обработчик поиска мест рядом
type PlacesHandler struct {
	placesUC *usecase.PlacesUseCase
	photoUC  *usecase.PhotoUseCase
	logger   *zap.Logger
}

// NewPlacesHandler - создание нового PlacesHandler
func NewPlacesHandler(placesUC *usecase.PlacesUseCase, photoUC *usecase.PhotoUseCase, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		placesUC: placesUC,
		photoUC:  photoUC,
		logger:   logger,
	}
}

// SearchNearby godoc
// @Summary Места рядом с точкой
// @Description Возвращает места выбранных категорий в радиусе от центра. Ответ берется из снимка кеша, если он свежий и покрывает запрос.
// @Tags places
// @Accept json
// @Produce json
// @Param request body dto.NearbyPlacesRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyPlacesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /places/nearby [post]
func (h *PlacesHandler) SearchNearby(c *fiber.Ctx) error {
	var req dto.NearbyPlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	return h.searchNearby(c, req)
}

// SearchNearbyGET godoc
// @Summary Места рядом с точкой (GET)
// @Description То же, что POST /places/nearby, параметры передаются в query. Категории через запятую.
// @Tags places
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius_m query int false "Радиус в метрах"
// @Param categories query string false "Категории через запятую" example(cafe,library)
// @Param provider query string false "Провайдер" Enums(osm, google)
// @Param limit query int false "Максимум мест в ответе"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyPlacesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /places/nearby [get]
func (h *PlacesHandler) SearchNearbyGET(c *fiber.Ctx) error {
	req, err := parseNearbyQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	return h.searchNearby(c, req)
}

func (h *PlacesHandler) searchNearby(c *fiber.Ctx, req dto.NearbyPlacesRequest) error {
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.placesUC.SearchNearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Source: result.Source,
	})
}

// GetCategories godoc
// @Summary Список категорий
// @Description Категории фильтра. fetchable=false означает, что категория не запрашивается у провайдера.
// @Tags places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CategoryResponse}
// @Router /places/categories [get]
func (h *PlacesHandler) GetCategories(c *fiber.Ctx) error {
	categories := dto.NewCategoryResponses()
	return utils.SendSuccess(c, categories, &utils.Meta{
		Total: len(categories),
	})
}

// GetPhoto godoc
// @Summary Фото места Google
// @Description Проксирует фото по photo_reference, ключ API не покидает сервис
// @Tags places
// @Produce image/jpeg
// @Param reference query string true "photo_reference из ответа поиска"
// @Param max_width query int false "Ширина в пикселях" default(400)
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /places/photo [get]
func (h *PlacesHandler) GetPhoto(c *fiber.Ctx) error {
	req := dto.PlacePhotoRequest{
		Reference: c.Query("reference"),
	}
	if raw := c.Query("max_width"); raw != "" {
		width, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"max_width": "must be a positive integer",
			}))
		}
		req.MaxWidth = uint(width)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	photo, err := h.photoUC.GetPhoto(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, photo.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(photo.Data)
}

// parseNearbyQuery собирает запрос из query параметров
func parseNearbyQuery(c *fiber.Ctx) (dto.NearbyPlacesRequest, error) {
	var req dto.NearbyPlacesRequest

	if raw := c.Query("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.ErrInvalidCoordinates
		}
		req.Lat = &lat
	}
	if raw := c.Query("lon"); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.ErrInvalidCoordinates
		}
		req.Lon = &lon
	}
	if raw := c.Query("radius_m"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.ErrInvalidRadius
		}
		req.RadiusMeters = radius
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"limit": "must be an integer",
			})
		}
		req.Limit = limit
	}

	// categories=cafe,library и categories=cafe&categories=library эквивалентны
	for _, raw := range c.Context().QueryArgs().PeekMulti("categories") {
		for _, cat := range strings.Split(string(raw), ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				req.Categories = append(req.Categories, cat)
			}
		}
	}
	req.Provider = c.Query("provider")

	return req, nil
}
