package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/usecase/dto"
)

// BrandHandler - обработчик изображений брендов
type BrandHandler struct {
	brandUC *usecase.BrandImageUseCase
	logger  *zap.Logger
}

// NewBrandHandler - создание нового BrandHandler
func NewBrandHandler(brandUC *usecase.BrandImageUseCase, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandUC: brandUC,
		logger:  logger,
	}
}

// GetBrandImage godoc
// @Summary Изображение бренда
// @Description URL логотипа или фото бренда по Wikidata id (тег brand:wikidata у OSM мест)
// @Tags brands
// @Produce json
// @Param wikidata_id path string true "Wikidata id" example(Q37158)
// @Success 200 {object} utils.SuccessResponse{data=dto.BrandImageResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /brands/{wikidata_id}/image [get]
func (h *BrandHandler) GetBrandImage(c *fiber.Ctx) error {
	image, err := h.brandUC.GetBrandImage(c.Context(), c.Params("wikidata_id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.BrandImageResponse{
		WikidataID: image.WikidataID,
		URL:        image.URL,
		ResolvedAt: image.ResolvedAt,
	}, nil)
}
