package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// AssetsHandler manages the inventory endpoints. Asset writes are plain
// repository calls; binding to a client happens through ticket intake.
type AssetsHandler struct {
	assets repository.AssetRepository
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets repository.AssetRepository) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// ListAssets GET /assets.
func (h *AssetsHandler) ListAssets(c *fiber.Ctx) error {
	filter := repository.AssetFilter{
		Orphans: c.QueryBool("orphans", false),
	}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		filter.SearchTerm = &term
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	assets, err := h.assets.List(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, assetResponse(&assets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAsset GET /assets/:id.
func (h *AssetsHandler) GetAsset(c *fiber.Ctx) error {
	asset, err := h.assets.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": assetResponse(asset)})
}

// CreateAsset POST /assets.
func (h *AssetsHandler) CreateAsset(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	asset := &domain.Asset{
		Identifier:      strings.TrimSpace(req.Identifier),
		SerialNumber:    strings.TrimSpace(req.SerialNumber),
		Name:            strings.TrimSpace(req.Name),
		Status:          strings.TrimSpace(req.Status),
		LocationDetails: strings.TrimSpace(req.LocationDetails),
	}
	if clientID := strings.TrimSpace(req.ClientID); clientID != "" {
		asset.ClientID = &clientID
	}
	if err := h.assets.Create(c.Context(), asset); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": assetResponse(asset)})
}
