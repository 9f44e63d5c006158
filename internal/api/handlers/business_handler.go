package handlers

import (
	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BusinessHandler struct {
	businessService *service.BusinessService
	logger          *zap.Logger
}

func NewBusinessHandler(businessService *service.BusinessService, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		logger:          logger,
	}
}

// ListBusinesses godoc
// @Summary Search businesses
// @Description Case-insensitive match on name or category. Empty query lists all businesses.
// @Tags businesses
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BusinessResponse
// @Failure 503 {object} handlers.ErrorResponse
// @Router /businesses [get]
func (h *BusinessHandler) ListBusinesses(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	businesses, err := h.businessService.ListBusinesses(c.UserContext(), query, limit, offset)
	if err != nil {
		return respondError(c, h.logger, "Failed to list businesses", err)
	}

	return c.JSON(dto.NewBusinessResponses(businesses))
}

// GetBusiness godoc
// @Summary Get a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /businesses/{id} [get]
func (h *BusinessHandler) GetBusiness(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid business ID")
	}

	business, err := h.businessService.GetBusiness(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to get business", err)
	}

	return c.JSON(dto.NewBusinessResponse(business))
}

// CreateBusiness godoc
// @Summary Register a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param request body dto.CreateBusinessRequest true "Business"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /businesses [post]
func (h *BusinessHandler) CreateBusiness(c *fiber.Ctx) error {
	var req dto.CreateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	business, err := h.businessService.CreateBusiness(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create business", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBusinessResponse(business))
}
