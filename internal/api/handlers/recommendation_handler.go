package handlers

import (
	"shareit/internal/dto"
	"shareit/internal/repository"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// ListRecommendations godoc
// @Summary List recommendations
// @Description Newest first. Both filters are optional.
// @Tags recommendations
// @Produce json
// @Param userId query string false "Author ID"
// @Param businessId query string false "Business ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.RecommendationResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) ListRecommendations(c *fiber.Ctx) error {
	filter := repository.RecommendationFilter{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid userId")
		}
		filter.UserID = &id
	}
	if raw := c.Query("businessId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid businessId")
		}
		filter.BusinessID = &id
	}

	recs, err := h.recService.ListRecommendations(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, "Failed to list recommendations", err)
	}

	return c.JSON(dto.NewRecommendationResponses(recs))
}

// GetRecommendation godoc
// @Summary Get a recommendation
// @Tags recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /recommendations/{id} [get]
func (h *RecommendationHandler) GetRecommendation(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid recommendation ID")
	}

	rec, err := h.recService.GetRecommendation(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to get recommendation", err)
	}

	return c.JSON(dto.NewRecommendationResponse(rec))
}

// CreateRecommendation godoc
// @Summary Recommend a business
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.CreateRecommendationRequest true "Recommendation"
// @Success 201 {object} dto.RecommendationResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /recommendations [post]
func (h *RecommendationHandler) CreateRecommendation(c *fiber.Ctx) error {
	var req dto.CreateRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := h.recService.CreateRecommendation(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create recommendation", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewRecommendationResponse(rec))
}

// RecordView godoc
// @Summary Count a view of a recommendation
// @Tags recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /recommendations/{id}/views [post]
func (h *RecommendationHandler) RecordView(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid recommendation ID")
	}

	rec, err := h.recService.RecordView(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to record view", err)
	}

	return c.JSON(dto.NewRecommendationResponse(rec))
}
