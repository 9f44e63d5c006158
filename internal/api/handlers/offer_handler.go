package handlers

import (
	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OfferHandler struct {
	offerService *service.OfferService
	logger       *zap.Logger
}

func NewOfferHandler(offerService *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		logger:       logger,
	}
}

// ListSavedOffers godoc
// @Summary List a user's saved offers
// @Description Most recently saved first.
// @Tags saved-offers
// @Produce json
// @Param userId query string true "Saver ID"
// @Success 200 {array} dto.SavedOfferResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Router /saved-offers [get]
func (h *OfferHandler) ListSavedOffers(c *fiber.Ctx) error {
	raw := c.Query("userId")
	if raw == "" {
		return badRequest(c, "userId query parameter is required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return badRequest(c, "Invalid userId")
	}

	offers, err := h.offerService.ListSavedOffers(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, "Failed to list saved offers", err)
	}

	return c.JSON(dto.NewSavedOfferResponses(offers))
}

// SaveOffer godoc
// @Summary Save a recommendation as an offer
// @Description Idempotent. Returns 201 for a new saved offer and 200 with the existing record otherwise.
// @Tags saved-offers
// @Accept json
// @Produce json
// @Param request body dto.SaveOfferRequest true "Offer to save"
// @Success 200 {object} dto.SavedOfferResponse
// @Success 201 {object} dto.SavedOfferResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /saved-offers [post]
func (h *OfferHandler) SaveOffer(c *fiber.Ctx) error {
	var req dto.SaveOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	offer, created, err := h.offerService.SaveOffer(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to save offer", err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.NewSavedOfferResponse(offer))
}

// ClaimOffer godoc
// @Summary Claim a saved offer
// @Description Marks the offer claimed and credits the referrer's wallet. Succeeds at most once per offer.
// @Tags saved-offers
// @Accept json
// @Produce json
// @Param id path string true "Saved offer ID"
// @Param request body dto.ClaimOfferRequest true "Referrer"
// @Success 200 {object} dto.SavedOfferResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /saved-offers/{id}/claim [patch]
func (h *OfferHandler) ClaimOffer(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid saved offer ID")
	}

	var req dto.ClaimOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	offer, err := h.offerService.ClaimOffer(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to claim offer", err)
	}

	return c.JSON(dto.NewSavedOfferResponse(offer))
}
