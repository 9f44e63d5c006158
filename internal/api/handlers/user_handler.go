package handlers

import (
	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService       *service.UserService
	connectionService *service.ConnectionService
	logger            *zap.Logger
}

func NewUserHandler(userService *service.UserService, connectionService *service.ConnectionService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:       userService,
		connectionService: connectionService,
		logger:            logger,
	}
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to get user", err)
	}

	return c.JSON(dto.NewUserResponse(user))
}

// GetWallet godoc
// @Summary Get a user's coin wallet
// @Tags wallets
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id}/wallet [get]
func (h *UserHandler) GetWallet(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	wallet, err := h.userService.GetWallet(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to get wallet", err)
	}

	return c.JSON(dto.NewWalletResponse(wallet))
}

// UpdateWallet godoc
// @Summary Set a user's coin balance
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateWalletRequest true "New balance"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /users/{id}/wallet [patch]
func (h *UserHandler) UpdateWallet(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	wallet, err := h.userService.SetWalletCoins(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to update wallet", err)
	}

	return c.JSON(dto.NewWalletResponse(wallet))
}

// ListRewards godoc
// @Summary List rewards credited to a user
// @Tags wallets
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.RewardResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id}/rewards [get]
func (h *UserHandler) ListRewards(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	rewards, err := h.userService.ListRewards(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to list rewards", err)
	}

	return c.JSON(dto.NewRewardResponses(rewards))
}

// ListConnections godoc
// @Summary List a user's connections
// @Tags connections
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.ConnectionResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id}/connections [get]
func (h *UserHandler) ListConnections(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	conns, err := h.connectionService.ListConnections(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Failed to list connections", err)
	}

	return c.JSON(dto.NewConnectionResponses(conns))
}

// CreateConnection godoc
// @Summary Connect two users
// @Tags connections
// @Accept json
// @Produce json
// @Param request body dto.CreateConnectionRequest true "Connection"
// @Success 201 {object} dto.ConnectionResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Failure 422 {object} handlers.ErrorResponse
// @Router /connections [post]
func (h *UserHandler) CreateConnection(c *fiber.Ctx) error {
	var req dto.CreateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	conn, err := h.connectionService.Connect(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, "Failed to create connection", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewConnectionResponse(conn))
}
