package api

import (
	"errors"

	"shareit/docs"
	"shareit/internal/api/handlers"
	"shareit/pkg/config"
	"shareit/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	userHandler *handlers.UserHandler,
	businessHandler *handlers.BusinessHandler,
	recHandler *handlers.RecommendationHandler,
	offerHandler *handlers.OfferHandler,
	cfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "shareit",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(appLogger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Importing docs registers the OpenAPI document through its init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Get("/:id/wallet", userHandler.GetWallet)
	users.Patch("/:id/wallet", userHandler.UpdateWallet)
	users.Get("/:id/rewards", userHandler.ListRewards)
	users.Get("/:id/connections", userHandler.ListConnections)

	api.Post("/connections", userHandler.CreateConnection)

	businesses := api.Group("/businesses")
	businesses.Get("", businessHandler.ListBusinesses)
	businesses.Post("", businessHandler.CreateBusiness)
	businesses.Get("/:id", businessHandler.GetBusiness)

	recs := api.Group("/recommendations")
	recs.Get("", recHandler.ListRecommendations)
	recs.Post("", recHandler.CreateRecommendation)
	recs.Get("/:id", recHandler.GetRecommendation)
	recs.Post("/:id/views", recHandler.RecordView)

	offers := api.Group("/saved-offers")
	offers.Get("", offerHandler.ListSavedOffers)
	offers.Post("", offerHandler.SaveOffer)
	offers.Patch("/:id/claim", offerHandler.ClaimOffer)

	return app
}

// errorHandler renders framework errors (unknown routes, body limits,
// recovered panics) in the same shape handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	status := "internal"
	switch {
	case code == fiber.StatusNotFound:
		status = "not_found"
	case code < fiber.StatusInternalServerError:
		status = "bad_request"
	}

	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(code).JSON(handlers.ErrorResponse{Error: msg, Code: status})
}
