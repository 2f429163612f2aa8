package userRoutes

import (
	userController "plato/controllers/user"
	"plato/middleware"
	userValidator "plato/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Post("/health-data", userValidator.CreateHealthData(), middleware.JWTMiddleware, userController.CreateHealthData)
	userGroup.Get("/health-data", middleware.JWTMiddleware, userController.ListHealthData)

	app.Get("/notifications", middleware.JWTMiddleware, userController.ListNotifications)
}
