package checkinRoutes

import (
	checkinController "plato/controllers/checkin"
	"plato/middleware"
	checkinValidator "plato/validators/checkin"

	"github.com/gofiber/fiber/v2"
)

func SetupCheckinRoutes(app *fiber.App) {
	checkinGroup := app.Group("/checkin")

	checkinGroup.Get("/questions", middleware.JWTMiddleware, checkinController.CheckinQuestions)
	checkinGroup.Post("/", checkinValidator.Submit(), middleware.JWTMiddleware, checkinController.SubmitCheckin)
	checkinGroup.Get("/history/:assessmentId", middleware.JWTMiddleware, checkinController.CheckinHistory)
}
