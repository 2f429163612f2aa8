package questionRoutes

import (
	questionController "plato/controllers/question"
	"plato/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App) {
	app.Get("/questions", middleware.JWTMiddleware, questionController.ListQuestions)
	app.Get("/config", middleware.JWTMiddleware, questionController.GetConfig)
}
