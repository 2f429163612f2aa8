package assessmentRoutes

import (
	assessmentController "plato/controllers/assessment"
	"plato/middleware"
	assessmentValidator "plato/validators/assessment"

	"github.com/gofiber/fiber/v2"
)

func SetupAssessmentRoutes(app *fiber.App) {
	assessmentGroup := app.Group("/assessments")

	assessmentGroup.Get("/", middleware.JWTMiddleware, assessmentController.ListAssessments)
	assessmentGroup.Get("/latest", middleware.JWTMiddleware, assessmentController.LatestAssessment)
	assessmentGroup.Post("/", assessmentValidator.Create(), middleware.JWTMiddleware, assessmentController.CreateAssessment)
	assessmentGroup.Post("/check-interval", middleware.JWTMiddleware, assessmentController.CheckTimeInterval)
	assessmentGroup.Post("/select-protocol", assessmentValidator.SelectProtocol(), middleware.JWTMiddleware, assessmentController.SelectProtocol)
	assessmentGroup.Post("/stop", assessmentValidator.Stop(), middleware.JWTMiddleware, assessmentController.StopAssessment)
}
