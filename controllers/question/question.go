package questionController

import (
	"plato/database"
	"plato/middleware"
	"plato/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListQuestions returns the full questionnaire, options included.
func ListQuestions(c *fiber.Ctx) error {
	var questions []models.Question
	if err := database.Database.Db.Preload("Options").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched!", questions)
}

// GetConfig returns the questionnaire plus the server time, so clients can
// align calendar-day boundaries with the server.
func GetConfig(c *fiber.Ctx) error {
	var questions []models.Question
	if err := database.Database.Db.Preload("Options").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Config fetched!", fiber.Map{
		"questions":   questions,
		"server_time": time.Now(),
	})
}
