package checkinController

import (
	"fmt"
	"plato/database"
	"plato/middleware"
	checkinService "plato/services/checkin"
	"plato/services/clock"
	validator "plato/validators/checkin"
	"sync"

	"github.com/gofiber/fiber/v2"
)

var (
	serviceOnce sync.Once
	serviceInst *checkinService.Service
)

func service() *checkinService.Service {
	serviceOnce.Do(func() {
		serviceInst = checkinService.NewService(database.Database.Db, clock.System())
	})
	return serviceInst
}

// CheckinQuestions returns the active check-in question set.
func CheckinQuestions(c *fiber.Ctx) error {
	questions, err := service().CheckinQuestions()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Check-in questions fetched!", questions)
}

// SubmitCheckin persists a full daily check-in against the caller's latest
// assessment.
func SubmitCheckin(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCheckin").(*validator.SubmitCheckinRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assessment, created, err := service().Submit(userId, reqData.Answers)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		fmt.Sprintf("Successfully created %d check-in answers", created), fiber.Map{
			"assessment": assessment,
		})
}

// CheckinHistory returns the check-in answers of one assessment grouped by
// calendar day, newest first.
func CheckinHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	assessmentId, err := c.ParamsInt("assessmentId")
	if err != nil || assessmentId <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment id!", nil)
	}

	history, err := service().History(userId, uint(assessmentId))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Check-in history fetched!", fiber.Map{
		"checkin_history": history,
	})
}
