package checkinValidator

import (
	"plato/middleware"
	checkinService "plato/services/checkin"

	"github.com/gofiber/fiber/v2"
)

// SubmitCheckinRequest is the check-in submission body.
type SubmitCheckinRequest struct {
	Answers []checkinService.SubmittedAnswer `json:"answers"`
}

// Submit validates the check-in submission request
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitCheckinRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, ans := range reqData.Answers {
			if ans.QuestionID == 0 {
				errors["answers"] = "question_id is required for each answer!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckin", reqData)
		return c.Next()
	}
}
