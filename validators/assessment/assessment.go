package assessmentValidator

import (
	"plato/middleware"
	assessmentService "plato/services/assessment"

	"github.com/gofiber/fiber/v2"
)

// CreateAssessmentRequest is the create-assessment body.
type CreateAssessmentRequest struct {
	Answers []assessmentService.SubmittedAnswer `json:"answers"`
}

// SelectProtocolRequest is the select-protocol body.
type SelectProtocolRequest struct {
	ProtocolID uint `json:"protocolId"`
}

// StopAssessmentRequest is the stop-assessment body.
type StopAssessmentRequest struct {
	Reason string `json:"reason"`
}

// Create validates the create-assessment request
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssessmentRequest)

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
			if ans.Answer == "" && ans.SelectedOptionID == nil {
				errors["answers"] = "Each answer needs either text or a selected option!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}

// SelectProtocol validates the select-protocol request
func SelectProtocol() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SelectProtocolRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ProtocolID == 0 {
			errors["protocolId"] = "protocolId is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSelectProtocol", reqData)
		return c.Next()
	}
}

// Stop validates the stop-assessment request
func Stop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StopAssessmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Reason == "" {
			errors["reason"] = "Stop reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStop", reqData)
		return c.Next()
	}
}
