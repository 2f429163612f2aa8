package assessmentController

import (
	"plato/config"
	"plato/database"
	"plato/middleware"
	assessmentService "plato/services/assessment"
	"plato/services/clock"
	"plato/utils"
	validator "plato/validators/assessment"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	serviceOnce sync.Once
	serviceInst *assessmentService.Service
)

// Service returns the shared assessment lifecycle service. A single
// instance is required so per-user creation locks span all requests.
func Service() *assessmentService.Service {
	serviceOnce.Do(func() {
		cfg := config.AppConfig
		db := database.Database.Db
		clk := clock.System()
		limiter := assessmentService.NewRateLimiter(db, cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second, clk)
		scoring := utils.NewAIClient(cfg.AIBaseURL, cfg.AIMaxTokens)
		serviceInst = assessmentService.NewService(db, scoring, clk, time.Duration(cfg.AssessmentInterval)*time.Second, limiter)
	})
	return serviceInst
}

// ListAssessments returns all assessments of the caller, newest first.
func ListAssessments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	assessments, err := Service().GetAllByUser(userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched!", assessments)
}

// LatestAssessment returns the caller's most recent assessment.
func LatestAssessment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	assessment, err := Service().GetLatestByUser(userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Latest assessment fetched!", assessment)
}

// CreateAssessment runs the full creation sequence and returns the new
// assessment together with the analysis artifacts of this call.
func CreateAssessment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedAssessment").(*validator.CreateAssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := Service().CreateWithAnswers(userId, reqData.Answers)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", fiber.Map{
		"assessment":      result.Assessment,
		"depression_type": result.DepressionType,
		"analysis":        result.Analysis,
	})
}

// CheckTimeInterval reports whether the cooldown since the caller's last
// assessment has elapsed.
func CheckTimeInterval(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	eligibility, err := Service().IsEligible(userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	status := fiber.StatusOK
	if !eligibility.IsValid {
		status = fiber.StatusForbidden
	}
	return middleware.JsonResponse(c, status, eligibility.IsValid, "Assessment interval checked!", fiber.Map{
		"is_valid":        eligibility.IsValid,
		"next_valid_time": eligibility.NextValidTime,
	})
}

// SelectProtocol attaches one of the suggested protocols to the caller's
// latest assessment.
func SelectProtocol(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedSelectProtocol").(*validator.SelectProtocolRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assessment, err := Service().SelectProtocol(userId, reqData.ProtocolID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Protocol selected!", assessment)
}

// StopAssessment stops the caller's latest assessment with a reason.
func StopAssessment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedStop").(*validator.StopAssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assessment, err := Service().Stop(userId, reqData.Reason)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment stopped!", assessment)
}
