package userValidator

import (
	"plato/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthDataRequest is the health data sync body.
type HealthDataRequest struct {
	SleepStartDatetime time.Time `json:"sleepStartDatetime"`
	SleepEndDatetime   time.Time `json:"sleepEndDatetime"`
	Steps              int       `json:"steps"`
	Weight             float64   `json:"weight"`
	DataStartDatetime  time.Time `json:"dataStartDatetime"`
	DataEndDatetime    time.Time `json:"dataEndDatetime"`
}

// CreateHealthData validates the health data sync request
func CreateHealthData() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HealthDataRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SleepStartDatetime.IsZero() || reqData.SleepEndDatetime.IsZero() {
			errors["sleep"] = "Sleep start and end datetimes are required!"
		} else if !reqData.SleepEndDatetime.After(reqData.SleepStartDatetime) {
			errors["sleep"] = "Sleep end must be after sleep start!"
		}
		if reqData.Steps < 0 {
			errors["steps"] = "Steps cannot be negative!"
		}
		if reqData.Weight <= 0 {
			errors["weight"] = "Weight must be greater than 0!"
		}
		if reqData.DataStartDatetime.IsZero() || reqData.DataEndDatetime.IsZero() {
			errors["data"] = "Data start and end datetimes are required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedHealthData", reqData)
		return c.Next()
	}
}
