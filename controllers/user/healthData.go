package userController

import (
	"plato/database"
	"plato/middleware"
	"plato/models"
	validator "plato/validators/user"

	"github.com/gofiber/fiber/v2"
)

// CreateHealthData stores one synced health sample window for the caller.
func CreateHealthData(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedHealthData").(*validator.HealthDataRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	record := models.UserHealthData{
		UserID:             userId,
		SleepStartDatetime: reqData.SleepStartDatetime,
		SleepEndDatetime:   reqData.SleepEndDatetime,
		SleepDuration:      int64(reqData.SleepEndDatetime.Sub(reqData.SleepStartDatetime).Seconds()),
		Steps:              reqData.Steps,
		Weight:             reqData.Weight,
		DataStartDatetime:  reqData.DataStartDatetime,
		DataEndDatetime:    reqData.DataEndDatetime,
	}

	if err := database.Database.Db.Create(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store health data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Health data stored!", record)
}

// ListHealthData returns the caller's health samples, newest first.
func ListHealthData(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.UserHealthData{}).Where("user_id = ?", userId)

	var total int64
	query.Count(&total)

	var records []models.UserHealthData
	if err := query.Order("data_start_datetime DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch health data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Health data fetched!", fiber.Map{
		"records": records,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
