package userController

import (
	"plato/database"
	"plato/middleware"
	"plato/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the caller's notifications, newest first.
func ListNotifications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var notifications []models.Notification
	err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", notifications)
}
