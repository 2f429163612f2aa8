package middleware

import (
	"errors"
	"log"
	"plato/services/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse maps a typed service error to its HTTP status and payload.
// Unknown errors are logged and reported as a generic 500 so internal
// detail never leaks to the client.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var rateErr *apperrors.RateLimitError
	if errors.As(err, &rateErr) {
		return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many assessment attempts!", fiber.Map{
			"retry_after": int(rateErr.RetryAfter.Seconds()),
		})
	}

	var cooldownErr *apperrors.CooldownError
	if errors.As(err, &cooldownErr) {
		return JsonResponse(c, fiber.StatusForbidden, false,
			"You can only create a new assessment after the cooldown from the last one.", fiber.Map{
				"next_valid_time": cooldownErr.NextValidTime,
			})
	}

	var extErr *apperrors.ExternalServiceError
	if errors.As(err, &extErr) {
		log.Printf("[ASSESSMENT] external service failure: %v", extErr)
		return JsonResponse(c, fiber.StatusBadRequest, false, "Scoring service is unavailable, please retry later.", nil)
	}

	var valErr *apperrors.ValidationError
	if errors.As(err, &valErr) {
		return JsonResponse(c, fiber.StatusBadRequest, false, valErr.Message, nil)
	}

	var nfErr *apperrors.NotFoundError
	if errors.As(err, &nfErr) {
		return JsonResponse(c, fiber.StatusNotFound, false, nfErr.Error(), nil)
	}

	var protoErr *apperrors.InvalidProtocolError
	if errors.As(err, &protoErr) {
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid protocol selection. You can only choose from suggested protocols.", fiber.Map{
			"valid_protocol_ids": protoErr.ValidIDs,
		})
	}

	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		return JsonResponse(c, fiber.StatusConflict, false, conflictErr.Message, nil)
	}

	log.Printf("[ERROR] unhandled service error: %v", err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
