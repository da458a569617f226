package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/formaflow/formaflow/app/repository"
	"github.com/formaflow/formaflow/internal/pkg/env"
	"github.com/formaflow/formaflow/internal/pkg/logging"
	"github.com/formaflow/formaflow/internal/pkg/payments"
)

// HandlePaymentWebhook receives payment processor deliveries. The processor
// retries on non-2xx, so everything already recorded in the ledger answers
// 200 even when processing was a no-op.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")
	if secret == "" {
		return jsonError(c, fiber.StatusServiceUnavailable, "webhooks_disabled", "Payment webhooks are not configured")
	}

	service := payments.NewService(
		payments.NewStore(repository.GetGlobalRepositories()),
		secret,
		logging.GetLogger(),
	)

	result, err := service.HandleEvent(c.Body(), c.Get("X-Payproc-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "Signature verification failed")
		case errors.Is(err, payments.ErrMalformedPayload):
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "Malformed event payload")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to process event")
		}
	}

	return c.JSON(fiber.Map{
		"received":  true,
		"duplicate": result.Duplicate,
		"ignored":   result.Ignored,
	})
}
