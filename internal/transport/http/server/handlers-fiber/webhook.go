package handlers_fiber

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// HeaderEventKey names the webhook event type header.
const HeaderEventKey = "x-event-key"

// PostWebhook accepts a webhook delivery. Once the event key is present
// and the body decodes, the sender always gets 200: failed handling is
// logged, never retried, so a broken fan-out cannot retry-storm the
// remote service.
func (h *Handler) PostWebhook(c *fiber.Ctx) error {
	eventKey := c.Get(HeaderEventKey)
	if eventKey == "" {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("missing " + HeaderEventKey + " header"))
	}
	if !json.Valid(c.Body()) {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("body is not valid JSON"))
	}

	body := make([]byte, len(c.Body()))
	copy(body, c.Body())

	if err := h.uc.HandleWebhook(c.Context(), eventKey, body); err != nil {
		h.log.Errorw("webhook handling failed", "event", eventKey, "error", err)
	}
	return c.SendStatus(http.StatusOK)
}
