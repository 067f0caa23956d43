package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"demopilot/internal/application/billing/usecases"
	"demopilot/internal/shared/logger"
	"demopilot/internal/shared/utils"
)

// webhookBodyLimit caps the webhook payload size. Provider events are small;
// anything larger is hostile or corrupt.
const webhookBodyLimit = 64 << 10

// WebhookHandler terminates the billing provider's event delivery endpoint.
// The endpoint is unauthenticated by design: the signature on the payload is
// the authentication, and nothing is parsed before it verifies.
type WebhookHandler struct {
	verifier   usecases.EventVerifier
	dispatcher *usecases.EventDispatcher
	logger     logger.Interface
}

func NewWebhookHandler(
	verifier usecases.EventVerifier,
	dispatcher *usecases.EventDispatcher,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		dispatcher: dispatcher,
		logger:     logger.NewLogger(),
	}
}

// HandleWebhook verifies and applies a provider event. Any non-2xx response
// makes the provider redeliver the event later, which is safe because every
// reconciliation write is an absolute-state write.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := h.verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.dispatcher.Dispatch(c.Request.Context(), event); err != nil {
		h.logger.Errorw("failed to apply billing event",
			"error", err,
			"event_id", event.ID,
			"provider_type", event.ProviderType,
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event received", gin.H{"received": true})
}
