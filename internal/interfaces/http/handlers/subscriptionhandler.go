package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"demopilot/internal/application/subscription/usecases"
	"demopilot/internal/interfaces/http/middleware"
	"demopilot/internal/shared/logger"
	"demopilot/internal/shared/utils"
)

type SubscriptionHandler struct {
	getSubscriptionUC     *usecases.GetSubscriptionUseCase
	requestCancellationUC *usecases.RequestCancellationUseCase
	logger                logger.Interface
}

func NewSubscriptionHandler(
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	requestCancellationUC *usecases.RequestCancellationUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubscriptionUC:     getSubscriptionUC,
		requestCancellationUC: requestCancellationUC,
		logger:                logger.NewLogger(),
	}
}

// GetMySubscription serves the caller's subscription, including the derived
// effective plan and status. The default free row is created on first read.
func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", sub)
}

// CancelMySubscription records the caller's intent to cancel at period end
// and returns the updated subscription. Paid access continues until the
// current period expires.
func (h *SubscriptionHandler) CancelMySubscription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.requestCancellationUC.Execute(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "cancellation scheduled for period end", sub)
}
