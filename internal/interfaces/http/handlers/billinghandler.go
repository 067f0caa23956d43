package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"demopilot/internal/application/billing/usecases"
	vo "demopilot/internal/domain/subscription/valueobjects"
	"demopilot/internal/interfaces/http/middleware"
	"demopilot/internal/shared/logger"
	"demopilot/internal/shared/utils"
)

type BillingHandler struct {
	initiateCheckoutUC *usecases.InitiateCheckoutUseCase
	logger             logger.Interface
}

func NewBillingHandler(initiateCheckoutUC *usecases.InitiateCheckoutUseCase) *BillingHandler {
	return &BillingHandler{
		initiateCheckoutUC: initiateCheckoutUC,
		logger:             logger.NewLogger(),
	}
}

type InitiateCheckoutRequest struct {
	PlanType string `json:"plan_type" binding:"required,plantype"`
	PriceID  string `json:"price_id" binding:"omitempty"`
}

type InitiateCheckoutResponse struct {
	SessionURL string `json:"session_url"`
}

// InitiateCheckout exchanges a desired paid plan for a hosted payment page
// URL. The subscription record is untouched until the provider confirms
// payment through the webhook.
func (h *BillingHandler) InitiateCheckout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.initiateCheckoutUC.Execute(c.Request.Context(), usecases.InitiateCheckoutCommand{
		UserID:   userID,
		Email:    middleware.UserEmail(c),
		PlanType: vo.PlanType(req.PlanType),
		PriceRef: req.PriceID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", InitiateCheckoutResponse{
		SessionURL: result.SessionURL,
	})
}
