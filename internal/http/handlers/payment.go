package handlers

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/http/response"
	"github.com/openraise/fundbridge-backend/internal/normalization"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
	"github.com/openraise/fundbridge-backend/internal/services"
)

// PaymentHandler terminates gateway callbacks. The payload is normalized
// before anything downstream sees it, so the rest of the pipeline deals
// with exactly one field casing.
type PaymentHandler struct {
	log            *logger.Logger
	fundingService services.FundingService
	callbackToken  string
}

func NewPaymentHandler(log *logger.Logger, fundingService services.FundingService, callbackToken string) *PaymentHandler {
	return &PaymentHandler{
		log:            log.With("handler", "PaymentHandler"),
		fundingService: fundingService,
		callbackToken:  callbackToken,
	}
}

// POST /api/payments/callback
func (ph *PaymentHandler) Callback(c *gin.Context) {
	if ph.callbackToken != "" {
		got := c.GetHeader("X-Callback-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(ph.callbackToken)) != 1 {
			response.RespondError(c, http.StatusUnauthorized, "invalid_callback_token", nil)
			return
		}
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_body", err)
		return
	}
	event, err := normalization.ParsePaymentEvent(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_callback_payload", err)
		return
	}

	outcome := types.PaymentStatus(event.Status)
	inv, err := ph.fundingService.ApplyOutcome(c.Request.Context(), event.PaymentID, outcome, event.TransactionHash)
	if err != nil {
		ph.log.Warn("Payment callback rejected", "payment_id", event.PaymentID, "status", event.Status, "error", err.Error())
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"investment": inv})
}
