package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openraise/fundbridge-backend/internal/http/response"
	"github.com/openraise/fundbridge-backend/internal/pkg/ctxutil"
	"github.com/openraise/fundbridge-backend/internal/services"
)

type InvestmentHandler struct {
	investmentService services.InvestmentService
}

func NewInvestmentHandler(investmentService services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// POST /api/investments
func (ih *InvestmentHandler) Create(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		CampaignID    uuid.UUID       `json:"campaign_id"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentID     string          `json:"payment_id"`
		PaymentMethod string          `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ih.investmentService.Create(c.Request.Context(), rd.UserID, services.CreateInvestmentInput{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		PaymentID:     req.PaymentID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"investment": created})
}

// GET /api/investments (own)
func (ih *InvestmentHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	investments, err := ih.investmentService.ListByUser(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"investments": investments})
}

// GET /api/investments/:id
func (ih *InvestmentHandler) Get(c *gin.Context) {
	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_investment_id", err)
		return
	}
	found, err := ih.investmentService.GetByID(c.Request.Context(), investmentID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"investment": found})
}
