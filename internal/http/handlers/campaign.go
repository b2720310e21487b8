package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openraise/fundbridge-backend/internal/data/repos/campaign"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/http/response"
	"github.com/openraise/fundbridge-backend/internal/pkg/ctxutil"
	"github.com/openraise/fundbridge-backend/internal/services"
)

type CampaignHandler struct {
	campaignService   services.CampaignService
	investmentService services.InvestmentService
	statsService      services.StatsService
}

func NewCampaignHandler(campaignService services.CampaignService, investmentService services.InvestmentService, statsService services.StatsService) *CampaignHandler {
	return &CampaignHandler{
		campaignService:   campaignService,
		investmentService: investmentService,
		statsService:      statsService,
	}
}

// POST /api/campaigns
func (ch *CampaignHandler) Create(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Title             string          `json:"title"`
		Description       string          `json:"description"`
		TargetAmount      decimal.Decimal `json:"target_amount"`
		MinimumInvestment decimal.Decimal `json:"minimum_investment"`
		EndDate           time.Time       `json:"end_date"`
		Category          string          `json:"category"`
		RiskLevel         string          `json:"risk_level"`
		ExpectedReturn    string          `json:"expected_return"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ch.campaignService.Create(c.Request.Context(), rd.UserID, services.CreateCampaignInput{
		Title:             req.Title,
		Description:       req.Description,
		TargetAmount:      req.TargetAmount,
		MinimumInvestment: req.MinimumInvestment,
		EndDate:           req.EndDate,
		Category:          req.Category,
		RiskLevel:         req.RiskLevel,
		ExpectedReturn:    req.ExpectedReturn,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campaign": created})
}

// GET /api/campaigns?category=&risk_level=&limit=
func (ch *CampaignHandler) List(c *gin.Context) {
	filter := campaign.ListFilter{
		Category:  c.Query("category"),
		RiskLevel: c.Query("risk_level"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		filter.Limit = limit
	}
	campaigns, err := ch.campaignService.ListActive(c.Request.Context(), filter)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaigns": campaigns})
}

// GET /api/campaigns/:id
func (ch *CampaignHandler) Get(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_campaign_id", err)
		return
	}
	found, err := ch.campaignService.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaign": found})
}

// GET /api/campaigns/:id/stats
func (ch *CampaignHandler) Stats(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_campaign_id", err)
		return
	}
	stats, err := ch.statsService.CampaignStats(c.Request.Context(), campaignID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/campaigns/:id/investments
func (ch *CampaignHandler) Investments(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_campaign_id", err)
		return
	}
	investments, err := ch.investmentService.ListByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"investments": investments})
}

// PATCH /api/campaigns/:id/status
func (ch *CampaignHandler) UpdateStatus(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_campaign_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	updated, err := ch.campaignService.UpdateStatus(c.Request.Context(), rd.UserID, campaignID, types.CampaignStatus(req.Status))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"campaign": updated})
}
