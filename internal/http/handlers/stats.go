package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openraise/fundbridge-backend/internal/http/response"
	"github.com/openraise/fundbridge-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GET /api/stats
func (sh *StatsHandler) Global(c *gin.Context) {
	stats, err := sh.statsService.GlobalStats(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}
