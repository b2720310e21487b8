package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openraise/fundbridge-backend/internal/http/response"
	"github.com/openraise/fundbridge-backend/internal/services"
)

type UserHandler struct {
	userService  services.UserService
	statsService services.StatsService
}

func NewUserHandler(userService services.UserService, statsService services.StatsService) *UserHandler {
	return &UserHandler{userService: userService, statsService: statsService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// GET /api/me/stats
func (uh *UserHandler) GetMyStats(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	stats, err := uh.statsService.UserStats(c.Request.Context(), me.ID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}
