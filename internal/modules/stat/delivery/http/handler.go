package http

import (
	"net/http"

	"anoa.com/collegejournal/internal/middleware"
	"anoa.com/collegejournal/internal/modules/stat/service"
	"anoa.com/collegejournal/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	service service.StatService
}

func NewStatHandler(svc service.StatService) *StatHandler {
	return &StatHandler{service: svc}
}

func (h *StatHandler) Dashboard(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	stats, err := h.service.DashboardStats(c.Request.Context(), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
