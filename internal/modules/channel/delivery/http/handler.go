package http

import (
	"fmt"
	"net/http"

	"anoa.com/collegejournal/internal/middleware"
	"anoa.com/collegejournal/internal/modules/channel/dto"
	"anoa.com/collegejournal/internal/modules/channel/service"
	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChannelHandler struct {
	service service.ChannelService
}

func NewChannelHandler(svc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{service: svc}
}

func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *ChannelHandler) Create(c *gin.Context) {
	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	channel, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, channel)
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid channel id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}

func (h *ChannelHandler) ListMessages(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("channelId"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid channel id: %w", apperror.ErrInvalidInput))
		return
	}

	messages, err := h.service.GetMessages(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChannelHandler) CreateMessage(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	author, _ := middleware.CurrentUser(c)
	message, err := h.service.CreateMessage(c.Request.Context(), author, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *ChannelHandler) DeleteMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid message id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
