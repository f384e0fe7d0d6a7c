package http

import (
	"fmt"
	"net/http"

	"anoa.com/collegejournal/internal/modules/tag/dto"
	"anoa.com/collegejournal/internal/modules/tag/service"
	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TagHandler struct {
	service service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{service: svc}
}

func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	tag, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid tag id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
