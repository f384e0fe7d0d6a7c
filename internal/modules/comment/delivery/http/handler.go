package http

import (
	"fmt"
	"net/http"

	"anoa.com/collegejournal/internal/middleware"
	"anoa.com/collegejournal/internal/modules/comment/dto"
	"anoa.com/collegejournal/internal/modules/comment/service"
	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

func (h *CommentHandler) ListByArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("articleId"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput))
		return
	}

	comments, err := h.service.GetByArticle(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	author, _ := middleware.CurrentUser(c)
	comment, err := h.service.Create(c.Request.Context(), author, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid comment id: %w", apperror.ErrInvalidInput))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
