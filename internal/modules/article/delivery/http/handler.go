package http

import (
	"fmt"
	"net/http"

	"anoa.com/collegejournal/internal/middleware"
	"anoa.com/collegejournal/internal/modules/article/dto"
	"anoa.com/collegejournal/internal/modules/article/service"
	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArticleHandler struct {
	service service.ArticleService
}

func NewArticleHandler(svc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

func (h *ArticleHandler) List(c *gin.Context) {
	var q dto.ListArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	articles, err := h.service.List(c.Request.Context(), viewer, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) ListAll(c *gin.Context) {
	articles, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) Recent(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	articles, err := h.service.Recent(c.Request.Context(), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) Search(c *gin.Context) {
	var q dto.SearchArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	articles, err := h.service.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	article, err := h.service.GetBySlug(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput))
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	article, err := h.service.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	author, _ := middleware.CurrentUser(c)
	article, err := h.service.Create(c.Request.Context(), author, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput))
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	article, err := h.service.Update(c.Request.Context(), viewer, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput))
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	article, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, fmt.Errorf("invalid article id: %w", apperror.ErrInvalidInput))
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Request.Context(), viewer, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
