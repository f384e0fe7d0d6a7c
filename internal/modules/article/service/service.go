package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/collegejournal/internal/entity"
	"anoa.com/collegejournal/internal/modules/article/dto"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	categoryRepo "anoa.com/collegejournal/internal/modules/category/repository"
	search "anoa.com/collegejournal/internal/modules/search/service"
	tagRepo "anoa.com/collegejournal/internal/modules/tag/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 20
	recentLimit        = 10
)

type ArticleService interface {
	List(ctx context.Context, viewer *entity.User, q dto.ListArticlesQuery) ([]pkgdto.ArticleResponse, error)
	ListAll(ctx context.Context, status string) ([]pkgdto.ArticleResponse, error)
	Recent(ctx context.Context, viewer *entity.User) ([]pkgdto.ArticleResponse, error)
	Search(ctx context.Context, term string, limit int) ([]pkgdto.ArticleResponse, error)
	GetBySlug(ctx context.Context, viewer *entity.User, slug string) (*pkgdto.ArticleResponse, error)
	GetByID(ctx context.Context, viewer *entity.User, id uuid.UUID) (*pkgdto.ArticleResponse, error)
	Create(ctx context.Context, author *entity.User, req dto.CreateArticleRequest) (*pkgdto.ArticleResponse, error)
	Update(ctx context.Context, viewer *entity.User, id uuid.UUID, req dto.UpdateArticleRequest) (*pkgdto.ArticleResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*pkgdto.ArticleResponse, error)
	Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error
}

type articleService struct {
	articleRepo  articleRepo.ArticleRepository
	categoryRepo categoryRepo.CategoryRepository
	tagRepo      tagRepo.TagRepository
	search       search.SearchService
}

// NewArticleService wires the publication workflow. search may be nil when no
// Meilisearch instance is configured; lookups then fall back to the database.
func NewArticleService(
	articles articleRepo.ArticleRepository,
	categories categoryRepo.CategoryRepository,
	tags tagRepo.TagRepository,
	searchSvc search.SearchService,
) ArticleService {
	return &articleService{
		articleRepo:  articles,
		categoryRepo: categories,
		tagRepo:      tags,
		search:       searchSvc,
	}
}

func (s *articleService) List(ctx context.Context, viewer *entity.User, q dto.ListArticlesQuery) ([]pkgdto.ArticleResponse, error) {
	query := articleRepo.Query{
		Status: q.Status,
		Limit:  q.Limit,
	}

	// Anonymous readers only ever see published content, whatever they ask for.
	if viewer == nil {
		query.Status = entity.StatusPublished
	}

	if q.AuthorID != "" {
		id, err := uuid.Parse(q.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("invalid author id: %w", apperror.ErrInvalidInput)
		}
		query.AuthorID = &id
	}
	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", apperror.ErrInvalidInput)
		}
		query.CategoryID = &id
	}

	articles, err := s.articleRepo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return toResponses(articles), nil
}

func (s *articleService) ListAll(ctx context.Context, status string) ([]pkgdto.ArticleResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q: %w", status, apperror.ErrInvalidInput)
	}

	articles, err := s.articleRepo.FindAll(ctx, articleRepo.Query{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return toResponses(articles), nil
}

func (s *articleService) Recent(ctx context.Context, viewer *entity.User) ([]pkgdto.ArticleResponse, error) {
	query := articleRepo.Query{Limit: recentLimit}
	if !viewer.IsAdmin() {
		query.AuthorID = &viewer.ID
	}

	articles, err := s.articleRepo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent articles: %w", err)
	}
	return toResponses(articles), nil
}

func (s *articleService) Search(ctx context.Context, term string, limit int) ([]pkgdto.ArticleResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.search != nil {
		ids, err := s.search.SearchArticles(term, limit)
		if err == nil {
			articles, ferr := s.articleRepo.FindByIDs(ctx, ids)
			if ferr != nil {
				return nil, fmt.Errorf("failed to load search results: %w", ferr)
			}
			return toResponses(publishedOnly(articles)), nil
		}
		zap.L().Warn("search index unavailable, falling back to database", zap.Error(err))
	}

	articles, err := s.articleRepo.Search(ctx, term, true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	return toResponses(articles), nil
}

func (s *articleService) GetBySlug(ctx context.Context, viewer *entity.User, slug string) (*pkgdto.ArticleResponse, error) {
	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %q: %w", slug, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	// Unpublished work must not leak its existence to anonymous readers.
	if article.Status != entity.StatusPublished && viewer == nil {
		return nil, fmt.Errorf("article %q: %w", slug, apperror.ErrNotFound)
	}

	resp := pkgdto.NewArticleResponse(*article)
	return &resp, nil
}

func (s *articleService) GetByID(ctx context.Context, viewer *entity.User, id uuid.UUID) (*pkgdto.ArticleResponse, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAdmin() && article.AuthorID != viewer.ID {
		return nil, fmt.Errorf("article belongs to another author: %w", apperror.ErrForbidden)
	}

	resp := pkgdto.NewArticleResponse(*article)
	return &resp, nil
}

func (s *articleService) Create(ctx context.Context, author *entity.User, req dto.CreateArticleRequest) (*pkgdto.ArticleResponse, error) {
	if err := s.ensureSlugFree(ctx, req.Slug); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.StatusDraft
	}

	content := sanitize.HTML(req.Content)

	article := &entity.Article{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       content,
		CoverImageURL: req.CoverImageURL,
		AuthorID:      author.ID,
		CategoryID:    categoryID,
		Status:        status,
		ReadTime:      computeReadTime(content),
	}
	if status == entity.StatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	if len(tags) > 0 {
		if err := s.articleRepo.ReplaceTags(ctx, article, tags); err != nil {
			return nil, fmt.Errorf("failed to attach tags: %w", err)
		}
	}

	created, err := s.findArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	s.syncIndex(created)

	resp := pkgdto.NewArticleResponse(*created)
	return &resp, nil
}

func (s *articleService) Update(ctx context.Context, viewer *entity.User, id uuid.UUID, req dto.UpdateArticleRequest) (*pkgdto.ArticleResponse, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAdmin() && article.AuthorID != viewer.ID {
		return nil, fmt.Errorf("article belongs to another author: %w", apperror.ErrForbidden)
	}

	if req.Slug != nil && *req.Slug != article.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug); err != nil {
			return nil, err
		}
		article.Slug = *req.Slug
	}
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		article.Content = sanitize.HTML(*req.Content)
		article.ReadTime = computeReadTime(article.Content)
	}
	if req.CoverImageURL != nil {
		article.CoverImageURL = *req.CoverImageURL
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		article.CategoryID = categoryID
	}
	if req.Status != nil {
		// Plain edits may move the workflow state but never stamp the
		// publication time; that belongs to the status endpoint.
		article.Status = *req.Status
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.articleRepo.ReplaceTags(ctx, article, tags); err != nil {
			return nil, fmt.Errorf("failed to replace tags: %w", err)
		}
	}

	updated, err := s.findArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	s.syncIndex(updated)

	resp := pkgdto.NewArticleResponse(*updated)
	return &resp, nil
}

func (s *articleService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*pkgdto.ArticleResponse, error) {
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q: %w", status, apperror.ErrInvalidInput)
	}

	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	article.Status = status
	if status == entity.StatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update article status: %w", err)
	}

	updated, err := s.findArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	s.syncIndex(updated)

	resp := pkgdto.NewArticleResponse(*updated)
	return &resp, nil
}

func (s *articleService) Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return err
	}

	if !viewer.IsAdmin() && article.AuthorID != viewer.ID {
		return fmt.Errorf("article belongs to another author: %w", apperror.ErrForbidden)
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if s.search != nil {
		if err := s.search.DeleteArticle(id.String()); err != nil {
			zap.L().Warn("failed to remove article from search index",
				zap.String("article_id", id.String()), zap.Error(err))
		}
	}
	return nil
}
