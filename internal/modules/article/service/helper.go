package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"anoa.com/collegejournal/internal/entity"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const wordsPerMinute = 200

// computeReadTime estimates reading time in minutes from the plain-text word
// count, never less than one minute.
func computeReadTime(content string) int {
	words := len(strings.Fields(sanitize.Text(content)))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func toResponses(articles []*entity.Article) []pkgdto.ArticleResponse {
	out := make([]pkgdto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, pkgdto.NewArticleResponse(*a))
	}
	return out
}

func publishedOnly(articles []*entity.Article) []*entity.Article {
	out := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if a.Status == entity.StatusPublished {
			out = append(out, a)
		}
	}
	return out
}

func (s *articleService) findArticle(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	return article, nil
}

func (s *articleService) ensureSlugFree(ctx context.Context, slug string) error {
	_, err := s.articleRepo.FindBySlug(ctx, slug)
	if err == nil {
		return fmt.Errorf("slug %q already in use: %w", slug, apperror.ErrBadRequest)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	return nil
}

func (s *articleService) resolveCategory(ctx context.Context, raw string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s does not exist: %w", id, apperror.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &id, nil
}

func (s *articleService) resolveTags(ctx context.Context, rawIDs []string) ([]entity.Tag, error) {
	if len(rawIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q: %w", raw, apperror.ErrInvalidInput)
		}
		ids = append(ids, id)
	}

	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	if len(tags) != len(ids) {
		return nil, fmt.Errorf("one or more tags do not exist: %w", apperror.ErrBadRequest)
	}
	return tags, nil
}

// syncIndex mirrors the article's state into the search index. Indexing
// failures are logged, never surfaced; the database remains authoritative.
func (s *articleService) syncIndex(article *entity.Article) {
	if s.search == nil {
		return
	}

	var err error
	if article.Status == entity.StatusPublished {
		err = s.search.IndexArticle(article)
	} else {
		err = s.search.DeleteArticle(article.ID.String())
	}
	if err != nil {
		zap.L().Warn("failed to sync search index",
			zap.String("article_id", article.ID.String()), zap.Error(err))
	}
}
