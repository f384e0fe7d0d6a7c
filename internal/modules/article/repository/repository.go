package repository

import (
	"context"
	"strings"

	"anoa.com/collegejournal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query narrows FindAll. Zero values mean "no filter".
type Query struct {
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	Status     string
	Limit      int
}

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Article, error)
	FindAll(ctx context.Context, q Query) ([]*entity.Article, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	ReplaceTags(ctx context.Context, article *entity.Article, tags []entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string, publishedOnly bool, limit int) ([]*entity.Article, error)
	CountPublishedByAuthor(ctx context.Context) (map[uuid.UUID]int64, error)
	CountPublishedByCategory(ctx context.Context) (map[uuid.UUID]int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags")
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var article entity.Article
	if err := r.preloaded(ctx).First(&article, "articles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	var article entity.Article
	if err := r.preloaded(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindAll(ctx context.Context, q Query) ([]*entity.Article, error) {
	var articles []*entity.Article

	query := r.preloaded(ctx)
	if q.AuthorID != nil {
		query = query.Where("author_id = ?", q.AuthorID)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	query = query.Order("updated_at DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindByIDs returns the matching articles in the order the ids were given,
// which lets search results keep their ranking.
func (r *articleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Article, error) {
	if len(ids) == 0 {
		return []*entity.Article{}, nil
	}

	var articles []*entity.Article
	if err := r.preloaded(ctx).Where("articles.id IN ?", ids).Find(&articles).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	ordered := make([]*entity.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

func (r *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Omit("Tags", "Author", "Category").Save(article).Error
}

// ReplaceTags swaps the article's tag set through the join table.
func (r *articleRepository) ReplaceTags(ctx context.Context, article *entity.Article, tags []entity.Tag) error {
	return r.db.WithContext(ctx).Model(article).Association("Tags").Replace(tags)
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&entity.Article{ID: id}).Error
}

// Search is the database fallback when Meilisearch is not configured.
// Kept portable across Postgres and SQLite, hence LOWER + LIKE.
func (r *articleRepository) Search(ctx context.Context, term string, publishedOnly bool, limit int) ([]*entity.Article, error) {
	var articles []*entity.Article

	pattern := "%" + strings.ToLower(term) + "%"
	query := r.preloaded(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", pattern, pattern, pattern)

	if publishedOnly {
		query = query.Where("status = ?", entity.StatusPublished)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("updated_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

type authorCount struct {
	AuthorID uuid.UUID
	N        int64
}

func (r *articleRepository) CountPublishedByAuthor(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []authorCount
	err := r.db.WithContext(ctx).
		Model(&entity.Article{}).
		Select("author_id, COUNT(*) AS n").
		Where("status = ?", entity.StatusPublished).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.AuthorID] = row.N
	}
	return counts, nil
}

type categoryCount struct {
	CategoryID uuid.UUID
	N          int64
}

func (r *articleRepository) CountPublishedByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []categoryCount
	err := r.db.WithContext(ctx).
		Model(&entity.Article{}).
		Select("category_id, COUNT(*) AS n").
		Where("status = ? AND category_id IS NOT NULL", entity.StatusPublished).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}
	return counts, nil
}
