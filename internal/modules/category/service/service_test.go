package service

import (
	"context"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/category/dto"
	categoryRepo "anoa.com/collegejournal/internal/modules/category/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/apperror"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(t *testing.T, name string) (CategoryService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t, name)
	return NewCategoryService(categoryRepo.NewCategoryRepository(db), articleRepo.NewArticleRepository(db)), db
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc, _ := newCategoryService(t, "category_dup")
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)
	require.Equal(t, "#3b82f6", created.Color)

	_, err = svc.Create(ctx, dto.CreateCategoryRequest{Name: "Sports", Slug: "sport"})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCategoryWithCountsPublishedOnly(t *testing.T) {
	svc, db := newCategoryService(t, "category_counts")
	ctx := context.Background()

	sport, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateCategoryRequest{Name: "Culture", Slug: "culture"})
	require.NoError(t, err)

	author := &entity.User{Username: "writer", PasswordHash: "x", DisplayName: "Writer", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create(author).Error)

	articles := []*entity.Article{
		{Title: "Match report", Slug: "match", Content: "Body", AuthorID: author.ID, CategoryID: &sport.ID, Status: entity.StatusPublished},
		{Title: "Upcoming match", Slug: "upcoming", Content: "Body", AuthorID: author.ID, CategoryID: &sport.ID, Status: entity.StatusDraft},
	}
	require.NoError(t, db.Create(articles).Error)

	withCounts, err := svc.GetAllWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, withCounts, 2)

	for _, c := range withCounts {
		switch c.Slug {
		case "sport":
			require.EqualValues(t, 1, c.ArticleCount)
		case "culture":
			require.EqualValues(t, 0, c.ArticleCount)
		}
	}
}

func TestCategoryBySlug(t *testing.T) {
	svc, _ := newCategoryService(t, "category_by_slug")
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)

	found, err := svc.GetBySlug(ctx, "sport")
	require.NoError(t, err)
	require.Equal(t, "Sport", found.Name)

	_, err = svc.GetBySlug(ctx, "missing")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCategoryOrphansArticles(t *testing.T) {
	svc, db := newCategoryService(t, "category_orphan")
	ctx := context.Background()

	sport, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)

	author := &entity.User{Username: "writer", PasswordHash: "x", DisplayName: "Writer", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create(author).Error)

	article := &entity.Article{
		Title: "Match report", Slug: "match", Content: "Body",
		AuthorID: author.ID, CategoryID: &sport.ID, Status: entity.StatusPublished,
	}
	require.NoError(t, db.Create(article).Error)

	require.NoError(t, svc.Delete(ctx, sport.ID))

	var reloaded entity.Article
	require.NoError(t, db.First(&reloaded, "id = ?", article.ID).Error)
	require.Nil(t, reloaded.CategoryID)
}
