package service

import (
	"context"
	"fmt"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	statRepo "anoa.com/collegejournal/internal/modules/stat/repository"
	"anoa.com/collegejournal/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStatsData(t *testing.T, db *gorm.DB) (admin, author *entity.User) {
	t.Helper()

	admin = &entity.User{Username: "chief", PasswordHash: "x", DisplayName: "Chief", Role: entity.RoleAdmin}
	author = &entity.User{Username: "writer", PasswordHash: "x", DisplayName: "Writer", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create([]*entity.User{admin, author}).Error)

	mk := func(owner *entity.User, n int, status string) {
		for i := 0; i < n; i++ {
			a := &entity.Article{
				Title:    fmt.Sprintf("%s %s %d", owner.Username, status, i),
				Slug:     fmt.Sprintf("%s-%s-%d", owner.Username, status, i),
				Content:  "Body",
				AuthorID: owner.ID,
				Status:   status,
			}
			require.NoError(t, db.Create(a).Error)
		}
	}

	// Admin: 2 published, 1 pending. Author: 1 published, 1 draft, 1 pending.
	mk(admin, 2, entity.StatusPublished)
	mk(admin, 1, entity.StatusPending)
	mk(author, 1, entity.StatusPublished)
	mk(author, 1, entity.StatusDraft)
	mk(author, 1, entity.StatusPending)

	comment := &entity.Comment{ArticleID: mustFirstArticle(t, db), AuthorID: author.ID, Content: "hey", IsApproved: true}
	require.NoError(t, db.Create(comment).Error)

	return admin, author
}

func mustFirstArticle(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	var article entity.Article
	require.NoError(t, db.First(&article).Error)
	return article.ID
}

func TestDashboardStatsAsymmetry(t *testing.T) {
	db := testutil.NewTestDB(t, "stats_asymmetry")
	admin, author := seedStatsData(t, db)

	svc := NewStatService(statRepo.NewStatRepository(db))
	ctx := context.Background()

	adminStats, err := svc.DashboardStats(ctx, admin)
	require.NoError(t, err)
	require.EqualValues(t, 6, adminStats.TotalArticles)
	require.EqualValues(t, 3, adminStats.PublishedArticles)
	require.EqualValues(t, 2, adminStats.PendingReviews)
	require.EqualValues(t, 1, adminStats.TotalComments)
	require.EqualValues(t, 2, adminStats.TotalUsers)

	// Author totals are scoped to their own articles, but pending reviews,
	// comments and users stay global.
	authorStats, err := svc.DashboardStats(ctx, author)
	require.NoError(t, err)
	require.EqualValues(t, 3, authorStats.TotalArticles)
	require.EqualValues(t, 1, authorStats.PublishedArticles)
	require.EqualValues(t, 2, authorStats.PendingReviews)
	require.EqualValues(t, 1, authorStats.TotalComments)
	require.EqualValues(t, 2, authorStats.TotalUsers)
}
