package service

import (
	"context"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/comment/dto"
	commentRepo "anoa.com/collegejournal/internal/modules/comment/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentFixture struct {
	db      *gorm.DB
	service CommentService
	author  *entity.User
	article *entity.Article
}

func newCommentFixture(t *testing.T, name string) *commentFixture {
	t.Helper()
	db := testutil.NewTestDB(t, name)

	author := &entity.User{Username: "writer", PasswordHash: "x", DisplayName: "Writer", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create(author).Error)

	article := &entity.Article{
		Title:    "Commented article",
		Slug:     "commented-article",
		Content:  "Body",
		AuthorID: author.ID,
		Status:   entity.StatusPublished,
	}
	require.NoError(t, db.Create(article).Error)

	svc := NewCommentService(
		commentRepo.NewCommentRepository(db),
		articleRepo.NewArticleRepository(db),
	)

	return &commentFixture{db: db, service: svc, author: author, article: article}
}

func TestCreateCommentIsAlwaysApproved(t *testing.T) {
	f := newCommentFixture(t, "comment_create")

	created, err := f.service.Create(context.Background(), f.author, dto.CreateCommentRequest{
		ArticleID: f.article.ID.String(),
		Content:   "  <script>alert(1)</script>Nice article!  ",
	})
	require.NoError(t, err)
	require.True(t, created.IsApproved)
	require.Equal(t, "Nice article!", created.Content)
	require.Nil(t, created.ParentID)
}

func TestCreateCommentUnknownArticle(t *testing.T) {
	f := newCommentFixture(t, "comment_no_article")

	_, err := f.service.Create(context.Background(), f.author, dto.CreateCommentRequest{
		ArticleID: uuid.NewString(),
		Content:   "hello",
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetByArticleBuildsOneLevelTree(t *testing.T) {
	f := newCommentFixture(t, "comment_tree")
	ctx := context.Background()

	root, err := f.service.Create(ctx, f.author, dto.CreateCommentRequest{
		ArticleID: f.article.ID.String(),
		Content:   "root comment",
	})
	require.NoError(t, err)

	reply, err := f.service.Create(ctx, f.author, dto.CreateCommentRequest{
		ArticleID: f.article.ID.String(),
		ParentID:  root.ID.String(),
		Content:   "first reply",
	})
	require.NoError(t, err)

	// A reply to a reply points at a non-root parent and is not materialized.
	_, err = f.service.Create(ctx, f.author, dto.CreateCommentRequest{
		ArticleID: f.article.ID.String(),
		ParentID:  reply.ID.String(),
		Content:   "reply to the reply",
	})
	require.NoError(t, err)

	tree, err := f.service.GetByArticle(ctx, f.article.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, "root comment", tree[0].Content)
	require.Len(t, tree[0].Replies, 1)
	require.Equal(t, "first reply", tree[0].Replies[0].Content)
	require.Empty(t, tree[0].Replies[0].Replies)
}

func TestGetByArticleSkipsUnapproved(t *testing.T) {
	f := newCommentFixture(t, "comment_unapproved")
	ctx := context.Background()

	hidden := &entity.Comment{
		ArticleID: f.article.ID,
		AuthorID:  f.author.ID,
		Content:   "held back",
	}
	require.NoError(t, f.db.Create(hidden).Error)
	// The column defaults to true, so flip it after the insert.
	require.NoError(t, f.db.Model(hidden).Update("is_approved", false).Error)

	tree, err := f.service.GetByArticle(ctx, f.article.ID)
	require.NoError(t, err)
	require.Empty(t, tree)
}

func TestDeleteComment(t *testing.T) {
	f := newCommentFixture(t, "comment_delete")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, dto.CreateCommentRequest{
		ArticleID: f.article.ID.String(),
		Content:   "to be removed",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))
	require.ErrorIs(t, f.service.Delete(ctx, created.ID), apperror.ErrNotFound)
}
