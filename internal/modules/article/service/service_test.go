package service

import (
	"context"
	"strings"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	"anoa.com/collegejournal/internal/modules/article/dto"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	categoryRepo "anoa.com/collegejournal/internal/modules/category/repository"
	tagRepo "anoa.com/collegejournal/internal/modules/tag/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/apperror"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type articleFixture struct {
	db      *gorm.DB
	service ArticleService
	admin   *entity.User
	author  *entity.User
	other   *entity.User
	cat     *entity.Category
	tags    []*entity.Tag
}

func newArticleFixture(t *testing.T, name string) *articleFixture {
	t.Helper()
	db := testutil.NewTestDB(t, name)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &entity.User{Username: "chief", PasswordHash: string(hash), DisplayName: "Chief", Role: entity.RoleAdmin}
	author := &entity.User{Username: "writer", PasswordHash: string(hash), DisplayName: "Writer", Role: entity.RoleRedacteur}
	other := &entity.User{Username: "other", PasswordHash: string(hash), DisplayName: "Other", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create([]*entity.User{admin, author, other}).Error)

	cat := &entity.Category{Name: "News", Slug: "news"}
	require.NoError(t, db.Create(cat).Error)

	tags := []*entity.Tag{
		{Name: "Interview", Slug: "interview"},
		{Name: "Event", Slug: "event"},
	}
	require.NoError(t, db.Create(tags).Error)

	svc := NewArticleService(
		articleRepo.NewArticleRepository(db),
		categoryRepo.NewCategoryRepository(db),
		tagRepo.NewTagRepository(db),
		nil,
	)

	return &articleFixture{db: db, service: svc, admin: admin, author: author, other: other, cat: cat, tags: tags}
}

func (f *articleFixture) createRequest() dto.CreateArticleRequest {
	return dto.CreateArticleRequest{
		Title:      "A title long enough",
		Slug:       "a-title-long-enough",
		Excerpt:    "Short summary.",
		Content:    strings.Repeat("Words in the body of the article. ", 5),
		CategoryID: f.cat.ID.String(),
	}
}

func TestCreateArticleDefaultsToDraft(t *testing.T) {
	f := newArticleFixture(t, "article_create_draft")
	ctx := context.Background()

	req := f.createRequest()
	req.TagIDs = []string{f.tags[0].ID.String(), f.tags[1].ID.String()}

	created, err := f.service.Create(ctx, f.author, req)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, created.Status)
	require.Nil(t, created.PublishedAt)
	require.Len(t, created.Tags, 2)
	require.Equal(t, f.author.ID, created.AuthorID)
	require.GreaterOrEqual(t, created.ReadTime, 1)
	require.NotNil(t, created.Category)
	require.Equal(t, "news", created.Category.Slug)
}

func TestCreateArticlePublishedStampsPublishedAt(t *testing.T) {
	f := newArticleFixture(t, "article_create_published")

	req := f.createRequest()
	req.Status = entity.StatusPublished

	created, err := f.service.Create(context.Background(), f.author, req)
	require.NoError(t, err)
	require.Equal(t, entity.StatusPublished, created.Status)
	require.NotNil(t, created.PublishedAt)
}

func TestCreateArticleDuplicateSlug(t *testing.T) {
	f := newArticleFixture(t, "article_dup_slug")
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	_, err = f.service.Create(ctx, f.author, f.createRequest())
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateArticleUnknownCategory(t *testing.T) {
	f := newArticleFixture(t, "article_bad_category")

	req := f.createRequest()
	req.CategoryID = "0195fbd8-0000-7000-8000-000000000000"

	_, err := f.service.Create(context.Background(), f.author, req)
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestStatusEndpointStampsOnlyFirstPublish(t *testing.T) {
	f := newArticleFixture(t, "article_status_stamp")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	published, err := f.service.UpdateStatus(ctx, created.ID, entity.StatusPublished)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	// Back to draft and publish again: the original timestamp must survive.
	_, err = f.service.UpdateStatus(ctx, created.ID, entity.StatusDraft)
	require.NoError(t, err)

	republished, err := f.service.UpdateStatus(ctx, created.ID, entity.StatusPublished)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	require.True(t, republished.PublishedAt.Equal(first))
}

func TestPlainUpdateNeverStampsPublishedAt(t *testing.T) {
	f := newArticleFixture(t, "article_update_no_stamp")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	status := entity.StatusPublished
	updated, err := f.service.Update(ctx, f.author, created.ID, dto.UpdateArticleRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, entity.StatusPublished, updated.Status)
	require.Nil(t, updated.PublishedAt)
}

func TestUpdateRecomputesReadTime(t *testing.T) {
	f := newArticleFixture(t, "article_readtime")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)
	require.Equal(t, 1, created.ReadTime)

	long := strings.Repeat("word ", 450)
	updated, err := f.service.Update(ctx, f.author, created.ID, dto.UpdateArticleRequest{Content: &long})
	require.NoError(t, err)
	require.Equal(t, 3, updated.ReadTime)
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	f := newArticleFixture(t, "article_update_forbidden")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	title := "Another title entirely"
	_, err = f.service.Update(ctx, f.other, created.ID, dto.UpdateArticleRequest{Title: &title})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	// Admin passes the same gate.
	_, err = f.service.Update(ctx, f.admin, created.ID, dto.UpdateArticleRequest{Title: &title})
	require.NoError(t, err)
}

func TestListAnonymousForcedToPublished(t *testing.T) {
	f := newArticleFixture(t, "article_list_anon")
	ctx := context.Background()

	draft := f.createRequest()
	_, err := f.service.Create(ctx, f.author, draft)
	require.NoError(t, err)

	pub := f.createRequest()
	pub.Slug = "published-piece"
	pub.Status = entity.StatusPublished
	_, err = f.service.Create(ctx, f.author, pub)
	require.NoError(t, err)

	// Asking for drafts anonymously still yields only published articles.
	articles, err := f.service.List(ctx, nil, dto.ListArticlesQuery{Status: entity.StatusDraft})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "published-piece", articles[0].Slug)

	// The author sees their draft when asking for it.
	articles, err = f.service.List(ctx, f.author, dto.ListArticlesQuery{Status: entity.StatusDraft})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, entity.StatusDraft, articles[0].Status)
}

func TestGetBySlugHidesUnpublishedFromAnonymous(t *testing.T) {
	f := newArticleFixture(t, "article_by_slug")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	_, err = f.service.GetBySlug(ctx, nil, created.Slug)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := f.service.GetBySlug(ctx, f.other, created.Slug)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestGetByIDRestrictedToOwnerOrAdmin(t *testing.T) {
	f := newArticleFixture(t, "article_by_id")
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.author, f.createRequest())
	require.NoError(t, err)

	_, err = f.service.GetByID(ctx, f.other, created.ID)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	got, err := f.service.GetByID(ctx, f.admin, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestRecentScopedToAuthor(t *testing.T) {
	f := newArticleFixture(t, "article_recent")
	ctx := context.Background()

	mine := f.createRequest()
	_, err := f.service.Create(ctx, f.author, mine)
	require.NoError(t, err)

	theirs := f.createRequest()
	theirs.Slug = "someone-elses"
	_, err = f.service.Create(ctx, f.other, theirs)
	require.NoError(t, err)

	recent, err := f.service.Recent(ctx, f.author)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, f.author.ID, recent[0].AuthorID)

	recent, err = f.service.Recent(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, recent, 2)
}

func TestSearchFallbackPublishedOnly(t *testing.T) {
	f := newArticleFixture(t, "article_search")
	ctx := context.Background()

	draft := f.createRequest()
	draft.Title = "Volcano eruption coverage"
	draft.Slug = "volcano-draft"
	_, err := f.service.Create(ctx, f.author, draft)
	require.NoError(t, err)

	pub := f.createRequest()
	pub.Title = "Volcano field trip report"
	pub.Slug = "volcano-published"
	pub.Status = entity.StatusPublished
	_, err = f.service.Create(ctx, f.author, pub)
	require.NoError(t, err)

	results, err := f.service.Search(ctx, "volcano", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "volcano-published", results[0].Slug)
}

func TestDeleteRemovesArticle(t *testing.T) {
	f := newArticleFixture(t, "article_delete")
	ctx := context.Background()

	req := f.createRequest()
	req.TagIDs = []string{f.tags[0].ID.String()}
	created, err := f.service.Create(ctx, f.author, req)
	require.NoError(t, err)

	require.ErrorIs(t, f.service.Delete(ctx, f.other, created.ID), apperror.ErrForbidden)
	require.NoError(t, f.service.Delete(ctx, f.author, created.ID))

	_, err = f.service.GetByID(ctx, f.admin, created.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestComputeReadTime(t *testing.T) {
	require.Equal(t, 1, computeReadTime(""))
	require.Equal(t, 1, computeReadTime("just a few words"))
	require.Equal(t, 1, computeReadTime(strings.Repeat("word ", 200)))
	require.Equal(t, 2, computeReadTime(strings.Repeat("word ", 201)))
	require.Equal(t, 5, computeReadTime(strings.Repeat("word ", 1000)))
}
