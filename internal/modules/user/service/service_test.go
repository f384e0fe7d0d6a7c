package service

import (
	"context"
	"testing"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/user/dto"
	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/apperror"
	"anoa.com/collegejournal/pkg/session"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, name string) (UserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t, name)
	return NewUserService(userRepo.NewUserRepository(db), articleRepo.NewArticleRepository(db)), db
}

func TestCreateUserDefaultsAndDuplicate(t *testing.T) {
	svc, _ := newUserService(t, "user_create")
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret1",
		DisplayName: "Marie Dupont",
	})
	require.NoError(t, err)
	require.Equal(t, entity.RoleRedacteur, created.Role)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret2",
		DisplayName: "Someone Else",
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestPublicUsersCountPublishedOnly(t *testing.T) {
	svc, db := newUserService(t, "user_public")
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret1",
		DisplayName: "Marie Dupont",
	})
	require.NoError(t, err)

	articles := []*entity.Article{
		{Title: "Pub", Slug: "pub", Content: "Body", AuthorID: created.ID, Status: entity.StatusPublished},
		{Title: "Draft", Slug: "draft", Content: "Body", AuthorID: created.ID, Status: entity.StatusDraft},
	}
	require.NoError(t, db.Create(articles).Error)

	public, err := svc.GetPublicUsers(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.EqualValues(t, 1, public[0].ArticleCount)

	profile, err := svc.GetUserByUsername(ctx, "marie")
	require.NoError(t, err)
	require.EqualValues(t, 1, profile.ArticleCount)

	_, err = svc.GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateUserRole(t *testing.T) {
	svc, _ := newUserService(t, "user_role")
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret1",
		DisplayName: "Marie Dupont",
	})
	require.NoError(t, err)

	promoted, err := svc.UpdateUserRole(ctx, created.ID, entity.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, promoted.Role)

	_, err = svc.UpdateUserRole(ctx, created.ID, "editor-in-chief")
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	svc, db := newUserService(t, "user_delete")
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret1",
		DisplayName: "Marie Dupont",
	})
	require.NoError(t, err)

	var actor entity.User
	require.NoError(t, db.First(&actor, "id = ?", created.ID).Error)

	err = svc.DeleteUser(ctx, &actor, actor.ID)
	require.ErrorIs(t, err, apperror.ErrBadRequest)

	other, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "paul",
		Password:    "secret1",
		DisplayName: "Paul",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, &actor, other.ID))
	_, err = svc.GetUserByUsername(ctx, "paul")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLogin(t *testing.T) {
	db := testutil.NewTestDB(t, "user_login")
	users := userRepo.NewUserRepository(db)
	articles := articleRepo.NewArticleRepository(db)
	sessions := session.NewMemoryStore(session.DefaultTTL)

	userSvc := NewUserService(users, articles)
	authSvc := NewAuthService(users, sessions)
	ctx := context.Background()

	created, err := userSvc.CreateUser(ctx, dto.CreateUserRequest{
		Username:    "marie",
		Password:    "secret1",
		DisplayName: "Marie Dupont",
	})
	require.NoError(t, err)

	user, sid, err := authSvc.Login(ctx, "marie", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	require.Equal(t, created.ID, user.ID)

	resolved, err := sessions.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, created.ID, resolved)

	_, _, err = authSvc.Login(ctx, "marie", "wrong")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, _, err = authSvc.Login(ctx, "ghost", "secret1")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	require.NoError(t, authSvc.Logout(ctx, sid))
	_, err = sessions.Get(ctx, sid)
	require.ErrorIs(t, err, session.ErrNotFound)
}
