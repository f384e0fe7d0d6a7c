package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/collegejournal/internal/entity"
	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	"anoa.com/collegejournal/internal/testutil"
	"anoa.com/collegejournal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, name string) (*gin.Engine, session.Store, *entity.User, *entity.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t, name)
	admin := &entity.User{Username: "chief", PasswordHash: "x", DisplayName: "Chief", Role: entity.RoleAdmin}
	writer := &entity.User{Username: "writer", PasswordHash: "x", DisplayName: "Writer", Role: entity.RoleRedacteur}
	require.NoError(t, db.Create([]*entity.User{admin, writer}).Error)

	sessions := session.NewMemoryStore(time.Hour)
	auth := NewAuthMiddleware(userRepo.NewUserRepository(db), sessions)

	router := gin.New()
	router.Use(auth.LoadSession())
	router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	router.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, sessions, admin, writer
}

func doRequest(router *gin.Engine, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router, sessions, _, writer := newAuthRouter(t, "mw_require_auth")

	require.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", "").Code)

	sid, err := sessions.Create(context.Background(), writer.ID)
	require.NoError(t, err)
	rec := doRequest(router, "/me", sid)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "writer")
}

func TestRequireAdmin(t *testing.T) {
	router, sessions, admin, writer := newAuthRouter(t, "mw_require_admin")
	ctx := context.Background()

	require.Equal(t, http.StatusUnauthorized, doRequest(router, "/admin", "").Code)

	writerSid, err := sessions.Create(ctx, writer.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, doRequest(router, "/admin", writerSid).Code)

	adminSid, err := sessions.Create(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doRequest(router, "/admin", adminSid).Code)
}

func TestStaleSessionTreatedAsAnonymous(t *testing.T) {
	router, sessions, _, writer := newAuthRouter(t, "mw_stale_session")
	ctx := context.Background()

	sid, err := sessions.Create(ctx, writer.ID)
	require.NoError(t, err)
	require.NoError(t, sessions.Destroy(ctx, sid))

	require.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", sid).Code)
}
