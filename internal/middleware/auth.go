package middleware

import (
	"net/http"

	"anoa.com/collegejournal/internal/entity"
	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	"anoa.com/collegejournal/pkg/session"
	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	sessions session.Store
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, sessions session.Store) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// LoadSession resolves the session cookie into the authenticated user and
// stores it on the request context. It never aborts: anonymous requests pass
// through and the visibility rules downstream decide what they may see.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(session.CookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		userID, err := m.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			c.Next()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			// Session outlived the account; treat as anonymous.
			c.Next()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed on the context by
// LoadSession, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*entity.User)
	return user, ok
}
