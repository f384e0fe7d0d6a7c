package http

import (
	"fmt"
	"net/http"
	"time"

	"anoa.com/collegejournal/internal/middleware"
	"anoa.com/collegejournal/internal/modules/user/dto"
	"anoa.com/collegejournal/internal/modules/user/service"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/response"
	"anoa.com/collegejournal/pkg/session"
	"anoa.com/collegejournal/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service    service.AuthService
	sessionTTL time.Duration
}

func NewAuthHandler(svc service.AuthService, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = session.DefaultTTL
	}
	return &AuthHandler{service: svc, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%s: %w", validator.FormatBindingError(err), apperror.ErrInvalidInput))
		return
	}

	user, sid, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sid, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sid, err := c.Cookie(session.CookieName)
	if err == nil && sid != "" {
		if err := h.service.Logout(c.Request.Context(), sid); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	response.Success(c)
}

// Me returns the authenticated user behind the session cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, fmt.Errorf("authentication required: %w", apperror.ErrUnauthorized))
		return
	}
	c.JSON(http.StatusOK, pkgdto.NewUserResponse(*user))
}
