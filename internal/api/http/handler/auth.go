package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
)

// AuthService defines signup, login and session lookups.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	CurrentUser(ctx context.Context) (model.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
}

// LogoutService ends the session after confirmation.
type LogoutService interface {
	Logout(ctx context.Context) error
}

// Auth handles authentication endpoints.
type Auth struct {
	base
	authService   AuthService
	logoutService LogoutService
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logoutService LogoutService, events model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		base:          base{events: events, logger: logger},
		authService:   authService,
		logoutService: logoutService,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user,omitempty"`
}

// Signup registers a user and logs them in.
func (h *Auth) Signup(c *gin.Context) {
	var req model.SignupParams
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.logger.Info("Auth handler: signup rejected",
			"email", req.Email,
			"error", err.Error())
		h.fail(c, err)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"user_id", user.ID)
	h.ok(c, publicUser(user))
}

// Login starts a session.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, publicUser(user))
}

// Logout ends the session once the user confirms.
func (h *Auth) Logout(c *gin.Context) {
	if err := h.logoutService.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, nil)
}

// Session reports whether a session is active and who it belongs to.
func (h *Auth) Session(c *gin.Context) {
	ctx := c.Request.Context()

	authenticated, err := h.authService.IsAuthenticated(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	res := sessionResponse{Authenticated: authenticated}
	user, err := h.authService.CurrentUser(ctx)
	switch {
	case err == nil:
		u := publicUser(user)
		res.User = &u
	case !errors.Is(err, model.ErrUnauthenticated):
		h.fail(c, err)
		return
	}

	h.ok(c, res)
}
