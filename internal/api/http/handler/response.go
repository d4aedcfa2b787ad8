package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
)

// Response is the envelope of every API response. It carries the notices,
// frames and confirmation prompts raised while handling the event.
type Response struct {
	Data   any               `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	model.EventState
}

// userResponse hides the stored password.
type userResponse struct {
	model.User
	Password string `json:"password,omitempty"`
}

func publicUser(u model.User) userResponse {
	return userResponse{User: u}
}

type base struct {
	events model.ContextManager
	logger *logger.Logger
}

func (b base) respond(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Data:       data,
		EventState: b.events.StateFromContext(c.Request.Context()),
	})
}

func (b base) ok(c *gin.Context, data any) {
	b.respond(c, http.StatusOK, data)
}

func (b base) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	res := handleError(err)
	c.JSON(res.status, Response{
		Error:      res.message,
		Fields:     res.fields,
		EventState: b.events.StateFromContext(c.Request.Context()),
	})
}

func (b base) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)

	c.JSON(http.StatusBadRequest, Response{
		Error:      "invalid request body",
		EventState: b.events.StateFromContext(c.Request.Context()),
	})
}
