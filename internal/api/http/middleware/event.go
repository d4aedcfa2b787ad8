package middleware

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/model"
)

const confirmHeader = "X-Confirm"

// Event runs one UI event at a time and gives each its own event context.
type Event struct {
	mu      sync.Mutex
	manager model.ContextManager
}

// NewEvent creates a new Event middleware.
func NewEvent(manager model.ContextManager) *Event {
	return &Event{manager: manager}
}

// Handle serialises requests and attaches the confirmation answer taken from
// the confirm query parameter or the X-Confirm header.
func (e *Event) Handle(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := e.manager.NewEventContext(c.Request.Context(), confirmed(c))
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}

func confirmed(c *gin.Context) bool {
	v := c.Query("confirm")
	if v == "" {
		v = c.GetHeader(confirmHeader)
	}
	ok, err := strconv.ParseBool(v)
	return err == nil && ok
}
