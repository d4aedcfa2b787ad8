package handler

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// UserService defines roster, profile and notification operations.
type UserService interface {
	UserSummary(ctx context.Context) (view.Summary, error)
	LoadStudentsView(ctx context.Context) (view.Students, error)
	ViewStudentDetails(ctx context.Context, studentID string) (view.StudentDetails, error)
	PromoteToTeacher(ctx context.Context, studentID string) (model.User, error)
	ExportStudents(ctx context.Context) (string, []byte, error)
	SendMessage(ctx context.Context, recipientID, subject, content string) (model.Notification, error)
	UpdateProfile(ctx context.Context, form model.ProfileForm) (model.User, error)
	UploadProfilePicture(ctx context.Context, filename, contentType string, r io.Reader) (model.User, error)
	Media(ctx context.Context, key string) (io.ReadCloser, error)
	ShowNotifications(ctx context.Context) (view.Notifications, error)
	MarkAsRead(ctx context.Context, notificationID string) (view.Notifications, error)
	MarkAllAsRead(ctx context.Context) (view.Notifications, error)
	ClearAllNotifications(ctx context.Context) (view.Notifications, error)
}

// User handles user endpoints.
type User struct {
	base
	userService UserService
}

// NewUser creates a new User handler.
func NewUser(userService UserService, events model.ContextManager, logger *logger.Logger) *User {
	return &User{
		base:        base{events: events, logger: logger},
		userService: userService,
	}
}

type messageRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (h *User) Summary(c *gin.Context) {
	summary, err := h.userService.UserSummary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, summary)
}

func (h *User) Students(c *gin.Context) {
	students, err := h.userService.LoadStudentsView(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, students)
}

func (h *User) Student(c *gin.Context) {
	details, err := h.userService.ViewStudentDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, details)
}

// Promote makes a student a teacher once the admin confirms.
func (h *User) Promote(c *gin.Context) {
	studentID := c.Param("id")

	user, err := h.userService.PromoteToTeacher(c.Request.Context(), studentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("User handler: student promoted",
		"user_id", studentID)
	h.ok(c, publicUser(user))
}

// Export downloads the roster as CSV.
func (h *User) Export(c *gin.Context) {
	name, data, err := h.userService.ExportStudents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *User) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	notification, err := h.userService.SendMessage(c.Request.Context(), c.Param("id"), req.Subject, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, notification)
}

func (h *User) UpdateProfile(c *gin.Context) {
	var req model.ProfileForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, publicUser(user))
}

// UploadPicture takes the multipart "file" field as the new profile picture.
func (h *User) UploadPicture(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	defer file.Close()

	user, err := h.userService.UploadProfilePicture(c.Request.Context(),
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, publicUser(user))
}

// Media streams an uploaded object.
func (h *User) Media(c *gin.Context) {
	key := c.Param("key")

	rc, err := h.userService.Media(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

func (h *User) Notifications(c *gin.Context) {
	h.notifications(c, h.userService.ShowNotifications)
}

func (h *User) MarkRead(c *gin.Context) {
	id := c.Param("id")
	h.notifications(c, func(ctx context.Context) (view.Notifications, error) {
		return h.userService.MarkAsRead(ctx, id)
	})
}

func (h *User) MarkAllRead(c *gin.Context) {
	h.notifications(c, h.userService.MarkAllAsRead)
}

func (h *User) ClearNotifications(c *gin.Context) {
	h.notifications(c, h.userService.ClearAllNotifications)
}

func (h *User) notifications(c *gin.Context, fn func(ctx context.Context) (view.Notifications, error)) {
	v, err := fn(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, v)
}
