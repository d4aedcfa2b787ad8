package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// MediaPrefix is the URL path object store media is served under.
const MediaPrefix = "/media/"

const (
	promotePrompt = "Are you sure you want to promote this student to teacher? This action cannot be undone."
	logoutPrompt  = "Are you sure you want to logout?"
)

// User renders the user-facing views and mutates user records through Auth.
type User struct {
	auth      *Auth
	quiz      *Quiz
	notifier  model.Notifier
	confirmer model.Confirmer
	renderer  model.Renderer
	publisher model.ActivityPublisher
	storage   model.Storage
	logger    *logger.Logger
	validate  *validator.Validate
	now       func() time.Time
	dashboard DashboardLoader
}

// NewUser creates the user manager. storage may be nil, in which case profile
// pictures are kept inline as data URLs.
func NewUser(
	auth *Auth,
	quiz *Quiz,
	notifier model.Notifier,
	confirmer model.Confirmer,
	renderer model.Renderer,
	publisher model.ActivityPublisher,
	storage model.Storage,
	logger *logger.Logger,
) *User {
	return &User{
		auth:      auth,
		quiz:      quiz,
		notifier:  notifier,
		confirmer: confirmer,
		renderer:  renderer,
		publisher: publisher,
		storage:   storage,
		logger:    logger,
		validate:  newValidator(),
		now:       time.Now,
	}
}

func (s *User) SetDashboardLoader(d DashboardLoader) {
	s.dashboard = d
}

// UserSummary returns the header and sidebar state of the acting user.
func (s *User) UserSummary(ctx context.Context) (view.Summary, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Summary{}, err
	}

	quizzes, err := s.quiz.QuizzesByUser(ctx, user.ID)
	if err != nil {
		return view.Summary{}, err
	}

	students := 0
	if user.CanAuthor() {
		list, err := s.auth.AllStudents(ctx)
		if err != nil {
			return view.Summary{}, err
		}
		students = len(list)
	}

	return view.NewSummary(user, len(quizzes), students), nil
}

// actingAuthor returns the acting user, refusing students with msg.
func (s *User) actingAuthor(ctx context.Context, msg string) (model.User, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	if !user.CanAuthor() {
		s.logger.Info("User service: access denied",
			"user_id", user.ID,
			"role", user.Role)
		toast(ctx, s.notifier, model.NoticeError, msg)
		return model.User{}, model.ErrForbidden
	}
	return user, nil
}

func (s *User) LoadStudentsView(ctx context.Context) (view.Students, error) {
	user, err := s.actingAuthor(ctx, "Access denied. This page is for teachers only.")
	if err != nil {
		return view.Students{}, err
	}

	students, err := s.auth.AllStudents(ctx)
	if err != nil {
		return view.Students{}, err
	}

	v := view.NewStudents(s.now(), students, user.Role == model.RoleAdmin)
	render(ctx, s.renderer, s.logger, s.now(), model.ViewStudents, model.SlotView, v)
	return v, nil
}

// PromoteToTeacher is limited to admins and asks for confirmation first.
func (s *User) PromoteToTeacher(ctx context.Context, studentID string) (model.User, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	if user.Role != model.RoleAdmin {
		toast(ctx, s.notifier, model.NoticeError, "Only administrators can promote students.")
		return model.User{}, model.ErrForbidden
	}

	if !s.confirmer.Confirm(ctx, promotePrompt) {
		return model.User{}, model.ErrNotConfirmed
	}

	promoted, err := s.auth.UpdateUserRole(ctx, studentID, model.RoleTeacher)
	if err != nil {
		return model.User{}, err
	}

	toast(ctx, s.notifier, model.NoticeSuccess, promoted.FirstName+" has been promoted to teacher")

	s.logger.Info("User service: student promoted",
		"admin_id", user.ID,
		"user_id", promoted.ID)

	if _, err := s.LoadStudentsView(ctx); err != nil {
		s.logger.Warn("User service: failed to refresh students view",
			"error", err.Error())
	}

	return promoted, nil
}

// SendMessage delivers a message notification. An unknown recipient is a
// quiet no-op reported as ErrNotFound.
func (s *User) SendMessage(ctx context.Context, recipientID, subject, content string) (model.Notification, error) {
	sender, err := s.auth.ActingUser(ctx)
	if err != nil {
		return model.Notification{}, err
	}

	recipient, err := s.auth.GetUserByID(ctx, recipientID)
	if err != nil {
		return model.Notification{}, err
	}

	n, err := s.auth.AddNotification(ctx, recipient.ID, model.NewNotification{
		Type:     model.NotificationMessage,
		Title:    "New message from " + sender.FirstName,
		Message:  subject,
		Content:  content,
		SenderID: sender.ID,
	})
	if err != nil {
		return model.Notification{}, err
	}

	toast(ctx, s.notifier, model.NoticeSuccess, "Message sent to "+recipient.FirstName)

	publish(ctx, s.publisher, s.logger, model.Activity{
		Type:       model.ActivityMessageSent,
		ActorID:    sender.ID,
		SubjectID:  recipient.ID,
		Attributes: map[string]string{"subject": subject},
		OccurredAt: n.Timestamp,
	})

	return n, nil
}

// UploadProfilePicture stores the image on the acting user. Without object
// storage the bytes are inlined as a data URL.
func (s *User) UploadProfilePicture(ctx context.Context, filename, contentType string, r io.Reader) (model.User, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return model.User{}, err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var pic string
	if s.storage != nil {
		key := path.Join("avatars", user.ID, uuid.NewString()+path.Ext(filename))
		if err := s.storage.Upload(ctx, key, r, contentType); err != nil {
			s.logger.Error("User service: failed to upload profile picture",
				"user_id", user.ID,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		pic = MediaPrefix + key
	} else {
		data, err := io.ReadAll(r)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to read profile picture: %w", err)
		}
		pic = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	}

	updated, err := s.auth.UpdateProfile(ctx, user.ID, model.ProfileUpdate{ProfilePic: &pic})
	if err != nil {
		return model.User{}, err
	}

	toast(ctx, s.notifier, model.NoticeSuccess, "Profile picture updated successfully")
	return updated, nil
}

// Media opens an object previously stored by UploadProfilePicture.
func (s *User) Media(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, model.ErrNotFound
	}

	key = strings.TrimPrefix(key, "/")
	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check media: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}
	return s.storage.Download(ctx, key)
}

// ExportStudents returns the roster CSV and its file name.
func (s *User) ExportStudents(ctx context.Context) (string, []byte, error) {
	if _, err := s.actingAuthor(ctx, "Access denied. This page is for teachers only."); err != nil {
		return "", nil, err
	}

	students, err := s.auth.AllStudents(ctx)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	data := view.StudentsCSV(now, students)
	toast(ctx, s.notifier, model.NoticeSuccess, "Students data exported successfully")
	return view.ExportFileName(now), data, nil
}

func (s *User) profileError(ctx context.Context, field, message string) error {
	alert(ctx, s.notifier, model.NoticeError, message)
	return model.NewValidationError(message, map[string]string{field: "invalid"})
}

// UpdateProfile applies the profile settings form of the acting user. The
// email is only checked against other accounts.
func (s *User) UpdateProfile(ctx context.Context, form model.ProfileForm) (model.User, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return model.User{}, err
	}

	if err := s.validate.Struct(form); err != nil {
		alert(ctx, s.notifier, model.NoticeError, requiredFieldsMessage)
		return model.User{}, validationError(err, requiredFieldsMessage)
	}

	if form.Email != user.Email {
		others, err := s.auth.filterUsers(ctx, func(u model.User) bool {
			return u.Email == form.Email && u.ID != user.ID
		})
		if err != nil {
			return model.User{}, err
		}
		if len(others) > 0 {
			return model.User{}, s.profileError(ctx, "email", "This email is already in use by another account")
		}
	}

	upd := model.ProfileUpdate{
		FirstName: &form.FirstName,
		LastName:  &form.LastName,
		Email:     &form.Email,
		Bio:       &form.Bio,
	}

	if form.NewPassword != "" || form.ConfirmPassword != "" {
		switch {
		case form.NewPassword != form.ConfirmPassword:
			return model.User{}, s.profileError(ctx, "confirmPassword", "New passwords do not match")
		case form.CurrentPassword == "":
			return model.User{}, s.profileError(ctx, "currentPassword", "Please enter your current password to change it")
		case form.CurrentPassword != user.Password:
			return model.User{}, s.profileError(ctx, "currentPassword", "Current password is incorrect")
		}
		upd.Password = &form.NewPassword
	}

	updated, err := s.auth.UpdateProfile(ctx, user.ID, upd)
	if err != nil {
		return model.User{}, err
	}

	toast(ctx, s.notifier, model.NoticeSuccess, "Profile updated successfully")

	if s.dashboard != nil {
		if _, err := s.dashboard.LoadDashboardView(ctx); err != nil {
			s.logger.Warn("User service: failed to reload dashboard",
				"error", err.Error())
		}
	}

	return updated, nil
}

func (s *User) LoadProfileSettings(ctx context.Context) (view.Profile, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Profile{}, err
	}

	stats, err := s.auth.UserStats(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		stats = model.UserStats{
			TotalQuizzesTaken: user.QuizzesTaken,
			AverageScore:      user.AverageScore,
			Level:             user.Level,
			JoinDate:          user.CreatedAt,
			LastActive:        user.LastActive,
		}
	} else if err != nil {
		return view.Profile{}, err
	}

	v := view.NewProfile(user, stats)
	render(ctx, s.renderer, s.logger, s.now(), model.ViewProfile, model.SlotView, v)
	return v, nil
}

func (s *User) ViewStudentDetails(ctx context.Context, studentID string) (view.StudentDetails, error) {
	viewer, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.StudentDetails{}, err
	}

	student, err := s.auth.GetUserByID(ctx, studentID)
	if err != nil {
		return view.StudentDetails{}, err
	}

	v := view.NewStudentDetails(student, viewer)
	render(ctx, s.renderer, s.logger, s.now(), model.ViewStudentDetails, model.SlotView, v)
	return v, nil
}

func (s *User) ShowNotifications(ctx context.Context) (view.Notifications, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Notifications{}, err
	}

	v := view.NewNotifications(s.now(), user)
	render(ctx, s.renderer, s.logger, s.now(), model.ViewNotifications, model.SlotView, v)
	return v, nil
}

// MarkAsRead marks one notification of the acting user as read.
func (s *User) MarkAsRead(ctx context.Context, notificationID string) (view.Notifications, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Notifications{}, err
	}
	if err := s.auth.MarkNotificationAsRead(ctx, user.ID, notificationID); err != nil {
		return view.Notifications{}, err
	}
	return s.ShowNotifications(ctx)
}

func (s *User) MarkAllAsRead(ctx context.Context) (view.Notifications, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Notifications{}, err
	}
	if err := s.auth.MarkAllNotificationsRead(ctx, user.ID); err != nil {
		return view.Notifications{}, err
	}
	toast(ctx, s.notifier, model.NoticeSuccess, "All notifications marked as read")
	return s.ShowNotifications(ctx)
}

func (s *User) ClearAllNotifications(ctx context.Context) (view.Notifications, error) {
	user, err := s.auth.ActingUser(ctx)
	if err != nil {
		return view.Notifications{}, err
	}
	if err := s.auth.ClearNotifications(ctx, user.ID); err != nil {
		return view.Notifications{}, err
	}
	toast(ctx, s.notifier, model.NoticeSuccess, "All notifications cleared")
	return s.ShowNotifications(ctx)
}

// Logout ends the session after confirmation.
func (s *User) Logout(ctx context.Context) error {
	if !s.confirmer.Confirm(ctx, logoutPrompt) {
		return model.ErrNotConfirmed
	}
	return s.auth.Logout(ctx)
}
