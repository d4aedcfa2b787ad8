package model

import (
	"context"
	"time"
)

// NoticeLevel is the tone of a user-visible notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a user-visible message. Blocking notices are alerts the user has to
// acknowledge, the rest are transient toasts.
type Notice struct {
	Level    NoticeLevel `json:"level"`
	Message  string      `json:"message"`
	Blocking bool        `json:"blocking"`
}

// Notifier delivers notices raised while handling a UI event.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Confirmer answers an interactive yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Slot is one of the two fixed containers a view renders into.
type Slot string

const (
	SlotDashboard Slot = "dashboard-content"
	SlotView      Slot = "view-content"
)

// View names accepted by the platform. Anything else falls back to ViewDashboard.
const (
	ViewDashboard = "dashboard"
	ViewQuizzes   = "quizzes"
	ViewStudents  = "students"
	ViewProfile   = "profile"
	ViewAnalytics = "analytics"
	ViewCourses   = "courses"
	ViewReports   = "reports"
	ViewCalendar  = "calendar"
	ViewAccount   = "account"

	// Fragments that are not navigation targets.
	ViewSearch         = "search"
	ViewQuizDetails    = "quiz-details"
	ViewStudentDetails = "student-details"
	ViewNotifications  = "notifications"
	ViewLogin          = "login"
)

// Frame is a rendered view model. Rendering into one slot hides the other.
type Frame struct {
	View       string    `json:"view"`
	Slot       Slot      `json:"slot"`
	Model      any       `json:"model"`
	RenderedAt time.Time `json:"renderedAt"`
}

// Renderer receives every frame a manager produces.
type Renderer interface {
	Render(ctx context.Context, frame Frame) error
}
