package model

import "time"

// MaxNotifications is the number of most recent notifications kept per user.
const MaxNotifications = 20

// NotificationType enumerates notification kinds.
type NotificationType string

const (
	NotificationQuiz        NotificationType = "quiz"
	NotificationMessage     NotificationType = "message"
	NotificationSystem      NotificationType = "system"
	NotificationAchievement NotificationType = "achievement"
	NotificationWarning     NotificationType = "warning"
)

// Notification is owned by exactly one user.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Content   string           `json:"content,omitempty"`
	SenderID  string           `json:"senderId,omitempty"`
	QuizID    string           `json:"quizId,omitempty"`
	Read      bool             `json:"read"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotification contains the caller-supplied part of a notification.
type NewNotification struct {
	Type     NotificationType
	Title    string
	Message  string
	Content  string
	SenderID string
	QuizID   string
}
