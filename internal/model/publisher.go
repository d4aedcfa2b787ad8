package model

import (
	"context"
	"time"
)

// ActivityType names an activity published to other systems.
type ActivityType string

const (
	ActivitySignedUp     ActivityType = "user.signed_up"
	ActivityRoleChanged  ActivityType = "user.role_changed"
	ActivityQuizCreated  ActivityType = "quiz.created"
	ActivityMessageSent  ActivityType = "message.sent"
	ActivityNotification ActivityType = "notification.added"
)

// Activity is a fire-and-forget domain event.
type Activity struct {
	Type       ActivityType      `json:"type"`
	ActorID    string            `json:"actorId,omitempty"`
	SubjectID  string            `json:"subjectId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// ActivityPublisher publishes activities. Failures never abort the operation.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity Activity) error
}
