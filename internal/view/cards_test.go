package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/quizzzy/internal/model"
)

func TestQuizCards(t *testing.T) {
	john := model.User{ID: "user-1", FirstName: "John", LastName: "Smith"}
	quizzes := []model.Quiz{
		{ID: "quiz-1", Title: "Cells", CreatedBy: "user-1"},
		{ID: "quiz-2", Title: "Orphan", CreatedBy: "user-404"},
	}

	cards := QuizCards(quizzes, func(id string) *model.User {
		if id == john.ID {
			return &john
		}
		return nil
	})

	require.Len(t, cards, 2)
	assert.Equal(t, "John Smith", cards[0].CreatorName)
	assert.Equal(t, UnknownCreator, cards[1].CreatorName)
}

func TestNewSearchResults(t *testing.T) {
	quizzes := []QuizCard{{ID: "quiz-1"}}
	users := []model.User{{ID: "user-2", FirstName: "Sarah", LastName: "Johnson"}}

	hidden := NewSearchResults("sa", quizzes, users, false)
	assert.Empty(t, hidden.Users)
	assert.Equal(t, 1, hidden.Total)

	shown := NewSearchResults("sa", quizzes, users, true)
	require.Len(t, shown.Users, 1)
	assert.Equal(t, "Sarah Johnson", shown.Users[0].Name)
	assert.Equal(t, "SJ", shown.Users[0].Initials)
	assert.Equal(t, 2, shown.Total)
}

func TestNewSummary(t *testing.T) {
	student := model.User{FirstName: "Sarah", LastName: "Johnson", Role: model.RoleStudent, Notifications: []model.Notification{{Read: false}, {Read: true}}}

	s := NewSummary(student, 0, 7)
	assert.Equal(t, "Welcome back, Sarah!", s.Welcome)
	assert.Equal(t, "Student Dashboard", s.RoleLabel)
	assert.Nil(t, s.Students)
	assert.Equal(t, 1, s.Unread)
	assert.Equal(t, "Find Quiz", s.PrimaryVerb)

	admin := model.User{FirstName: "Admin", LastName: "User", Role: model.RoleAdmin}
	s = NewSummary(admin, 2, 7)
	require.NotNil(t, s.Students)
	assert.Equal(t, 7, *s.Students)
	assert.Equal(t, 2, s.MyQuizzes)
	assert.True(t, s.ShowRoster)
	assert.Equal(t, "AU", s.Initials)
}

func TestNewStudentDetails(t *testing.T) {
	student := model.User{ID: "user-2", FirstName: "Sarah", LastName: "Johnson", CreatedAt: now}

	details := NewStudentDetails(student, model.User{Role: model.RoleTeacher})
	assert.Equal(t, NoBio, details.Bio)
	assert.Equal(t, "2024-03-20", details.JoinedAt)
	assert.False(t, details.CanPromote)

	details = NewStudentDetails(student, model.User{Role: model.RoleAdmin})
	assert.True(t, details.CanPromote)
}

func TestNewNotifications(t *testing.T) {
	u := model.User{Notifications: []model.Notification{
		{ID: "n2", Timestamp: now.Add(-2 * time.Minute)},
		{ID: "n1", Read: true, Timestamp: now.Add(-2 * time.Hour)},
	}}

	n := NewNotifications(now, u)
	assert.Equal(t, 1, n.Unread)
	require.Len(t, n.Items, 2)
	assert.Equal(t, "2m ago", n.Items[0].TimeAgo)
	assert.Equal(t, "n1", n.Items[1].ID)
}
