package model

import (
	"strings"
	"time"
)

// Role is a user role gating views and actions.
type Role string

const (
	// RoleStudent takes quizzes.
	RoleStudent Role = "student"
	// RoleTeacher creates quizzes and manages students.
	RoleTeacher Role = "teacher"
	// RoleAdmin has teacher rights plus roster management.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// Label returns the dashboard title for the role.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student Dashboard"
	case RoleTeacher:
		return "Teacher Dashboard"
	case RoleAdmin:
		return "Admin Dashboard"
	default:
		return "Dashboard"
	}
}

// Level is a learner level. Quizzes reuse the same scale for difficulty.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
	// LevelNone is assigned to non-students at signup.
	LevelNone Level = "N/A"
)

// User is a roster entry. Password is kept in clear text.
type User struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Role          Role           `json:"role"`
	Bio           string         `json:"bio"`
	ProfilePic    string         `json:"profilePic"`
	CreatedAt     time.Time      `json:"createdAt"`
	LastActive    time.Time      `json:"lastActive"`
	Level         Level          `json:"level"`
	QuizzesTaken  int            `json:"quizzesTaken"`
	AverageScore  int            `json:"averageScore"`
	Notifications []Notification `json:"notifications"`
	IsActive      bool           `json:"isActive"`
}

// EntityID implements Entity.
func (u User) EntityID() string {
	return u.ID
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Initials returns the upper-cased first letters of first and last name.
func (u User) Initials() string {
	var b strings.Builder
	for _, s := range []string{u.FirstName, u.LastName} {
		for _, r := range s {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

// CanAuthor reports whether the user may create quizzes and see the roster.
func (u User) CanAuthor() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}

// UnreadNotifications counts notifications not yet read.
func (u User) UnreadNotifications() int {
	n := 0
	for _, notification := range u.Notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}

// Clone returns a copy that does not share the notifications slice.
func (u User) Clone() User {
	c := u
	if u.Notifications != nil {
		c.Notifications = make([]Notification, len(u.Notifications))
		copy(c.Notifications, u.Notifications)
	}
	return c
}

// ProfileUpdate is a shallow merge patch; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Password     *string
	Bio          *string
	ProfilePic   *string
	Level        *Level
	QuizzesTaken *int
	AverageScore *int
	IsActive     *bool
}

// Apply merges the non-nil fields into u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.ProfilePic != nil {
		u.ProfilePic = *p.ProfilePic
	}
	if p.Level != nil {
		u.Level = *p.Level
	}
	if p.QuizzesTaken != nil {
		u.QuizzesTaken = *p.QuizzesTaken
	}
	if p.AverageScore != nil {
		u.AverageScore = *p.AverageScore
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}

// SignupParams contains parameters to register a user.
type SignupParams struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Role      Role   `json:"role" validate:"required,oneof=student teacher admin"`
	Bio       string `json:"bio"`
}

// UserStats summarises a user's activity.
type UserStats struct {
	TotalQuizzesTaken int       `json:"totalQuizzesTaken"`
	AverageScore      int       `json:"averageScore"`
	Level             Level     `json:"level"`
	JoinDate          time.Time `json:"joinDate"`
	LastActive        time.Time `json:"lastActive"`
	DaysActive        int       `json:"daysActive"`
}

// ProfileForm is the profile settings form. Password fields are only checked
// when NewPassword or ConfirmPassword is set.
type ProfileForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Bio             string `json:"bio"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
