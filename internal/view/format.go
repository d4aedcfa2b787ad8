// Package view maps dashboard state to typed view models. Nothing here touches
// storage; every function is a pure transformation of its arguments.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/dtroode/quizzzy/internal/model"
)

// DateLayout is used wherever a plain calendar date is shown.
const DateLayout = "2006-01-02"

// TimeAgo renders the elapsed time between t and now.
func TimeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format(DateLayout)
	}
}

// StudentStatus is derived from how long ago a student was last active.
type StudentStatus string

const (
	StatusOnline  StudentStatus = "online"
	StatusIdle    StudentStatus = "idle"
	StatusOffline StudentStatus = "offline"
)

// StatusOf classifies lastActive: under an hour is online, under a day idle.
func StatusOf(now, lastActive time.Time) StudentStatus {
	elapsed := now.Sub(lastActive)
	switch {
	case elapsed < time.Hour:
		return StatusOnline
	case elapsed < 24*time.Hour:
		return StatusIdle
	default:
		return StatusOffline
	}
}

// Label is the roster table text.
func (s StudentStatus) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusIdle:
		return "Recently"
	default:
		return "Offline"
	}
}

// ExportLabel is the CSV export text.
func (s StudentStatus) ExportLabel() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusIdle:
		return "Recently Active"
	default:
		return "Offline"
	}
}

// ActiveWithinDay reports whether lastActive is less than 24 hours before now.
func ActiveWithinDay(now, lastActive time.Time) bool {
	return now.Sub(lastActive) < 24*time.Hour
}

// LevelProgress maps a level to a progress bar percentage.
func LevelProgress(level model.Level) int {
	switch level {
	case model.LevelIntermediate:
		return 50
	case model.LevelAdvanced:
		return 75
	case model.LevelExpert:
		return 100
	default:
		return 25
	}
}

// QuizProgress is ten percent per quiz taken, capped at 100.
func QuizProgress(taken int) int {
	return min(taken*10, 100)
}

// AverageScore is the rounded mean averageScore of users, 0 for none.
func AverageScore(users []model.User) int {
	if len(users) == 0 {
		return 0
	}
	total := 0
	for _, u := range users {
		total += u.AverageScore
	}
	return int(math.Round(float64(total) / float64(len(users))))
}

// CountActiveWithinDay counts users active in the last 24 hours.
func CountActiveWithinDay(now time.Time, users []model.User) int {
	n := 0
	for _, u := range users {
		if ActiveWithinDay(now, u.LastActive) {
			n++
		}
	}
	return n
}

// CountByLevel counts users at level.
func CountByLevel(users []model.User, level model.Level) int {
	n := 0
	for _, u := range users {
		if u.Level == level {
			n++
		}
	}
	return n
}
