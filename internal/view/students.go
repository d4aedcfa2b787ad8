package view

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dtroode/quizzzy/internal/model"
)

type StudentRow struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Initials     string        `json:"initials"`
	ProfilePic   string        `json:"profilePic,omitempty"`
	Level        model.Level   `json:"level"`
	QuizzesTaken int           `json:"quizzesTaken"`
	AverageScore int           `json:"averageScore"`
	LastActive   string        `json:"lastActive"`
	Status       StudentStatus `json:"status"`
	StatusLabel  string        `json:"statusLabel"`
}

// Students is the roster view shown to teachers and admins.
type Students struct {
	Total        int          `json:"total"`
	AverageScore int          `json:"averageScore"`
	ActiveToday  int          `json:"activeToday"`
	Advanced     int          `json:"advanced"`
	CanManage    bool         `json:"canManage"`
	Rows         []StudentRow `json:"rows"`
}

func NewStudents(now time.Time, students []model.User, canManage bool) Students {
	rows := make([]StudentRow, 0, len(students))
	for _, s := range students {
		status := StatusOf(now, s.LastActive)
		rows = append(rows, StudentRow{
			ID:           s.ID,
			Name:         s.FullName(),
			Email:        s.Email,
			Initials:     s.Initials(),
			ProfilePic:   s.ProfilePic,
			Level:        s.Level,
			QuizzesTaken: s.QuizzesTaken,
			AverageScore: s.AverageScore,
			LastActive:   s.LastActive.Format(DateLayout),
			Status:       status,
			StatusLabel:  status.Label(),
		})
	}

	return Students{
		Total:        len(students),
		AverageScore: AverageScore(students),
		ActiveToday:  CountActiveWithinDay(now, students),
		Advanced:     CountByLevel(students, model.LevelAdvanced),
		CanManage:    canManage,
		Rows:         rows,
	}
}

// StudentsCSVHeader is the first line of the roster export.
const StudentsCSVHeader = "Name,Email,Level,Quizzes Taken,Average Score,Last Active,Status"

// StudentsCSV writes the roster export. The name column is quoted but not
// escaped and no other column is quoted, so names or emails containing commas
// or quotes produce rows spreadsheet tools will split differently.
func StudentsCSV(now time.Time, students []model.User) []byte {
	var b bytes.Buffer
	b.WriteString(StudentsCSVHeader)
	b.WriteByte('\n')
	for _, s := range students {
		fmt.Fprintf(&b, "\"%s %s\",%s,%s,%d,%d,%s,%s\n",
			s.FirstName, s.LastName,
			s.Email,
			s.Level,
			s.QuizzesTaken,
			s.AverageScore,
			s.LastActive.Format(DateLayout),
			StatusOf(now, s.LastActive).ExportLabel(),
		)
	}
	return b.Bytes()
}

// ExportFileName names the roster export after the UTC date of now.
func ExportFileName(now time.Time) string {
	return "quizzzy-students-" + now.UTC().Format(DateLayout) + ".csv"
}
