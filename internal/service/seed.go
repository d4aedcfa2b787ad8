package service

import (
	"time"

	"github.com/dtroode/quizzzy/internal/model"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "password123"

// DemoUsers returns the roster written when no usable roster is stored.
func DemoUsers(now time.Time) []model.User {
	return []model.User{
		{
			ID:            "user-1",
			FirstName:     "John",
			LastName:      "Smith",
			Email:         "teacher@quizzzy.com",
			Password:      DemoPassword,
			Role:          model.RoleTeacher,
			Bio:           "Experienced mathematics teacher with 10+ years of experience.",
			CreatedAt:     now,
			LastActive:    now,
			Level:         model.LevelAdvanced,
			Notifications: []model.Notification{},
			IsActive:      true,
		},
		{
			ID:            "user-2",
			FirstName:     "Sarah",
			LastName:      "Johnson",
			Email:         "student@quizzzy.com",
			Password:      DemoPassword,
			Role:          model.RoleStudent,
			Bio:           "Computer Science student passionate about learning.",
			CreatedAt:     now,
			LastActive:    now,
			Level:         model.LevelIntermediate,
			QuizzesTaken:  15,
			AverageScore:  85,
			Notifications: []model.Notification{},
			IsActive:      true,
		},
		{
			ID:            "user-3",
			FirstName:     "Admin",
			LastName:      "User",
			Email:         "admin@quizzzy.com",
			Password:      DemoPassword,
			Role:          model.RoleAdmin,
			Bio:           "System administrator",
			CreatedAt:     now,
			LastActive:    now,
			Level:         model.LevelExpert,
			Notifications: []model.Notification{},
			IsActive:      true,
		},
	}
}

func intPtr(v int) *int {
	return &v
}

// DemoQuizzes returns the quizzes written when the quiz collection is empty.
func DemoQuizzes() []model.Quiz {
	return []model.Quiz{
		{
			ID:           "quiz-1",
			Title:        "Introduction to Biology",
			Category:     "Science",
			Difficulty:   model.LevelIntermediate,
			Description:  "Basic biology concepts and terminology",
			CreatedBy:    "user-1",
			CreatedAt:    time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			Questions:    15,
			Completions:  28,
			AverageScore: 75,
			Status:       model.QuizStatusPublished,
			IsPublic:     true,
			Tags:         []string{"biology", "science", "beginner"},
			TimeLimit:    intPtr(45),
			PassingScore: 60,
		},
		{
			ID:           "quiz-2",
			Title:        "Algebra Fundamentals",
			Category:     "Mathematics",
			Difficulty:   model.LevelBeginner,
			Description:  "Basic algebraic equations and expressions",
			CreatedBy:    "user-1",
			CreatedAt:    time.Date(2024, 3, 14, 14, 20, 0, 0, time.UTC),
			Questions:    20,
			Completions:  42,
			AverageScore: 82,
			Status:       model.QuizStatusPublished,
			IsPublic:     true,
			Tags:         []string{"math", "algebra", "equations"},
			TimeLimit:    intPtr(60),
			PassingScore: 65,
		},
		{
			ID:           "quiz-3",
			Title:        "World History Basics",
			Category:     "History",
			Difficulty:   model.LevelIntermediate,
			Description:  "Key events in world history",
			CreatedBy:    "user-1",
			CreatedAt:    time.Date(2024, 3, 13, 9, 15, 0, 0, time.UTC),
			Questions:    25,
			Completions:  19,
			AverageScore: 68,
			Status:       model.QuizStatusPublished,
			IsPublic:     true,
			Tags:         []string{"history", "world", "events"},
			TimeLimit:    nil,
			PassingScore: 55,
		},
	}
}

func DemoEvents() []model.Event {
	return []model.Event{
		{
			ID:           "event-1",
			QuizID:       "quiz-1",
			Title:        "Science Mid-term Quiz",
			Time:         "Today, 2:30 PM",
			Participants: 32,
			Status:       "active",
		},
	}
}

func DemoSubmissions() []model.Submission {
	return []model.Submission{
		{
			ID:             "sub-1",
			QuizID:         "quiz-1",
			UserID:         "user-2",
			Score:          85,
			TotalQuestions: 15,
			CorrectAnswers: 13,
			TimeSpent:      25,
			CompletedAt:    time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
			Answers:        []string{},
		},
	}
}
