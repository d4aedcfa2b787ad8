package model

import "time"

// QuizStatus is the publication state of a quiz.
type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusPublished QuizStatus = "published"
)

const (
	// DefaultTimeLimit is the time limit in minutes given to new quizzes.
	DefaultTimeLimit = 30
	// DefaultPassingScore is the passing score given to new quizzes.
	DefaultPassingScore = 60
)

// Quiz holds quiz metadata. Questions is a count, not the question bodies.
type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Difficulty   Level      `json:"difficulty"`
	Description  string     `json:"description"`
	CreatedBy    string     `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	Questions    int        `json:"questions"`
	Completions  int        `json:"completions"`
	AverageScore int        `json:"averageScore"`
	Status       QuizStatus `json:"status"`
	IsPublic     bool       `json:"isPublic"`
	Tags         []string   `json:"tags"`
	TimeLimit    *int       `json:"timeLimit"`
	PassingScore int        `json:"passingScore"`
}

// EntityID implements Entity.
func (q Quiz) EntityID() string {
	return q.ID
}

// Listed reports whether the quiz shows up in recent/popular lists.
func (q Quiz) Listed() bool {
	return q.IsPublic && q.Status == QuizStatusPublished
}

// QuizInput contains parameters to create a quiz.
type QuizInput struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Difficulty  Level    `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced Expert"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	TimeLimit   *int     `json:"timeLimit"`
}

// DashboardStats aggregates the quiz collection.
type DashboardStats struct {
	TotalQuizzes      int `json:"totalQuizzes"`
	ActiveQuizzes     int `json:"activeQuizzes"`
	TotalCompletions  int `json:"totalCompletions"`
	AvgCompletionRate int `json:"avgCompletionRate"`
}

// Event schedules a quiz session.
type Event struct {
	ID           string `json:"id"`
	QuizID       string `json:"quizId"`
	Title        string `json:"title"`
	Time         string `json:"time"`
	Participants int    `json:"participants"`
	Status       string `json:"status"`
}

// EntityID implements Entity.
func (e Event) EntityID() string {
	return e.ID
}

// Submission is one user's attempt at a quiz.
type Submission struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	UserID         string    `json:"userId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	TimeSpent      int       `json:"timeSpent"`
	CompletedAt    time.Time `json:"completedAt"`
	Answers        []string  `json:"answers"`
}

// EntityID implements Entity.
func (s Submission) EntityID() string {
	return s.ID
}
