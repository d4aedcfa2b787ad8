package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// DefaultListLimit is used by RecentQuizzes and PopularQuizzes for a
// non-positive limit.
const DefaultListLimit = 3

// DashboardLoader re-renders the full dashboard.
type DashboardLoader interface {
	LoadDashboardView(ctx context.Context) (view.Dashboard, error)
}

// Quiz owns the quiz, event and submission collections.
type Quiz struct {
	quizzes     model.Repository[model.Quiz]
	events      model.Repository[model.Event]
	submissions model.Repository[model.Submission]
	auth        *Auth
	notifier    model.Notifier
	renderer    model.Renderer
	publisher   model.ActivityPublisher
	validate    *validator.Validate
	logger      *logger.Logger
	seedDemo    bool
	now         func() time.Time
	dashboard   DashboardLoader
}

func NewQuiz(
	quizzes model.Repository[model.Quiz],
	events model.Repository[model.Event],
	submissions model.Repository[model.Submission],
	auth *Auth,
	notifier model.Notifier,
	renderer model.Renderer,
	publisher model.ActivityPublisher,
	logger *logger.Logger,
	seedDemo bool,
) *Quiz {
	return &Quiz{
		quizzes:     quizzes,
		events:      events,
		submissions: submissions,
		auth:        auth,
		notifier:    notifier,
		renderer:    renderer,
		publisher:   publisher,
		validate:    newValidator(),
		logger:      logger,
		seedDemo:    seedDemo,
		now:         time.Now,
	}
}

// SetDashboardLoader installs the component that re-renders the dashboard
// after a quiz is created or a search is cleared.
func (q *Quiz) SetDashboardLoader(d DashboardLoader) {
	q.dashboard = d
}

// all loads every quiz. An empty, missing or malformed collection is replaced
// by the demo quizzes together with the demo events and submissions. With
// seeding off a malformed collection is reset to an empty one.
func (q *Quiz) all(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := q.quizzes.All(ctx)
	corrupt := false
	switch {
	case err == nil:
		if len(quizzes) > 0 {
			return quizzes, nil
		}
	case errors.Is(err, model.ErrNotFound):
	case errors.Is(err, model.ErrCorrupt):
		q.logger.Error("Quiz service: stored quizzes are malformed, discarding them",
			"error", err.Error())
		corrupt = true
	default:
		return nil, fmt.Errorf("failed to load quizzes: %w", err)
	}

	if !q.seedDemo {
		if corrupt {
			if err := q.quizzes.ReplaceAll(ctx, []model.Quiz{}); err != nil {
				return nil, fmt.Errorf("failed to reset quizzes: %w", err)
			}
		}
		return []model.Quiz{}, nil
	}

	q.logger.Info("Quiz service: seeding demo quizzes")

	quizzes = DemoQuizzes()
	if err := q.quizzes.ReplaceAll(ctx, quizzes); err != nil {
		return nil, fmt.Errorf("failed to seed quizzes: %w", err)
	}
	if err := q.events.ReplaceAll(ctx, DemoEvents()); err != nil {
		return nil, fmt.Errorf("failed to seed events: %w", err)
	}
	if err := q.submissions.ReplaceAll(ctx, DemoSubmissions()); err != nil {
		return nil, fmt.Errorf("failed to seed submissions: %w", err)
	}
	return quizzes, nil
}

func (q *Quiz) CreateQuiz(ctx context.Context, input model.QuizInput) (model.Quiz, error) {
	user, err := q.auth.ActingUser(ctx)
	if err != nil {
		return model.Quiz{}, err
	}

	if !user.CanAuthor() {
		q.logger.Info("Quiz service: student tried to create a quiz",
			"user_id", user.ID)
		toast(ctx, q.notifier, model.NoticeError, "Students cannot create quizzes. Please contact a teacher.")
		return model.Quiz{}, model.ErrForbidden
	}

	if err := q.validate.Struct(input); err != nil {
		toast(ctx, q.notifier, model.NoticeError, requiredFieldsMessage)
		return model.Quiz{}, validationError(err, requiredFieldsMessage)
	}

	if _, err := q.all(ctx); err != nil {
		return model.Quiz{}, err
	}

	timeLimit := input.TimeLimit
	if timeLimit == nil {
		timeLimit = intPtr(model.DefaultTimeLimit)
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	quiz := model.Quiz{
		ID:           newID("quiz"),
		Title:        input.Title,
		Category:     input.Category,
		Difficulty:   input.Difficulty,
		Description:  input.Description,
		CreatedBy:    user.ID,
		CreatedAt:    q.now(),
		Status:       model.QuizStatusDraft,
		IsPublic:     true,
		Tags:         tags,
		TimeLimit:    timeLimit,
		PassingScore: model.DefaultPassingScore,
	}

	if err := q.quizzes.Prepend(ctx, quiz); err != nil {
		q.logger.Error("Quiz service: failed to save quiz",
			"user_id", user.ID,
			"error", err.Error())
		return model.Quiz{}, fmt.Errorf("failed to save quiz: %w", err)
	}

	toast(ctx, q.notifier, model.NoticeSuccess, fmt.Sprintf("\"%s\" created successfully!", quiz.Title))

	q.reloadDashboard(ctx)

	_, err = q.auth.AddNotification(ctx, user.ID, model.NewNotification{
		Type:    model.NotificationQuiz,
		Title:   "Quiz Created",
		Message: fmt.Sprintf("You created \"%s\"", quiz.Title),
		QuizID:  quiz.ID,
	})
	if err != nil {
		q.logger.Warn("Quiz service: failed to notify creator",
			"user_id", user.ID,
			"quiz_id", quiz.ID,
			"error", err.Error())
	}

	publish(ctx, q.publisher, q.logger, model.Activity{
		Type:       model.ActivityQuizCreated,
		ActorID:    user.ID,
		SubjectID:  quiz.ID,
		Attributes: map[string]string{"title": quiz.Title, "category": quiz.Category},
		OccurredAt: quiz.CreatedAt,
	})

	q.logger.Info("Quiz service: quiz created",
		"user_id", user.ID,
		"quiz_id", quiz.ID)

	return quiz, nil
}

func (q *Quiz) reloadDashboard(ctx context.Context) {
	if q.dashboard == nil {
		return
	}
	if _, err := q.dashboard.LoadDashboardView(ctx); err != nil {
		q.logger.Warn("Quiz service: failed to reload dashboard",
			"error", err.Error())
	}
}

// SearchQuizzes matches public quizzes by title, category, description or tag.
func (q *Quiz) SearchQuizzes(ctx context.Context, query string) ([]model.Quiz, error) {
	if _, err := q.all(ctx); err != nil {
		return nil, err
	}

	term := strings.ToLower(query)
	quizzes, err := q.quizzes.List(ctx, func(quiz model.Quiz) bool {
		if !quiz.IsPublic {
			return false
		}
		for _, field := range []string{quiz.Title, quiz.Category, quiz.Description} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return slices.ContainsFunc(quiz.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), term)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search quizzes: %w", err)
	}
	return quizzes, nil
}

// HandleSearch renders search results into the dashboard slot. A blank query
// re-renders the dashboard instead and returns nil results.
func (q *Quiz) HandleSearch(ctx context.Context, query string) (*view.SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		q.reloadDashboard(ctx)
		return nil, nil
	}

	user, err := q.auth.ActingUser(ctx)
	if err != nil {
		return nil, err
	}

	quizzes, err := q.SearchQuizzes(ctx, query)
	if err != nil {
		return nil, err
	}

	users, err := q.auth.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	cards, err := q.cards(ctx, quizzes)
	if err != nil {
		return nil, err
	}

	results := view.NewSearchResults(query, cards, users, user.CanAuthor())
	render(ctx, q.renderer, q.logger, q.now(), model.ViewSearch, model.SlotDashboard, results)
	return &results, nil
}

// cards resolves quiz creators against one roster read.
func (q *Quiz) cards(ctx context.Context, quizzes []model.Quiz) ([]view.QuizCard, error) {
	users, err := q.auth.roster(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return view.QuizCards(quizzes, func(id string) *model.User { return byID[id] }), nil
}

func (q *Quiz) listed(ctx context.Context) ([]model.Quiz, error) {
	if _, err := q.all(ctx); err != nil {
		return nil, err
	}
	quizzes, err := q.quizzes.List(ctx, model.Quiz.Listed)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func truncate[T any](items []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// RecentQuizzes returns published public quizzes, newest first.
func (q *Quiz) RecentQuizzes(ctx context.Context, limit int) ([]model.Quiz, error) {
	quizzes, err := q.listed(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(quizzes, func(a, b model.Quiz) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return truncate(quizzes, limit), nil
}

// PopularQuizzes returns published public quizzes by completions. Ties keep
// collection order.
func (q *Quiz) PopularQuizzes(ctx context.Context, limit int) ([]model.Quiz, error) {
	quizzes, err := q.listed(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(quizzes, func(a, b model.Quiz) int {
		return cmp.Compare(b.Completions, a.Completions)
	})
	return truncate(quizzes, limit), nil
}

// DashboardStats averages averageScore over every quiz, drafts included.
func (q *Quiz) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	quizzes, err := q.all(ctx)
	if err != nil {
		return model.DashboardStats{}, err
	}

	stats := model.DashboardStats{TotalQuizzes: len(quizzes)}
	scores := 0
	for _, quiz := range quizzes {
		if quiz.Status == model.QuizStatusPublished {
			stats.ActiveQuizzes++
		}
		stats.TotalCompletions += quiz.Completions
		scores += quiz.AverageScore
	}
	if len(quizzes) > 0 {
		stats.AvgCompletionRate = int(math.Round(float64(scores) / float64(len(quizzes))))
	}
	return stats, nil
}

func (q *Quiz) GetQuizByID(ctx context.Context, quizID string) (model.Quiz, error) {
	if _, err := q.all(ctx); err != nil {
		return model.Quiz{}, err
	}

	quiz, err := q.quizzes.Get(ctx, quizID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Quiz{}, model.ErrNotFound
		}
		return model.Quiz{}, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (q *Quiz) QuizzesByUser(ctx context.Context, userID string) ([]model.Quiz, error) {
	if _, err := q.all(ctx); err != nil {
		return nil, err
	}

	quizzes, err := q.quizzes.List(ctx, func(quiz model.Quiz) bool { return quiz.CreatedBy == userID })
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// ViewQuiz renders the details of one quiz. Non-students may edit.
func (q *Quiz) ViewQuiz(ctx context.Context, quizID string) (view.QuizDetails, error) {
	user, err := q.auth.ActingUser(ctx)
	if err != nil {
		return view.QuizDetails{}, err
	}

	quiz, err := q.GetQuizByID(ctx, quizID)
	if err != nil {
		return view.QuizDetails{}, err
	}

	creatorName := view.UnknownCreator
	creator, err := q.auth.GetUserByID(ctx, quiz.CreatedBy)
	switch {
	case err == nil:
		creatorName = creator.FullName()
	case !errors.Is(err, model.ErrNotFound):
		return view.QuizDetails{}, err
	}

	details := view.QuizDetails{
		Quiz:        quiz,
		CreatorName: creatorName,
		CanEdit:     user.Role != model.RoleStudent,
	}
	render(ctx, q.renderer, q.logger, q.now(), model.ViewQuizDetails, model.SlotView, details)
	return details, nil
}

func (q *Quiz) Events(ctx context.Context) ([]model.Event, error) {
	if _, err := q.all(ctx); err != nil {
		return nil, err
	}
	return loadOrEmpty(ctx, q.events, q.logger, "events")
}

func (q *Quiz) Submissions(ctx context.Context) ([]model.Submission, error) {
	if _, err := q.all(ctx); err != nil {
		return nil, err
	}
	return loadOrEmpty(ctx, q.submissions, q.logger, "submissions")
}

// loadOrEmpty reads a collection that is never reseeded on its own. Missing and
// malformed collections read as empty.
func loadOrEmpty[T model.Entity](ctx context.Context, repo model.Repository[T], log *logger.Logger, name string) ([]T, error) {
	items, err := repo.All(ctx)
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, model.ErrNotFound):
		return []T{}, nil
	case errors.Is(err, model.ErrCorrupt):
		log.Error("Quiz service: stored collection is malformed",
			"collection", name,
			"error", err.Error())
		return []T{}, nil
	default:
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
}
