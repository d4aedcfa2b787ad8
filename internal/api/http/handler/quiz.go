package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// QuizService defines quiz operations exposed over HTTP.
type QuizService interface {
	CreateQuiz(ctx context.Context, input model.QuizInput) (model.Quiz, error)
	HandleSearch(ctx context.Context, query string) (*view.SearchResults, error)
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	RecentQuizzes(ctx context.Context, limit int) ([]model.Quiz, error)
	PopularQuizzes(ctx context.Context, limit int) ([]model.Quiz, error)
	ViewQuiz(ctx context.Context, quizID string) (view.QuizDetails, error)
}

// Quiz handles quiz endpoints.
type Quiz struct {
	base
	quizService QuizService
}

// NewQuiz creates a new Quiz handler.
func NewQuiz(quizService QuizService, events model.ContextManager, logger *logger.Logger) *Quiz {
	return &Quiz{
		base:        base{events: events, logger: logger},
		quizService: quizService,
	}
}

type listQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type searchQuery struct {
	Query string `form:"q"`
}

func (h *Quiz) Create(c *gin.Context) {
	var req model.QuizInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("Quiz handler: quiz created",
		"quiz_id", quiz.ID)
	h.ok(c, quiz)
}

// Search renders search results, or the dashboard for a blank query.
func (h *Quiz) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}

	results, err := h.quizService.HandleSearch(c.Request.Context(), q.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	// a typed nil *SearchResults would encode as "data":null
	if results == nil {
		h.ok(c, nil)
		return
	}
	h.ok(c, results)
}

func (h *Quiz) Stats(c *gin.Context) {
	stats, err := h.quizService.DashboardStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, stats)
}

func (h *Quiz) Recent(c *gin.Context) {
	h.list(c, h.quizService.RecentQuizzes)
}

func (h *Quiz) Popular(c *gin.Context) {
	h.list(c, h.quizService.PopularQuizzes)
}

func (h *Quiz) list(c *gin.Context, fetch func(ctx context.Context, limit int) ([]model.Quiz, error)) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}

	quizzes, err := fetch(c.Request.Context(), q.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, quizzes)
}

// Get renders the quiz details view.
func (h *Quiz) Get(c *gin.Context) {
	details, err := h.quizService.ViewQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, details)
}
