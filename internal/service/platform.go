package service

import (
	"context"
	"time"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/view"
)

// Platform switches between views and composes the dashboard.
type Platform struct {
	auth     *Auth
	quiz     *Quiz
	user     *User
	renderer model.Renderer
	logger   *logger.Logger
	now      func() time.Time
}

// NewPlatform creates the platform and makes it the dashboard loader of the
// quiz and user managers.
func NewPlatform(auth *Auth, quiz *Quiz, user *User, renderer model.Renderer, logger *logger.Logger) *Platform {
	p := &Platform{
		auth:     auth,
		quiz:     quiz,
		user:     user,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
	quiz.SetDashboardLoader(p)
	user.SetDashboardLoader(p)
	return p
}

// Initialize renders the dashboard, or returns ErrUnauthenticated so the
// caller can send the user to the login page.
func (p *Platform) Initialize(ctx context.Context) (view.Dashboard, error) {
	ok, err := p.auth.IsAuthenticated(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}
	if !ok {
		p.logger.Debug("Platform: no session, redirecting to login")
		return view.Dashboard{}, model.ErrUnauthenticated
	}
	return p.LoadDashboardView(ctx)
}

// LoadView renders the named view. Unknown names load the dashboard.
func (p *Platform) LoadView(ctx context.Context, name string) (any, error) {
	switch name {
	case model.ViewStudents:
		return p.user.LoadStudentsView(ctx)
	case model.ViewProfile:
		return p.user.LoadProfileSettings(ctx)
	case model.ViewQuizzes:
		return p.loadQuizzes(ctx)
	case model.ViewCalendar:
		return p.loadCalendar(ctx)
	case model.ViewAnalytics, model.ViewCourses, model.ViewReports, model.ViewAccount:
		if _, err := p.auth.ActingUser(ctx); err != nil {
			return nil, err
		}
		v, _ := view.PlaceholderFor(name)
		render(ctx, p.renderer, p.logger, p.now(), name, model.SlotView, v)
		return v, nil
	default:
		return p.LoadDashboardView(ctx)
	}
}

func (p *Platform) loadQuizzes(ctx context.Context) (view.QuizList, error) {
	user, err := p.auth.ActingUser(ctx)
	if err != nil {
		return view.QuizList{}, err
	}

	own, err := p.quiz.QuizzesByUser(ctx, user.ID)
	if err != nil {
		return view.QuizList{}, err
	}
	cards, err := p.quiz.cards(ctx, own)
	if err != nil {
		return view.QuizList{}, err
	}

	placeholder, _ := view.PlaceholderFor(model.ViewQuizzes)
	v := view.QuizList{Placeholder: placeholder, Quizzes: cards}
	render(ctx, p.renderer, p.logger, p.now(), model.ViewQuizzes, model.SlotView, v)
	return v, nil
}

func (p *Platform) loadCalendar(ctx context.Context) (view.Calendar, error) {
	if _, err := p.auth.ActingUser(ctx); err != nil {
		return view.Calendar{}, err
	}

	events, err := p.quiz.Events(ctx)
	if err != nil {
		return view.Calendar{}, err
	}

	placeholder, _ := view.PlaceholderFor(model.ViewCalendar)
	v := view.Calendar{Placeholder: placeholder, Events: events}
	render(ctx, p.renderer, p.logger, p.now(), model.ViewCalendar, model.SlotView, v)
	return v, nil
}

// LoadDashboardView composes and renders the dashboard of the acting user.
func (p *Platform) LoadDashboardView(ctx context.Context) (view.Dashboard, error) {
	user, err := p.auth.ActingUser(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}

	stats, err := p.quiz.DashboardStats(ctx)
	if err != nil {
		return view.Dashboard{}, err
	}

	recent, err := p.quiz.RecentQuizzes(ctx, DefaultListLimit)
	if err != nil {
		return view.Dashboard{}, err
	}
	popular, err := p.quiz.PopularQuizzes(ctx, DefaultListLimit)
	if err != nil {
		return view.Dashboard{}, err
	}
	recentCards, err := p.quiz.cards(ctx, recent)
	if err != nil {
		return view.Dashboard{}, err
	}
	popularCards, err := p.quiz.cards(ctx, popular)
	if err != nil {
		return view.Dashboard{}, err
	}

	own, err := p.quiz.QuizzesByUser(ctx, user.ID)
	if err != nil {
		return view.Dashboard{}, err
	}

	var students []model.User
	if user.CanAuthor() {
		students, err = p.auth.AllStudents(ctx)
		if err != nil {
			return view.Dashboard{}, err
		}
	}

	now := p.now()
	d := view.NewDashboard(view.DashboardInput{
		Now:        now,
		User:       user,
		Stats:      stats,
		Recent:     recentCards,
		Popular:    popularCards,
		OwnQuizzes: own,
		Students:   students,
	})
	render(ctx, p.renderer, p.logger, now, model.ViewDashboard, model.SlotDashboard, d)
	return d, nil
}
