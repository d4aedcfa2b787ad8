package view

import (
	"fmt"
	"time"

	"github.com/dtroode/quizzzy/internal/model"
)

const (
	feedQuizzes       = 2
	feedStudents      = 2
	feedNotifications = 2
	feedLimit         = 5
)

// ActivityKind says what an activity feed entry refers to.
type ActivityKind string

const (
	ActivityQuiz         ActivityKind = "quiz"
	ActivityStudent      ActivityKind = "student"
	ActivityNotification ActivityKind = "notification"
)

type ActivityItem struct {
	Kind        ActivityKind `json:"kind"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	At          time.Time    `json:"at"`
	TimeAgo     string       `json:"timeAgo"`
}

// ActivityFeed lists the user's own quizzes, then students active in the last
// day (not for students), then notifications, two of each and five in total.
func ActivityFeed(now time.Time, user model.User, ownQuizzes []model.Quiz, students []model.User) []ActivityItem {
	items := make([]ActivityItem, 0, feedLimit+1)

	for _, q := range ownQuizzes[:min(len(ownQuizzes), feedQuizzes)] {
		items = append(items, ActivityItem{
			Kind:        ActivityQuiz,
			Title:       "Created: " + q.Title,
			Description: fmt.Sprintf("%s • %d questions", q.Category, q.Questions),
			At:          q.CreatedAt,
			TimeAgo:     TimeAgo(now, q.CreatedAt),
		})
	}

	if user.Role != model.RoleStudent {
		added := 0
		for _, s := range students {
			if added == feedStudents {
				break
			}
			if !ActiveWithinDay(now, s.LastActive) {
				continue
			}
			items = append(items, ActivityItem{
				Kind:        ActivityStudent,
				Title:       s.FirstName + " completed a quiz",
				Description: fmt.Sprintf("Score: %d%%", s.AverageScore),
				At:          s.LastActive,
				TimeAgo:     TimeAgo(now, s.LastActive),
			})
			added++
		}
	}

	for _, n := range user.Notifications[:min(len(user.Notifications), feedNotifications)] {
		items = append(items, ActivityItem{
			Kind:        ActivityNotification,
			Title:       n.Title,
			Description: n.Message,
			At:          n.Timestamp,
			TimeAgo:     TimeAgo(now, n.Timestamp),
		})
	}

	if len(items) > feedLimit {
		items = items[:feedLimit]
	}
	return items
}

// Action is a button on a view. Target is a view name or an interaction id.
type Action struct {
	Label  string `json:"label"`
	Target string `json:"target"`
	Query  string `json:"query,omitempty"`
}

// Interaction ids that are not views.
const (
	TargetCreateQuiz = "create-quiz"
	TargetSearch     = "search"
	TargetHelp       = "help"
)

// QuickActions returns the dashboard shortcuts for role.
func QuickActions(role model.Role) []Action {
	if role == model.RoleStudent {
		return []Action{
			{Label: "Find Quiz", Target: TargetSearch, Query: "beginner"},
			{Label: "My Analytics", Target: model.ViewAnalytics},
			{Label: "Edit Profile", Target: model.ViewProfile},
			{Label: "Get Help", Target: TargetHelp},
		}
	}
	return []Action{
		{Label: "Create Quiz", Target: TargetCreateQuiz},
		{Label: "View Students", Target: model.ViewStudents},
		{Label: "Analytics", Target: model.ViewAnalytics},
		{Label: "Reports", Target: model.ViewReports},
	}
}

type StudentPanel struct {
	QuizzesTaken  int         `json:"quizzesTaken"`
	QuizProgress  int         `json:"quizProgress"`
	AverageScore  int         `json:"averageScore"`
	Level         model.Level `json:"level"`
	LevelProgress int         `json:"levelProgress"`
}

type TeacherPanel struct {
	TotalStudents  int `json:"totalStudents"`
	ActiveStudents int `json:"activeStudents"`
	AverageScore   int `json:"averageScore"`
}

type Dashboard struct {
	Welcome        string               `json:"welcome"`
	RoleLabel      string               `json:"roleLabel"`
	Stats          model.DashboardStats `json:"stats"`
	RecentQuizzes  []QuizCard           `json:"recentQuizzes"`
	PopularQuizzes []QuizCard           `json:"popularQuizzes"`
	Student        *StudentPanel        `json:"student,omitempty"`
	Teacher        *TeacherPanel        `json:"teacher,omitempty"`
	QuickActions   []Action             `json:"quickActions"`
	Activity       []ActivityItem       `json:"activity"`
}

// DashboardInput is everything the dashboard is composed from.
type DashboardInput struct {
	Now        time.Time
	User       model.User
	Stats      model.DashboardStats
	Recent     []QuizCard
	Popular    []QuizCard
	OwnQuizzes []model.Quiz
	Students   []model.User
}

func NewDashboard(in DashboardInput) Dashboard {
	d := Dashboard{
		Welcome:        "Welcome back, " + in.User.FirstName + "!",
		RoleLabel:      in.User.Role.Label(),
		Stats:          in.Stats,
		RecentQuizzes:  in.Recent,
		PopularQuizzes: in.Popular,
		QuickActions:   QuickActions(in.User.Role),
		Activity:       ActivityFeed(in.Now, in.User, in.OwnQuizzes, in.Students),
	}

	if in.User.Role == model.RoleStudent {
		d.Student = &StudentPanel{
			QuizzesTaken:  in.User.QuizzesTaken,
			QuizProgress:  QuizProgress(in.User.QuizzesTaken),
			AverageScore:  in.User.AverageScore,
			Level:         in.User.Level,
			LevelProgress: LevelProgress(in.User.Level),
		}
	} else {
		d.Teacher = &TeacherPanel{
			TotalStudents:  len(in.Students),
			ActiveStudents: CountActiveWithinDay(in.Now, in.Students),
			AverageScore:   AverageScore(in.Students),
		}
	}

	return d
}

// Placeholder is a section that has no content of its own yet.
type Placeholder struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Heading  string  `json:"heading"`
	Message  string  `json:"message"`
	Action   *Action `json:"action,omitempty"`
}

const underDevelopment = "This section is under development"

var placeholders = map[string]Placeholder{
	model.ViewQuizzes: {
		Title:    "My Quizzes",
		Subtitle: "Manage all your created quizzes",
		Heading:  "Quizzes Management",
		Action:   &Action{Label: "Create New Quiz", Target: TargetCreateQuiz},
	},
	model.ViewAnalytics: {
		Title:    "Analytics",
		Subtitle: "Detailed performance insights",
		Heading:  "Analytics Dashboard",
	},
	model.ViewCourses: {
		Title:    "Courses",
		Subtitle: "Browse available courses",
		Heading:  "Course Catalog",
		Action:   &Action{Label: "Browse Quizzes", Target: TargetSearch},
	},
	model.ViewReports: {
		Title:    "Reports",
		Subtitle: "Generate and view reports",
		Heading:  "Reports Section",
	},
	model.ViewCalendar: {
		Title:    "Calendar",
		Subtitle: "Schedule and events",
		Heading:  "Calendar",
	},
	model.ViewAccount: {
		Title:    "Account Settings",
		Subtitle: "Manage your account preferences",
		Heading:  "Account Management",
		Action:   &Action{Label: "Go to Profile Settings", Target: model.ViewProfile},
	},
}

// PlaceholderFor returns the placeholder of a section view and false for views
// that render real content only.
func PlaceholderFor(name string) (Placeholder, bool) {
	p, ok := placeholders[name]
	if !ok {
		return Placeholder{}, false
	}
	p.Message = underDevelopment
	if p.Action != nil {
		action := *p.Action
		p.Action = &action
	}
	return p, true
}

// QuizList is the quizzes section: the placeholder plus the user's own quizzes.
type QuizList struct {
	Placeholder
	Quizzes []QuizCard `json:"quizzes"`
}

// Calendar is the calendar section with the scheduled events.
type Calendar struct {
	Placeholder
	Events []model.Event `json:"events"`
}
