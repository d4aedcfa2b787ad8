package view

import (
	"time"

	"github.com/dtroode/quizzzy/internal/model"
)

// UnknownCreator is shown for quizzes whose author is not on the roster.
const UnknownCreator = "Unknown"

type QuizCard struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Category     string      `json:"category"`
	Difficulty   model.Level `json:"difficulty"`
	Description  string      `json:"description"`
	Questions    int         `json:"questions"`
	Completions  int         `json:"completions"`
	AverageScore int         `json:"averageScore"`
	CreatorName  string      `json:"creatorName,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// NewQuizCard builds a card; creator may be nil when the author is unknown.
func NewQuizCard(q model.Quiz, creator *model.User) QuizCard {
	card := QuizCard{
		ID:           q.ID,
		Title:        q.Title,
		Category:     q.Category,
		Difficulty:   q.Difficulty,
		Description:  q.Description,
		Questions:    q.Questions,
		Completions:  q.Completions,
		AverageScore: q.AverageScore,
		CreatedAt:    q.CreatedAt,
		CreatorName:  UnknownCreator,
	}
	if creator != nil {
		card.CreatorName = creator.FullName()
	}
	return card
}

// QuizCards builds cards resolving creators through lookup.
func QuizCards(quizzes []model.Quiz, lookup func(id string) *model.User) []QuizCard {
	cards := make([]QuizCard, 0, len(quizzes))
	for _, q := range quizzes {
		var creator *model.User
		if lookup != nil {
			creator = lookup(q.CreatedBy)
		}
		cards = append(cards, NewQuizCard(q, creator))
	}
	return cards
}

type UserCard struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	Initials   string     `json:"initials"`
	ProfilePic string     `json:"profilePic,omitempty"`
}

func NewUserCard(u model.User) UserCard {
	return UserCard{
		ID:         u.ID,
		Name:       u.FullName(),
		Email:      u.Email,
		Role:       u.Role,
		Initials:   u.Initials(),
		ProfilePic: u.ProfilePic,
	}
}

// SearchResults is rendered into the dashboard slot in place of the dashboard.
type SearchResults struct {
	Query   string     `json:"query"`
	Total   int        `json:"total"`
	Quizzes []QuizCard `json:"quizzes"`
	Users   []UserCard `json:"users"`
}

// NewSearchResults drops the user matches unless showUsers is set.
func NewSearchResults(query string, quizzes []QuizCard, users []model.User, showUsers bool) SearchResults {
	res := SearchResults{
		Query:   query,
		Quizzes: quizzes,
		Users:   []UserCard{},
	}
	if showUsers {
		for _, u := range users {
			res.Users = append(res.Users, NewUserCard(u))
		}
	}
	res.Total = len(res.Quizzes) + len(res.Users)
	return res
}

type QuizDetails struct {
	Quiz        model.Quiz `json:"quiz"`
	CreatorName string     `json:"creatorName"`
	CanEdit     bool       `json:"canEdit"`
}

type StudentDetails struct {
	User         UserCard    `json:"user"`
	Bio          string      `json:"bio"`
	Level        model.Level `json:"level"`
	QuizzesTaken int         `json:"quizzesTaken"`
	AverageScore int         `json:"averageScore"`
	JoinedAt     string      `json:"joinedAt"`
	CanPromote   bool        `json:"canPromote"`
}

// NoBio is shown for users without a bio.
const NoBio = "No bio available."

func NewStudentDetails(student model.User, viewer model.User) StudentDetails {
	bio := student.Bio
	if bio == "" {
		bio = NoBio
	}
	return StudentDetails{
		User:         NewUserCard(student),
		Bio:          bio,
		Level:        student.Level,
		QuizzesTaken: student.QuizzesTaken,
		AverageScore: student.AverageScore,
		JoinedAt:     student.CreatedAt.Format(DateLayout),
		CanPromote:   viewer.Role == model.RoleAdmin,
	}
}

type NotificationItem struct {
	model.Notification
	TimeAgo string `json:"timeAgo"`
}

type Notifications struct {
	Unread int                `json:"unread"`
	Items  []NotificationItem `json:"items"`
}

func NewNotifications(now time.Time, u model.User) Notifications {
	items := make([]NotificationItem, 0, len(u.Notifications))
	for _, n := range u.Notifications {
		items = append(items, NotificationItem{
			Notification: n,
			TimeAgo:      TimeAgo(now, n.Timestamp),
		})
	}
	return Notifications{
		Unread: u.UnreadNotifications(),
		Items:  items,
	}
}

// Summary is the sidebar and header state for the acting user.
type Summary struct {
	Welcome     string     `json:"welcome"`
	RoleLabel   string     `json:"roleLabel"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Role        model.Role `json:"role"`
	Initials    string     `json:"initials"`
	ProfilePic  string     `json:"profilePic,omitempty"`
	MyQuizzes   int        `json:"myQuizzes"`
	Students    *int       `json:"students,omitempty"`
	Unread      int        `json:"unread"`
	ShowRoster  bool       `json:"showRoster"`
	PrimaryVerb string     `json:"primaryVerb"`
}

// NewSummary leaves Students nil for students, who never see the roster.
func NewSummary(u model.User, myQuizzes, students int) Summary {
	s := Summary{
		Welcome:     "Welcome back, " + u.FirstName + "!",
		RoleLabel:   u.Role.Label(),
		FullName:    u.FullName(),
		Email:       u.Email,
		Role:        u.Role,
		Initials:    u.Initials(),
		ProfilePic:  u.ProfilePic,
		MyQuizzes:   myQuizzes,
		Unread:      u.UnreadNotifications(),
		ShowRoster:  u.CanAuthor(),
		PrimaryVerb: "Create Quiz",
	}
	if u.CanAuthor() {
		s.Students = &students
	} else {
		s.PrimaryVerb = "Find Quiz"
	}
	return s
}

type Profile struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Bio        string          `json:"bio"`
	Role       model.Role      `json:"role"`
	Initials   string          `json:"initials"`
	ProfilePic string          `json:"profilePic,omitempty"`
	Stats      model.UserStats `json:"stats"`
}

func NewProfile(u model.User, stats model.UserStats) Profile {
	return Profile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Bio:        u.Bio,
		Role:       u.Role,
		Initials:   u.Initials(),
		ProfilePic: u.ProfilePic,
		Stats:      stats,
	}
}
