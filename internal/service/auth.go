package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
)

// Auth owns the user roster and the session.
//
// The session lives both in memory and in the store. Memory is filled lazily
// from the store and the two are not kept in sync otherwise.
type Auth struct {
	users     model.Repository[model.User]
	sessions  model.SessionStore
	notifier  model.Notifier
	publisher model.ActivityPublisher
	validate  *validator.Validate
	logger    *logger.Logger
	seedDemo  bool
	now       func() time.Time

	mu       sync.Mutex
	current  *model.User
	loggedIn bool
}

func NewAuth(
	users model.Repository[model.User],
	sessions model.SessionStore,
	notifier model.Notifier,
	publisher model.ActivityPublisher,
	logger *logger.Logger,
	seedDemo bool,
) *Auth {
	return &Auth{
		users:     users,
		sessions:  sessions,
		notifier:  notifier,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
		seedDemo:  seedDemo,
		now:       time.Now,
	}
}

// roster loads every user. A missing or malformed roster is replaced by the
// demo roster (or an empty one when seeding is off).
func (a *Auth) roster(ctx context.Context) ([]model.User, error) {
	users, err := a.users.All(ctx)
	switch {
	case err == nil:
		return users, nil
	case errors.Is(err, model.ErrNotFound):
		if !a.seedDemo {
			return []model.User{}, nil
		}
		a.logger.Info("Auth service: no roster stored, seeding demo users")
	case errors.Is(err, model.ErrCorrupt):
		a.logger.Error("Auth service: stored roster is malformed, discarding it",
			"error", err.Error())
	default:
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users = []model.User{}
	if a.seedDemo {
		users = DemoUsers(a.now())
	}
	if err := a.users.ReplaceAll(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	return users, nil
}

func findUser(users []model.User, pred func(model.User) bool) int {
	for i, u := range users {
		if pred(u) {
			return i
		}
	}
	return -1
}

func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email,
		"role", params.Role)

	if err := a.validate.Struct(params); err != nil {
		alert(ctx, a.notifier, model.NoticeError, requiredFieldsMessage)
		return model.User{}, validationError(err, requiredFieldsMessage)
	}

	users, err := a.roster(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to load roster",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, err
	}

	if findUser(users, func(u model.User) bool { return u.Email == params.Email }) >= 0 {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		alert(ctx, a.notifier, model.NoticeError, "User with this email already exists!")
		return model.User{}, model.ErrEmailTaken
	}

	now := a.now()
	level := model.LevelNone
	if params.Role == model.RoleStudent {
		level = model.LevelBeginner
	}

	user := model.User{
		ID:            newID("user"),
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Email:         params.Email,
		Password:      params.Password,
		Role:          params.Role,
		Bio:           params.Bio,
		CreatedAt:     now,
		LastActive:    now,
		Level:         level,
		Notifications: []model.Notification{},
		IsActive:      true,
	}

	if err := a.users.Upsert(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := a.startSession(ctx, user); err != nil {
		return model.User{}, err
	}

	alert(ctx, a.notifier, model.NoticeSuccess,
		fmt.Sprintf("Welcome to Quizzzy, %s! Your account has been created successfully.", user.FirstName))

	publish(ctx, a.publisher, a.logger, model.Activity{
		Type:       model.ActivitySignedUp,
		ActorID:    user.ID,
		SubjectID:  user.ID,
		Attributes: map[string]string{"role": string(user.Role)},
		OccurredAt: now,
	})

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user.Clone(), nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	users, err := a.roster(ctx)
	if err != nil {
		return model.User{}, err
	}

	i := findUser(users, func(u model.User) bool {
		return u.Email == email && u.Password == password && u.IsActive
	})
	if i < 0 {
		a.logger.Info("Auth service: invalid credentials",
			"email", email)
		alert(ctx, a.notifier, model.NoticeError, "Invalid email or password")
		return model.User{}, model.ErrInvalidCredentials
	}

	users[i].LastActive = a.now()
	if err := a.users.ReplaceAll(ctx, users); err != nil {
		return model.User{}, fmt.Errorf("failed to update last active: %w", err)
	}

	user := users[i]
	if err := a.startSession(ctx, user); err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return user.Clone(), nil
}

// Logout clears the session. Calling it without a session is a no-op.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	if a.current != nil {
		a.logger.Info("Auth service: user logged out",
			"user_id", a.current.ID)
	}
	a.current = nil
	a.loggedIn = false
	a.mu.Unlock()

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the session user, reading the stored snapshot when
// memory is empty. The isLoggedIn marker is not consulted.
func (a *Auth) CurrentUser(ctx context.Context) (model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		return a.current.Clone(), nil
	}

	user, _, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUnauthenticated
		}
		if errors.Is(err, model.ErrCorrupt) {
			a.logger.Error("Auth service: stored session is malformed",
				"error", err.Error())
			return model.User{}, model.ErrUnauthenticated
		}
		return model.User{}, fmt.Errorf("failed to load session: %w", err)
	}

	a.current = &user
	a.loggedIn = true
	return user.Clone(), nil
}

// IsAuthenticated needs both the stored snapshot and isLoggedIn == "true" when
// memory is empty.
func (a *Auth) IsAuthenticated(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loggedIn {
		return true, nil
	}

	user, loggedIn, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrCorrupt) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load session: %w", err)
	}
	if !loggedIn {
		return false, nil
	}

	a.current = &user
	a.loggedIn = true
	return true, nil
}

// ActingUser returns the roster entry of the session user, falling back to the
// session snapshot when the roster no longer has it.
func (a *Auth) ActingUser(ctx context.Context) (model.User, error) {
	current, err := a.CurrentUser(ctx)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.GetUserByID(ctx, current.ID)
	if errors.Is(err, model.ErrNotFound) {
		return current, nil
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (a *Auth) startSession(ctx context.Context, user model.User) error {
	if err := a.sessions.Save(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to save session",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to save session: %w", err)
	}

	a.mu.Lock()
	snapshot := user.Clone()
	a.current = &snapshot
	a.loggedIn = true
	a.mu.Unlock()

	return nil
}

// refreshSession replaces the session snapshot when user is the session user.
func (a *Auth) refreshSession(ctx context.Context, user model.User) error {
	a.mu.Lock()
	same := a.current != nil && a.current.ID == user.ID
	if same {
		snapshot := user.Clone()
		a.current = &snapshot
	}
	a.mu.Unlock()

	if !same {
		return nil
	}
	if err := a.sessions.Refresh(ctx, user); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return nil
}

// mutateUser applies fn to one roster entry and writes the roster back.
func (a *Auth) mutateUser(ctx context.Context, userID string, fn func(u *model.User) error) (model.User, error) {
	user, err := a.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	user = user.Clone()
	if err := fn(&user); err != nil {
		return model.User{}, err
	}

	if err := a.users.Upsert(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("failed to save users: %w", err)
	}

	if err := a.refreshSession(ctx, user); err != nil {
		return model.User{}, err
	}

	return user.Clone(), nil
}

// UpdateProfile merges the set fields of upd and refreshes lastActive.
func (a *Auth) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (model.User, error) {
	user, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		upd.Apply(u)
		u.LastActive = a.now()
		return nil
	})
	if err != nil {
		a.logger.Debug("Auth service: profile update failed",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, err
	}

	a.logger.Info("Auth service: profile updated",
		"user_id", userID)
	return user, nil
}

func (a *Auth) UpdateUserRole(ctx context.Context, userID string, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, model.NewValidationError("Unknown role", map[string]string{"role": "oneof"})
	}

	var previous model.Role
	user, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		previous = u.Role
		u.Role = role
		u.LastActive = a.now()
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	publish(ctx, a.publisher, a.logger, model.Activity{
		Type:       model.ActivityRoleChanged,
		SubjectID:  userID,
		Attributes: map[string]string{"from": string(previous), "to": string(role)},
		OccurredAt: a.now(),
	})

	a.logger.Info("Auth service: role updated",
		"user_id", userID,
		"role", role)
	return user, nil
}

func (a *Auth) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	if _, err := a.roster(ctx); err != nil {
		return model.User{}, err
	}

	user, err := a.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (a *Auth) filterUsers(ctx context.Context, pred func(model.User) bool) ([]model.User, error) {
	if _, err := a.roster(ctx); err != nil {
		return nil, err
	}

	users, err := a.users.List(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (a *Auth) UsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return a.filterUsers(ctx, func(u model.User) bool { return u.Role == role })
}

func (a *Auth) AllStudents(ctx context.Context) ([]model.User, error) {
	return a.UsersByRole(ctx, model.RoleStudent)
}

// AllTeachers includes admins.
func (a *Auth) AllTeachers(ctx context.Context) ([]model.User, error) {
	return a.filterUsers(ctx, func(u model.User) bool { return u.CanAuthor() })
}

// AddNotification prepends a notification and keeps the newest MaxNotifications.
func (a *Auth) AddNotification(ctx context.Context, userID string, n model.NewNotification) (model.Notification, error) {
	notification := model.Notification{
		ID:        newID("notif"),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Content:   n.Content,
		SenderID:  n.SenderID,
		QuizID:    n.QuizID,
		Read:      false,
		Timestamp: a.now(),
	}

	_, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		list := make([]model.Notification, 0, len(u.Notifications)+1)
		list = append(list, notification)
		list = append(list, u.Notifications...)
		if len(list) > model.MaxNotifications {
			list = list[:model.MaxNotifications]
		}
		u.Notifications = list
		return nil
	})
	if err != nil {
		return model.Notification{}, err
	}

	publish(ctx, a.publisher, a.logger, model.Activity{
		Type:       model.ActivityNotification,
		ActorID:    n.SenderID,
		SubjectID:  userID,
		Attributes: map[string]string{"type": string(n.Type), "title": n.Title},
		OccurredAt: notification.Timestamp,
	})

	return notification, nil
}

func (a *Auth) MarkNotificationAsRead(ctx context.Context, userID, notificationID string) error {
	_, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		for i := range u.Notifications {
			if u.Notifications[i].ID == notificationID {
				u.Notifications[i].Read = true
				return nil
			}
		}
		return model.ErrNotFound
	})
	return err
}

func (a *Auth) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		for i := range u.Notifications {
			u.Notifications[i].Read = true
		}
		return nil
	})
	return err
}

func (a *Auth) ClearNotifications(ctx context.Context, userID string) error {
	_, err := a.mutateUser(ctx, userID, func(u *model.User) error {
		u.Notifications = []model.Notification{}
		return nil
	})
	return err
}

// ActiveUsersCount counts users with the isActive flag, regardless of recency.
func (a *Auth) ActiveUsersCount(ctx context.Context) (int, error) {
	users, err := a.filterUsers(ctx, func(u model.User) bool { return u.IsActive })
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// NewUsersThisMonth counts users created in the current calendar month.
func (a *Auth) NewUsersThisMonth(ctx context.Context) (int, error) {
	now := a.now()
	users, err := a.filterUsers(ctx, func(u model.User) bool {
		created := u.CreatedAt.In(now.Location())
		return created.Month() == now.Month() && created.Year() == now.Year()
	})
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// SearchUsers matches active users by name, email or bio, case-insensitively.
func (a *Auth) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	term := strings.ToLower(query)
	return a.filterUsers(ctx, func(u model.User) bool {
		if !u.IsActive {
			return false
		}
		for _, field := range []string{u.FirstName, u.LastName, u.Email, u.Bio} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

func (a *Auth) UserStats(ctx context.Context, userID string) (model.UserStats, error) {
	user, err := a.GetUserByID(ctx, userID)
	if err != nil {
		return model.UserStats{}, err
	}

	level := user.Level
	if level == "" {
		level = model.LevelBeginner
	}

	return model.UserStats{
		TotalQuizzesTaken: user.QuizzesTaken,
		AverageScore:      user.AverageScore,
		Level:             level,
		JoinDate:          user.CreatedAt,
		LastActive:        user.LastActive,
		DaysActive:        int(a.now().Sub(user.CreatedAt) / (24 * time.Hour)),
	}, nil
}
