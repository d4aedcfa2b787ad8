package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/quizzzy/internal/api/http/handler"
	"github.com/dtroode/quizzzy/internal/api/http/middleware"
	"github.com/dtroode/quizzzy/internal/logger"
	"github.com/dtroode/quizzzy/internal/model"
	"github.com/dtroode/quizzzy/internal/service"
)

// Router wires the dashboard managers to HTTP routes.
type Router struct {
	authService     *service.Auth
	quizService     *service.Quiz
	userService     *service.User
	platformService *service.Platform
	streamer        handler.Streamer
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a new Router.
func New(
	authService *service.Auth,
	quizService *service.Quiz,
	userService *service.User,
	platformService *service.Platform,
	streamer handler.Streamer,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		quizService:     quizService,
		userService:     userService,
		platformService: platformService,
		streamer:        streamer,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the gin engine with logging, recovery and every route.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	event := middleware.NewEvent(r.contextManager)

	e := gin.New()
	e.Use(logging.Handle, gin.Recovery())

	e.GET("/health", handler.Health)

	platform := handler.NewPlatform(r.platformService, r.streamer, r.contextManager, r.logger)
	user := handler.NewUser(r.userService, r.contextManager, r.logger)

	// every frame and notice goes to every connected client
	e.GET("/ws", platform.Stream)
	e.GET("/media/*key", user.Media)

	api := e.Group("/api", event.Handle)
	r.registerAuthRoutes(api)
	r.registerQuizRoutes(api)
	r.registerUserRoutes(api, user)

	api.GET("/init", platform.Init)
	api.GET("/views/:view", platform.View)

	return e
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup) {
	auth := handler.NewAuth(r.authService, r.userService, r.contextManager, r.logger)

	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.Logout)
	api.GET("/session", auth.Session)
}

func (r *Router) registerQuizRoutes(api *gin.RouterGroup) {
	quiz := handler.NewQuiz(r.quizService, r.contextManager, r.logger)

	quizzes := api.Group("/quizzes")
	quizzes.POST("", quiz.Create)
	quizzes.GET("/stats", quiz.Stats)
	quizzes.GET("/recent", quiz.Recent)
	quizzes.GET("/popular", quiz.Popular)
	quizzes.GET("/search", quiz.Search)
	quizzes.GET("/:id", quiz.Get)
}

func (r *Router) registerUserRoutes(api *gin.RouterGroup, user *handler.User) {
	api.GET("/summary", user.Summary)

	api.PATCH("/profile", user.UpdateProfile)
	api.POST("/profile/picture", user.UploadPicture)

	notifications := api.Group("/notifications")
	notifications.GET("", user.Notifications)
	notifications.POST("/read-all", user.MarkAllRead)
	notifications.POST("/:id/read", user.MarkRead)
	notifications.DELETE("", user.ClearNotifications)

	students := api.Group("/students")
	students.GET("", user.Students)
	students.GET("/export", user.Export)
	students.GET("/:id", user.Student)
	students.POST("/:id/promote", user.Promote)

	api.POST("/users/:id/messages", user.SendMessage)
}
