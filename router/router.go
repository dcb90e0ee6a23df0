package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"hackathon-backend/events"
	"hackathon-backend/handler"
	"hackathon-backend/internal/background"
	"hackathon-backend/jwt"
	"hackathon-backend/mail"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

// Deps is everything the routes are served from.
type Deps struct {
	Store      *store.Store
	Tokens     *jwt.Tokens
	Mailer     *mail.Mailer
	Events     events.Publisher
	Background *background.Group

	Settings *handler.SettingsHandler
	Event    *handler.EventHandler

	AllowedOrigins []string
}

func New(d *Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.WithLogging())

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "hackathon-backend",
		})
	})

	auth := middleware.NewAuth(d.Tokens, d.Store)

	AuthRouters(router, handler.NewAuthHandler(d.Store, d.Tokens, d.Mailer, d.Events, d.Background, d.Settings))
	UserRouters(router, auth, handler.NewUserHandler(d.Store, d.Events, d.Background, d.Settings))
	ProjectRouters(router, auth, handler.NewProjectHandler(d.Store, d.Events, d.Background, d.Event))
	SettingsRouters(router, auth, d.Settings)
	TeamRouters(router, auth, handler.NewTeamHandler(d.Store.Teams))
	EventRouters(router, d.Event)
	CheckinRouters(router, auth, handler.NewCheckinHandler(d.Store, d.Events, d.Background, d.Event))

	return router
}

func AuthRouters(router *gin.Engine, h *handler.AuthHandler) {
	authRoute := router.Group("/auth")
	{
		authRoute.POST("/register", h.Register)
		authRoute.POST("/login", h.Login)
		authRoute.GET("/verify/:token", h.Verify)
		authRoute.POST("/resend-verification", h.ResendVerificationEmail)
		authRoute.POST("/reset-password", h.ResetPassword)
		authRoute.POST("/send-reset-email", h.SendPasswordResetEmail)
	}
}

func UserRouters(router *gin.Engine, auth *middleware.Auth, h *handler.UserHandler) {
	userRoute := router.Group("/users")
	{
		userRoute.GET("", auth.Admin(), h.List)
		userRoute.GET("/:id", auth.OwnerOrAdmin(), h.Get)
		userRoute.GET("/:id/team", auth.OwnerOrAdmin(), h.Team)
		userRoute.GET("/:id/status", auth.OwnerOrAdmin(), h.Status)
		userRoute.POST("/:id/admit", auth.Admin(), h.Admit)
		userRoute.POST("/:id/reject", auth.Admin(), h.Reject)
		userRoute.POST("/:id/confirm", auth.OwnerOrAdmin(), h.Confirm)
	}
}

func ProjectRouters(router *gin.Engine, auth *middleware.Auth, h *handler.ProjectHandler) {
	projectRoute := router.Group("/projects")
	{
		projectRoute.POST("", auth.Authenticated(), h.Create)
		projectRoute.GET("", auth.Admin(), h.List)

		projectRoute.POST("/prizes", auth.Admin(), h.CreatePrize)
		projectRoute.GET("/prizes", h.ListPrizes)
		projectRoute.GET("/prizes/:id", h.GetPrize)
		projectRoute.PATCH("/prizes/:id", auth.Admin(), h.UpdatePrize)
		projectRoute.DELETE("/prizes/:id", auth.Admin(), h.DeletePrize)
		projectRoute.PUT("/prizes/enter/:id", auth.ProjectOwnerOrAdmin(), h.EnterPrize)

		projectRoute.GET("/:id", auth.ProjectOwnerOrAdmin(), h.Get)
		projectRoute.PATCH("/:id", auth.ProjectOwnerOrAdmin(), h.Update)
		projectRoute.DELETE("/:id", auth.ProjectOwnerOrAdmin(), h.Delete)
	}
}

func SettingsRouters(router *gin.Engine, auth *middleware.Auth, h *handler.SettingsHandler) {
	settingsRoute := router.Group("/settings")
	{
		settingsRoute.GET("", auth.Admin(), h.Get)
		settingsRoute.PATCH("", auth.Admin(), h.Update)
	}
}

func TeamRouters(router *gin.Engine, auth *middleware.Auth, h *handler.TeamHandler) {
	router.GET("/teams/:id", auth.Authenticated(), h.Get)
}

func EventRouters(router *gin.Engine, h *handler.EventHandler) {
	router.GET("/events/current", h.GetCurrent)
}

func CheckinRouters(router *gin.Engine, auth *middleware.Auth, h *handler.CheckinHandler) {
	checkinRoute := router.Group("/check-in")
	{
		checkinRoute.PUT("", auth.CanCheckIn(), h.CheckIn)
		checkinRoute.GET("/items", auth.Authenticated(), h.Items)
		checkinRoute.POST("/items", auth.Admin(), h.CreateItem)
	}
}
