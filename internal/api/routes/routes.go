package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/api/handlers"
	"github.com/skillatlas/skillatlas/internal/api/middleware"
	"github.com/skillatlas/skillatlas/internal/services"
)

type Deps struct {
	Sessions services.SessionService

	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	CV       *handlers.CVHandler
	Role     *handlers.RoleHandler
	Roadmap  *handlers.RoadmapHandler
	Progress *handlers.ProgressHandler
	Chat     *handlers.ChatHandler
	ChatWS   *handlers.ChatWSHandler
	Graph    *handlers.GraphHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/api/register", d.Auth.Register)
	r.POST("/api/login", d.Auth.Login)

	// Protected routes (session cookie)
	auth := r.Group("/api")
	auth.Use(middleware.SessionAuth(d.Sessions))

	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/auth/user", d.Auth.Me)

	auth.GET("/user/stats", d.User.Stats)
	auth.GET("/user/activity", d.User.Activity)

	auth.POST("/cv/upload", d.CV.Upload)
	auth.GET("/cv/latest", d.CV.Latest)
	auth.GET("/cv/analysis", d.CV.Analysis)

	// register the static path before the param route
	auth.GET("/roles/categories", d.Role.Categories)
	auth.GET("/roles", d.Role.List)
	auth.GET("/roles/:id", d.Role.Get)
	auth.GET("/skills", d.Role.Skills)

	auth.GET("/roadmap", d.Roadmap.Latest)
	auth.POST("/roadmap/generate", d.Roadmap.Generate)

	auth.GET("/skills/progress", d.Progress.List)
	auth.POST("/skills/progress", d.Progress.Update)

	auth.GET("/chat/messages", d.Chat.Messages)
	auth.POST("/chat/send", d.Chat.Send)

	auth.GET("/graph", d.Graph.Get)

	// WebSocket
	auth.GET("/chat/ws", d.ChatWS.Stream)
}
