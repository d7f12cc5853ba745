package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/todo-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, todoHandler *handler.TodoHandler, auth middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(auth, logger)

	// Public user routes
	r.POST("/users", authHandler.Register)
	r.POST("/users/login", authHandler.Login)

	// Protected user routes
	me := r.Group("/users/me", authMW)
	me.GET("", authHandler.Me)
	me.DELETE("/token", authHandler.Logout)

	// Protected todo routes
	todos := r.Group("/todos", authMW)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.GetByID)
	todos.PATCH("/:id", todoHandler.UpdateByID)
	todos.DELETE("/:id", todoHandler.DeleteByID)

	return r
}
