package github

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/middleware"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/user"
)

// SetupGithubRoutes GitHub 相关路由，均需登录
func SetupGithubRoutes(r *gin.RouterGroup, db *gorm.DB, s scheduler.Scheduler) {
	handler := NewGithubHandler(NewService(user.NewUserRepository(db), s))

	authed := r.Group("")
	authed.Use(middleware.JWTAuth())
	{
		authed.POST("/trigger-github-sync/", handler.TriggerSync)
		authed.POST("/oauth/github/disconnect", handler.Disconnect)
	}
}
