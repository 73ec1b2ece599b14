package spam

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/middleware"
	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/provider"
	"terminal-terrace/registry/pkg/database"
	"terminal-terrace/registry/pkg/response"
)

// SetupSpamRoutes 反垃圾相关路由，需要登录并持有 antispam 角色
// 流程内部仍会再检查一次权限
func SetupSpamRoutes(r *gin.RouterGroup, db *gorm.DB, rdb *database.RedisClient) {
	workflow := NewWorkflow(
		NewGormRegistry(db),
		provider.NewIndex(rdb),
		Config{
			Replacement:    config.Conf.Registry.SpamReplacement,
			PoisonDumpedAt: config.Conf.Registry.PoisonTime(),
		},
	)
	handler := NewSpamHandler(workflow)

	spammers := r.Group("/spammers")
	spammers.Use(middleware.JWTAuth(), middleware.RequireRole(userModel.RoleAntispam, response.NotAuthorized))
	{
		spammers.POST("/index-removal", handler.RetryIndexRemoval)
		spammers.POST("/:name", handler.MarkSpammer)
	}
}
