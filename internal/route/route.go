package route

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"terminal-terrace/registry/config"
	_ "terminal-terrace/registry/docs"
	"terminal-terrace/registry/internal/favorite"
	"terminal-terrace/registry/internal/github"
	"terminal-terrace/registry/internal/profile"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/spam"
	"terminal-terrace/registry/pkg/database"
)

func initRoute(r *gin.Engine, db *gorm.DB, rdb *database.RedisClient, s scheduler.Scheduler) {
	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")

	profile.SetupProfileRoutes(api, db, rdb)
	favorite.SetupFavoriteRoutes(api, db, rdb)
	spam.SetupSpamRoutes(api, db, rdb)
	github.SetupGithubRoutes(api, db, s)
}

func SetupRouter(db *gorm.DB, rdb *database.RedisClient, s scheduler.Scheduler) *gin.Engine {
	if config.Conf.Server.Mode != "" {
		gin.SetMode(config.Conf.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Conf.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r, db, rdb, s)

	return r
}
