package database

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/model"
	"terminal-terrace/registry/pkg/database"
	"terminal-terrace/registry/pkg/rabbitmq"
)

const serviceName = "registry"

var (
	PostgresDB *gorm.DB
	Redis      *database.RedisClient
	Publisher  *rabbitmq.Publisher
)

// InitDatabase 初始化 PostgreSQL、Redis 和 RabbitMQ
// PostgreSQL 不可用时 panic；Redis 与 RabbitMQ 不可用只记录日志，后续请求会降级或重连
func InitDatabase() {
	initPostgres()
	initRedis()
	initRabbitMQ()
}

func initPostgres() {
	databaseConf := config.Conf.Database

	// 设置默认日志级别
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     serviceName,
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)
	if err != nil {
		panic(err)
	}

	// 初始化数据库表
	if err := model.InitTable(PostgresDB); err != nil {
		panic(err)
	}
}

func initRedis() {
	redisConf := config.Conf.Redis

	var err error
	Redis, err = database.InitRedis(&database.RedisConfig{
		ServiceName: serviceName,
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	})
	if err != nil {
		slog.Warn("Redis 暂不可用，收藏功能将降级", "error", err)
	}
}

func initRabbitMQ() {
	mqConf := config.Conf.RabbitMQ

	var err error
	Publisher, err = rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
		URL:          mqConf.URL,
		ExchangeName: mqConf.Exchange,
		Durable:      true,
	})
	if err != nil {
		slog.Warn("RabbitMQ 暂不可用，任务消息将在下次发布时重试", "error", err)
	}
	if Publisher == nil {
		panic(err)
	}
}

// Close 释放连接
func Close() {
	if Publisher != nil {
		if err := Publisher.Close(); err != nil {
			slog.Warn("关闭 RabbitMQ 连接失败", "error", err)
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
