package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/database"
	"terminal-terrace/registry/internal/favorite"
	"terminal-terrace/registry/internal/grpc"
	"terminal-terrace/registry/internal/provider"
	"terminal-terrace/registry/internal/route"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/pkg/logger"
)

// @title Registry API
// @version 1.0
// @description 包仓库用户相关接口：主页、收藏、反垃圾与 GitHub 同步
// @BasePath /
func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化日志
	closer, err := logger.Init(logger.Config{
		Level:  config.Conf.Log.Level,
		Format: config.Conf.Log.Format,
		Output: config.Conf.Log.Output,
		Path:   config.Conf.Log.Path,
	})
	if err != nil {
		panic(err)
	}
	defer closer.Close()

	// 3. 初始化数据库、Redis、RabbitMQ
	database.InitDatabase()
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs := scheduler.NewJobScheduler(
		scheduler.NewJobRepository(database.PostgresDB),
		database.Publisher,
		config.Conf.RabbitMQ.RoutingKey,
	)

	// 4. gRPC 健康检查
	grpcServer, err := grpc.NewServer(config.Conf.GRPC.Port, map[string]grpc.Pinger{
		"registry.favorites": favorite.NewStore(database.Redis),
		"registry.provider":  provider.NewIndex(database.Redis),
	})
	if err != nil {
		panic(err)
	}
	go grpcServer.Watch(ctx, 15*time.Second)
	go func() {
		slog.Info("gRPC 服务启动", "addr", grpcServer.GetAddr())
		if err := grpcServer.Start(); err != nil {
			slog.Error("gRPC 服务退出", "error", err)
		}
	}()

	// 5. HTTP 服务
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port),
		Handler:      route.SetupRouter(database.PostgresDB, database.Redis, jobs),
		ReadTimeout:  config.Conf.Server.ReadTimeout,
		WriteTimeout: config.Conf.Server.WriteTimeout,
	}
	go func() {
		slog.Info("HTTP 服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP 服务异常退出", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP 服务关闭失败", "error", err)
	}
	grpcServer.Stop()
	// 等待已发起的任务消息发布完成
	jobs.Wait()
}
