// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course-qa-go/internal/config"
	"course-qa-go/internal/handler"
	"course-qa-go/internal/middleware"
	"course-qa-go/internal/model"
	"course-qa-go/internal/pipeline"
	"course-qa-go/internal/question"
	"course-qa-go/internal/repository"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/database"
	"course-qa-go/pkg/kafka"
	"course-qa-go/pkg/llm"
	"course-qa-go/pkg/log"
	"course-qa-go/pkg/storage"
	"course-qa-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 加载题目目录
	catalog, err := question.Load(cfg.Questions.File)
	if err != nil {
		log.Fatal("加载题目目录失败", err)
	}
	log.Infof("题目目录加载成功，共 %d 题", catalog.Count())

	// 4. 初始化数据库、Redis、对象存储和消息队列
	database.InitMySQL(cfg.Database.MySQL.DSN, &model.User{}, &model.Answer{}, &model.Interaction{})
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	kafka.InitProducer(cfg.Kafka)

	// 5. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	answerRepo := repository.NewAnswerRepository(database.DB)
	interactionRepo := repository.NewInteractionRepository(database.DB)
	sessionRepo := repository.NewSessionRepository(database.RDB)

	// 6. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.AI)
	publisher := kafka.NewPublisher()
	userService := service.NewUserService(userRepo, jwtManager)
	answerService := service.NewAnswerService(answerRepo, catalog, publisher)
	sessionService := service.NewSessionService(sessionRepo, answerService, catalog)
	playgroundService := service.NewPlaygroundService(interactionRepo, llmClient, catalog, publisher, cfg.AI)
	exportService := service.NewExportService(answerRepo, interactionRepo, cfg.MinIO.BucketName)

	// 7. 启动后台 Kafka 消费者，把 CSV 快照镜像到对象存储
	processor := pipeline.NewProcessor(exportService, cfg.MinIO)
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Question 路由组：目录与会话导航，需要认证
		questions := apiV1.Group("/questions")
		questions.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			questionHandler := handler.NewQuestionHandler(catalog, sessionService)
			questions.GET("", questionHandler.List)
			questions.GET("/current", questionHandler.Current)
			questions.POST("/advance", questionHandler.Advance)
			questions.POST("/retreat", questionHandler.Retreat)
		}

		// Answer 路由组，需要认证
		answers := apiV1.Group("/answers")
		answers.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			answerHandler := handler.NewAnswerHandler(answerService, sessionService, exportService)
			answers.POST("", answerHandler.Submit)
			answers.GET("", answerHandler.List)
			answers.GET("/progress", answerHandler.GetProgress)
			answers.GET("/export", answerHandler.ExportCSV)
			answers.GET("/archive-url", answerHandler.ArchiveURL)
		}

		// Playground 路由组，需要认证
		playground := apiV1.Group("/playground")
		playground.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			playgroundHandler := handler.NewPlaygroundHandler(playgroundService, exportService)
			playground.POST("/run", playgroundHandler.Run)
			playground.GET("/interactions", playgroundHandler.ListInteractions)
			playground.GET("/interactions/export", playgroundHandler.ExportCSV)
		}

		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtManager, userService), middleware.AdminAuthMiddleware())
		{
			adminHandler := handler.NewAdminHandler(playgroundService, exportService, userService)
			admin.GET("/interactions", adminHandler.ListInteractions)
			admin.GET("/interactions/export", adminHandler.ExportInteractions)
			admin.GET("/users/list", adminHandler.ListUsers)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
