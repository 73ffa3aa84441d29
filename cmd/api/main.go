package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/storage"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/router"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
	"github.com/xiebiao/bookstore-admin/pkg/metrics"
	"github.com/xiebiao/bookstore-admin/pkg/mq"
	"github.com/xiebiao/bookstore-admin/pkg/tracing"
)

// @title        Bookstore Admin API
// @version      1.0
// @description  图书管理后台：图书增删改查、封面上传
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire版本）
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if err := run(cfg); err != nil {
		logger.L().Fatal().Err(err).Msg("服务异常退出")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("配置加载成功", map[string]interface{}{
		"port":     cfg.Server.Port,
		"mode":     cfg.Server.Mode,
		"database": fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName),
		"redis":    cfg.Redis.Addr(),
		"storage":  cfg.Storage.Driver,
	})

	metrics.InitMetrics()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("关闭Tracer失败", err, nil)
			}
		}()
	}

	// 基础设施
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return err
	}
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	files, err := storage.NewFileService(ctx, cfg)
	if err != nil {
		return err
	}

	// 依赖注入链：Repository ← Service ← UseCase ← Handler
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	genreRepo := redis.NewCachedGenreRepository(mysql.NewGenreRepository(db), redisClient, cfg.Workflow.GenreCacheTTL)
	sessionStore := redis.NewSessionStore(redisClient)
	flashStore := redis.NewFlashStore(redisClient, cfg.Workflow.FlashTTL)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	userService := user.NewService(userRepo)
	if err := appuser.NewSeedAdminUseCase(userService).Execute(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Nickname); err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}

	var events appbook.EventPublisher
	if cfg.Events.Enabled {
		publisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, "topic")
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
	}

	bookOpts := bookOptions(cfg, events)
	bookHandler := handler.NewBookHandler(
		appbook.NewListBooksUseCase(bookRepo, bookOpts),
		appbook.NewAddBookUseCase(bookRepo, genreRepo, files, bookOpts),
		appbook.NewUpdateBookUseCase(bookRepo, genreRepo, files, bookOpts),
		appbook.NewDeleteBookUseCase(bookRepo, files, bookOpts),
		flashStore,
	)
	userHandler := handler.NewUserHandler(
		appuser.NewRegisterUseCase(userService),
		appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire),
		appuser.NewLogoutUseCase(sessionStore, jwtManager.AccessTokenTTL()),
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(routerOptions(cfg), userHandler, bookHandler, authMiddleware)

	return serve(ctx, cfg, engine)
}

// serve 启动HTTP服务，收到退出信号后优雅关闭
func serve(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动成功", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("正在关闭服务", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// bookOptions events为nil时不发布图书事件
func bookOptions(cfg *config.Config, events appbook.EventPublisher) appbook.Options {
	return appbook.Options{
		Timeout:           cfg.Workflow.Timeout,
		StrictDeleteFlash: cfg.Workflow.StrictDeleteFlash,
		ImageBaseURL:      cfg.Storage.PublicURLPrefix,
		Events:            events,
	}
}

func routerOptions(cfg *config.Config) router.Options {
	opts := router.Options{
		ImagePrefix:   cfg.Storage.PublicURLPrefix,
		EnableSwagger: cfg.Server.Mode != "release",
		CORS:          cfg.CORS,
	}
	if cfg.Storage.Driver == config.StorageLocal {
		opts.ImageDir = cfg.Storage.LocalDir
	}
	return opts
}
