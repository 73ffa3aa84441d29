//go:build wireinject
// +build wireinject

// Wire依赖注入配置（与main.go中的手动注入等价）
// 生成代码：wire gen ./cmd/api

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/storage"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/router"
	"github.com/xiebiao/bookstore-admin/pkg/jwt"
	"github.com/xiebiao/bookstore-admin/pkg/mq"
)

// infrastructureSet 配置、数据库、Redis、文件存储
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	provideFileService,
)

// repositorySet 仓储与Redis存储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	provideGenreRepository,
	redis.NewSessionStore,
	provideFlashStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(handler.FlashStore), new(*redis.FlashStore)),
)

var applicationSet = wire.NewSet(
	user.NewService,
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	provideEventPublisher,
	bookOptions,
	appbook.NewListBooksUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	routerOptions,
	router.New,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideFileService(ctx context.Context, cfg *config.Config) (file.Service, error) {
	return storage.NewFileService(ctx, cfg)
}

func provideGenreRepository(db *gorm.DB, client *goredis.Client, cfg *config.Config) genre.Repository {
	return redis.NewCachedGenreRepository(mysql.NewGenreRepository(db), client, cfg.Workflow.GenreCacheTTL)
}

func provideFlashStore(client *goredis.Client, cfg *config.Config) *redis.FlashStore {
	return redis.NewFlashStore(client, cfg.Workflow.FlashTTL)
}

// provideEventPublisher 未启用时返回nil（不发布事件）
func provideEventPublisher(cfg *config.Config) (appbook.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return nil, func() {}, nil
	}
	publisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, "topic")
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { publisher.Close() }, nil
}

func provideLoginUseCase(svc user.Service, manager *jwt.Manager, sessions appuser.SessionStore, cfg *config.Config) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(svc, manager, sessions, cfg.JWT.RefreshTokenExpire)
}

func provideLogoutUseCase(sessions appuser.SessionStore, manager *jwt.Manager) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessions, manager.AccessTokenTTL())
}

// InitializeApp 组装Gin引擎（管理员初始化、Tracer等启动步骤仍在main.go中完成）
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
