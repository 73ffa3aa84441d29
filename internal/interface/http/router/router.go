// Package router 注册全部HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// Options 路由配置
type Options struct {
	ImageDir      string // 本地存储目录，非空时以ImagePrefix对外提供静态访问
	ImagePrefix   string
	EnableSwagger bool
	CORS          config.CORSConfig
}

// New 创建Gin引擎并注册路由
//
//	/ping、/metrics、/swagger/*any
//	/api/v1/users/{register,login,logout}
//	/admin/books...（需要登录且角色为Admin）
func New(
	opts Options,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	auth *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics(), middleware.CORS(opts.CORS))

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.EnableSwagger {
		// 访问 /swagger/index.html 查看API文档（swag init生成）
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.ImageDir != "" && opts.ImagePrefix != "" {
		r.Static(opts.ImagePrefix, opts.ImageDir)
	}

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/logout", auth.RequireAuth(), userHandler.Logout)
	}

	admin := r.Group("/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
	{
		books := admin.Group("/books")
		books.GET("", bookHandler.Index)
		books.GET("/add", bookHandler.AddForm)
		books.POST("/add", bookHandler.Add)
		books.GET("/:id/edit", bookHandler.EditForm)
		books.POST("/:id/edit", bookHandler.Edit)
		books.POST("/:id/delete", bookHandler.Delete)
	}

	return r
}
