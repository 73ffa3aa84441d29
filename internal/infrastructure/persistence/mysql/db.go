package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-admin/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构并写入初始分类
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(mysql.Open(cfg.Database.DSN()), cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	logger.Info("数据库连接成功", map[string]interface{}{"host": cfg.Database.Host, "db": cfg.Database.DBName})

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := SeedGenres(db, DefaultGenres); err != nil {
		return nil, fmt.Errorf("初始化分类失败: %w", err)
	}

	return db, nil
}

// Open 使用指定方言打开连接（测试中传入SQLite方言）
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引/外键冲突转换为gorm.ErrDuplicatedKey/ErrForeignKeyViolated
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Millisecond)
		},
	})
}

// Migrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&GenreModel{},
		&BookModel{},
	)
}

// DefaultGenres 初始分类
var DefaultGenres = []string{
	"Роман",
	"Поэзия",
	"Фантастика",
	"Детектив",
	"Научная литература",
}

// SeedGenres 分类表为空时写入初始分类（已有数据则跳过）
func SeedGenres(db *gorm.DB, names []string) error {
	var count int64
	if err := db.Model(&GenreModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	models := make([]GenreModel, 0, len(names))
	for _, name := range names {
		models = append(models, GenreModel{Name: name})
	}
	return db.Create(&models).Error
}

// UserModel GORM用户模型
// 说明：domain/user/entity.go是领域实体，不依赖GORM，Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Role      string         `gorm:"size:20;not null;default:User;comment:角色（Admin/User）"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// GenreModel GORM分类模型
type GenreModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
}

func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用decimal(10,2)存储(避免浮点数精度问题)
// 2. GenreID外键关联genres表,分类被引用时不能删除
// 3. 删除为物理删除,图书删除后封面文件一并删除
type BookModel struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:100;not null;comment:书名"`
	AuthorName string          `gorm:"size:100;not null;comment:作者"`
	Image      string          `gorm:"size:255;comment:封面文件名"`
	GenreID    uint            `gorm:"index;not null;comment:分类ID"`
	Genre      GenreModel      `gorm:"foreignKey:GenreID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	CreatedAt  time.Time       `gorm:"comment:创建时间"`
	UpdatedAt  time.Time       `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}
