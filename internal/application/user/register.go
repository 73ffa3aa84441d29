package user

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/user"
	"github.com/xiebiao/bookstore-admin/pkg/logger"
)

// RegisterUseCase 用户注册用例
// 注册的用户角色为User，不能进入管理后台；管理员账号由配置在启动时创建
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// SeedAdminUseCase 启动时确保管理员账号存在
type SeedAdminUseCase struct {
	userService user.Service
}

func NewSeedAdminUseCase(userService user.Service) *SeedAdminUseCase {
	return &SeedAdminUseCase{userService: userService}
}

// Execute email为空时跳过；账号已存在时不修改密码
func (uc *SeedAdminUseCase) Execute(ctx context.Context, email, password, nickname string) error {
	if email == "" {
		return nil
	}
	if nickname == "" {
		nickname = "Администратор"
	}

	u, err := uc.userService.EnsureAdmin(ctx, email, password, nickname)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		logger.Warn("管理员邮箱已被普通用户注册", nil, map[string]interface{}{"email": email})
		return nil
	}
	logger.Info("管理员账号就绪", map[string]interface{}{"user_id": u.ID, "email": email})
	return nil
}
