package repository

import (
	"context"

	"portfolio-site/internal/domain"
)

// AccountRepository 定义了账户数据的存储和检索操作。
type AccountRepository interface {
	// FindByUsername 根据用户名查找账户。
	// 如果账户不存在，应返回 ErrAccountNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	// FindByEmail 根据邮箱查找账户。
	// 如果账户不存在，应返回 ErrAccountNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	// FindByID 根据账户 ID 查找账户。
	// 如果账户不存在，应返回 ErrAccountNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Account, error)

	// Save 保存账户信息。
	// 如果账户已存在 (基于 ID)，则更新；否则创建新账户。
	// 违反用户名或邮箱唯一约束时返回 ErrDuplicateEntry。
	Save(ctx context.Context, account *domain.Account) error

	// Count 返回账户总数，用于启动时判断是否需要写入种子数据。
	Count(ctx context.Context) (int64, error)
}
