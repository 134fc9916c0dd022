// Package gormpersistence 提供 repository 接口的 GORM 实现。
package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings" // 用于检查唯一约束错误字符串 (临时方案)

	"gorm.io/gorm"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"
)

// GormAccountRepository 是 AccountRepository 接口的 GORM 实现
type GormAccountRepository struct {
	db *gorm.DB // 依赖 GORM DB 连接
}

// NewGormAccountRepository 创建 GormAccountRepository 实例
// db *gorm.DB 通过依赖注入传入
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	if db == nil {
		// 早期失败比运行时 panic 更好
		panic("database connection cannot be nil for GormAccountRepository")
	}
	return &GormAccountRepository{db: db}
}

// FindByUsername 实现根据用户名查找账户
func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error

	if err != nil {
		// 检查是否是记录未找到错误
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 映射为定义的仓库层错误
			return nil, repository.ErrAccountNotFound
		}
		// 对于其他数据库错误，包装原始错误并返回
		return nil, fmt.Errorf("gorm: find account by username '%s': %w", username, err)
	}
	return &account, nil
}

// FindByEmail 实现根据邮箱查找账户
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("gorm: find account by email '%s': %w", email, err)
	}
	return &account, nil
}

// FindByID 实现根据账户 ID 查找账户
func (r *GormAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	// GORM 会自动根据主键查找
	err := r.db.WithContext(ctx).First(&account, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("gorm: find account by id %d: %w", id, err)
	}
	return &account, nil
}

// Save 实现保存账户信息（创建或更新）
// GORM 的 Save 方法会根据主键是否为零值决定是 INSERT 还是 UPDATE。
func (r *GormAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	result := r.db.WithContext(ctx).Save(account)
	err := result.Error

	if err != nil {
		// 唯一约束冲突是注册并发竞争的最终裁决，必须映射为明确的仓库错误
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save account (id: %d, username: %s): %w", account.ID, account.Username, err)
	}
	return nil
}

// Count 实现统计账户总数
func (r *GormAccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count accounts: %w", err)
	}
	return count, nil
}

// isDuplicateEntryError 是一个临时的辅助函数，用于检查常见的唯一约束错误字符串。
// 强烈建议替换为特定数据库驱动的错误检查。
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// 常见的错误信息片段
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
