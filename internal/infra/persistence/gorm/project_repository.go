package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"portfolio-site/internal/domain"
)

// GormProjectRepository 是 ProjectRepository 接口的 GORM 实现
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository 创建 GormProjectRepository 实例
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	if db == nil {
		panic("database connection cannot be nil for GormProjectRepository")
	}
	return &GormProjectRepository{db: db}
}

// List 实现返回作品集项目，limit > 0 时只取前 limit 条
func (r *GormProjectRepository) List(ctx context.Context, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	query := r.db.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("gorm: list projects (limit %d): %w", limit, err)
	}
	return projects, nil
}

// SaveAll 实现批量写入项目，仅供种子数据使用
func (r *GormProjectRepository) SaveAll(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&projects).Error; err != nil {
		return fmt.Errorf("gorm: save %d projects: %w", len(projects), err)
	}
	return nil
}

// Count 实现统计项目总数
func (r *GormProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count projects: %w", err)
	}
	return count, nil
}
