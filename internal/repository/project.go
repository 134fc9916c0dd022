package repository

import (
	"context"

	"portfolio-site/internal/domain"
)

// ProjectRepository 定义了作品集项目的存储和检索操作。
// 项目在站点内只读，写入只发生在启动时的种子数据。
type ProjectRepository interface {
	// List 返回作品集项目，limit > 0 时只取前 limit 条。
	List(ctx context.Context, limit int) ([]domain.Project, error)

	// SaveAll 批量写入项目，仅供启动时的种子数据使用。
	SaveAll(ctx context.Context, projects []domain.Project) error

	// Count 返回项目总数，用于判断是否需要写入种子数据。
	Count(ctx context.Context) (int64, error)
}
