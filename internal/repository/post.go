package repository

import (
	"context"

	"portfolio-site/internal/domain"
)

// PostRepository 定义了博客文章的存储和检索操作。
type PostRepository interface {
	// FindByID 根据文章 ID 查找文章。
	// 如果文章不存在，应返回 ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// ListNewestFirst 返回全部文章，按发表时间倒序排列。
	ListNewestFirst(ctx context.Context) ([]domain.Post, error)

	// ListByAuthor 返回指定账户拥有的全部文章。
	ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error)

	// Save 保存文章 (基于 ID 创建或更新)。
	Save(ctx context.Context, post *domain.Post) error

	// Delete 根据 ID 删除文章。删除不存在的 ID 不报错。
	Delete(ctx context.Context, id uint) error
}
