package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByID 实现根据文章 ID 查找文章
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// ListNewestFirst 实现按发表时间倒序返回全部文章
func (r *GormPostRepository) ListNewestFirst(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Order("posted_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts newest first: %w", err)
	}
	return posts, nil
}

// ListByAuthor 实现返回指定账户的全部文章
func (r *GormPostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts by author %d: %w", authorID, err)
	}
	return posts, nil
}

// Save 实现保存文章（创建或更新）
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("gorm: save post (id: %d, author: %d): %w", post.ID, post.AuthorID, err)
	}
	return nil
}

// Delete 实现根据 ID 删除文章，删除不存在的 ID 不报错
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Post{}, id).Error; err != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, err)
	}
	return nil
}
