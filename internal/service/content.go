package service

import (
	"context"
	"errors"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"

	"github.com/sirupsen/logrus"
)

// ContentService 负责博客文章和作品集项目的业务逻辑。
// 文章的修改和删除只允许作者本人，所有权在这里裁决。
type ContentService struct {
	postRepo    repository.PostRepository
	projectRepo repository.ProjectRepository
}

// NewContentService 创建 ContentService 实例。
func NewContentService(postRepo repository.PostRepository, projectRepo repository.ProjectRepository) *ContentService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for ContentService")
	}
	if projectRepo == nil {
		panic("ProjectRepository cannot be nil for ContentService")
	}
	return &ContentService{
		postRepo:    postRepo,
		projectRepo: projectRepo,
	}
}

// ListProjects 返回作品集项目，limit > 0 时只取前 limit 条 (首页摘要取 3 条)。
func (s *ContentService) ListProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	projects, err := s.projectRepo.List(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to list projects")
		return nil, ErrInternalServer
	}
	return projects, nil
}

// ListPosts 返回全部文章，按发表时间倒序。
func (s *ContentService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.ListNewestFirst(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// GetPost 根据 ID 返回单篇文章。
func (s *ContentService) GetPost(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Failed to load post")
		return nil, ErrInternalServer
	}
	return post, nil
}

// ListPostsByAuthor 返回指定账户拥有的文章，用于仪表盘。
func (s *ContentService) ListPostsByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", authorID).Error("Failed to list posts by author")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// CreatePost 以当前时间为发表时间创建一篇文章。
func (s *ContentService) CreatePost(ctx context.Context, authorID uint, title, content string) (*domain.Post, error) {
	logCtx := logrus.WithField("account_id", authorID)

	post := &domain.Post{
		Title:    title,
		Content:  content,
		PostedAt: time.Now().UTC(),
		AuthorID: authorID,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save new post")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// UpdatePost 覆盖标题和正文，发表时间保持不变。只有作者本人可以编辑。
func (s *ContentService) UpdatePost(ctx context.Context, accountID, id uint, title, content string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"account_id": accountID, "post_id": id})

	// 1. 加载文章
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to load post for update")
		return nil, ErrInternalServer
	}

	// 2. 所有权检查
	if post.AuthorID != accountID {
		logCtx.Warn("Update rejected: account is not the post owner")
		return nil, ErrNotPostOwner
	}

	// 3. 覆盖并保存 (PostedAt 不变)
	post.Title = title
	post.Content = content
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Failed to save updated post")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// DeletePost 删除作者本人的文章，返回是否真的发生了删除。
// 文章不存在或属于其他账户时静默跳过，与原站点行为保持一致
// (见 DESIGN.md 中的未决问题)。
func (s *ContentService) DeletePost(ctx context.Context, accountID, id uint) (bool, error) {
	logCtx := logrus.WithFields(logrus.Fields{"account_id": accountID, "post_id": id})

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Delete skipped: post not found")
			return false, nil
		}
		logCtx.WithError(err).Error("Failed to load post for delete")
		return false, ErrInternalServer
	}
	if post.AuthorID != accountID {
		logCtx.Warn("Delete skipped: account is not the post owner")
		return false, nil
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to delete post")
		return false, ErrInternalServer
	}

	logCtx.Info("Post deleted successfully")
	return true, nil
}
