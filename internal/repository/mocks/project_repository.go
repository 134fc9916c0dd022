package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio-site/internal/domain"
)

// ProjectRepository 是 repository.ProjectRepository 的 mock 实现。
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context, limit int) ([]domain.Project, error) {
	args := m.Called(ctx, limit)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

func (m *ProjectRepository) SaveAll(ctx context.Context, projects []domain.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func (m *ProjectRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
