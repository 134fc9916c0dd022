// Package mocks 提供 repository 接口的 testify mock 实现，仅供测试使用。
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio-site/internal/domain"
)

// AccountRepository 是 repository.AccountRepository 的 mock 实现。
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	args := m.Called(ctx, id)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
