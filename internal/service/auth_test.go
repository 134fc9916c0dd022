package service_test // 测试包

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"
	"portfolio-site/internal/repository/mocks"
	"portfolio-site/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- 测试 Register 方法 ---

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange: 准备 Mock 对象, Service 实例, 和测试数据
	mockAccountRepo := new(mocks.AccountRepository)
	authService, err := service.NewAuthService(mockAccountRepo, "very-secret-key", 1)
	require.NoError(t, err, "创建 AuthService 不应失败")

	ctx := context.Background()
	username := "alice"
	email := "a@x.com"
	password := "pw1"

	// 设置 Mock 预期:
	// 1. 用户名和邮箱都不存在
	mockAccountRepo.On("FindByUsername", ctx, username).
		Return(nil, repository.ErrAccountNotFound).
		Once()
	mockAccountRepo.On("FindByEmail", ctx, email).
		Return(nil, repository.ErrAccountNotFound).
		Once()

	// 2. Save 成功，并填充 ID/时间戳
	mockAccountRepo.On("Save", ctx, mock.MatchedBy(func(account *domain.Account) bool {
		assert.Equal(t, username, account.Username)
		assert.Equal(t, email, account.Email)
		// 存储的必须是可被 bcrypt 校验的哈希，而不是明文
		assert.NotEqual(t, password, account.PasswordHash, "绝不允许存明文密码")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)), "密码应被正确哈希")
		return true
	})).
		Run(func(args mock.Arguments) { // 模拟数据库填充字段
			accountArg := args.Get(1).(*domain.Account)
			accountArg.ID = 5
			accountArg.CreatedAt = time.Now().UTC()
		}).
		Return(nil).
		Once()

	// Act
	registered, err := authService.Register(ctx, username, email, password)

	// Assert
	assert.NoError(t, err, "成功注册时不应有错误")
	require.NotNil(t, registered, "成功注册时应返回账户对象")
	assert.Equal(t, uint(5), registered.ID)
	assert.Equal(t, username, registered.Username)
	assert.Equal(t, email, registered.Email)
	assert.False(t, registered.CreatedAt.IsZero(), "创建时间应被设置")

	// Verify
	mockAccountRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "secret", 1)
	ctx := context.Background()
	username := "alice"

	// 设置 Mock 预期: 用户名已被占用。邮箱是什么不重要，用户名冲突先被报告
	existing := &domain.Account{ID: 10, Username: username}
	mockAccountRepo.On("FindByUsername", ctx, username).Return(existing, nil).Once()

	// Act
	_, err := authService.Register(ctx, username, "b@y.com", "pw2")

	// Assert
	require.Error(t, err, "用户名已存在时应返回错误")
	assert.True(t, errors.Is(err, service.ErrDuplicateUsername), "错误类型应为 ErrDuplicateUsername")

	// Verify: 邮箱检查和 Save 都不应发生
	mockAccountRepo.AssertExpectations(t)
	mockAccountRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "secret", 1)
	ctx := context.Background()
	username := "bob"
	email := "a@x.com"

	// 设置 Mock 预期: 用户名可用，但邮箱已被注册
	mockAccountRepo.On("FindByUsername", ctx, username).Return(nil, repository.ErrAccountNotFound).Once()
	existing := &domain.Account{ID: 10, Username: "alice", Email: email}
	mockAccountRepo.On("FindByEmail", ctx, email).Return(existing, nil).Once()

	// Act
	_, err := authService.Register(ctx, username, email, "pw2")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDuplicateEmail), "错误类型应为 ErrDuplicateEmail")

	// Verify
	mockAccountRepo.AssertExpectations(t)
	mockAccountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_SaveFails_DuplicateEntry(t *testing.T) {
	// Arrange: 模拟并发注册竞争，预检查通过但唯一约束拒绝了插入
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "secret", 1)
	ctx := context.Background()
	username := "carol"

	// 设置 Mock 预期:
	// 1. 预检查时用户名和邮箱都还不存在
	mockAccountRepo.On("FindByUsername", ctx, username).Return(nil, repository.ErrAccountNotFound).Once()
	mockAccountRepo.On("FindByEmail", ctx, "c@z.com").Return(nil, repository.ErrAccountNotFound).Once()
	// 2. Save 被唯一约束拒绝
	mockAccountRepo.On("Save", ctx, mock.AnythingOfType("*domain.Account")).Return(repository.ErrDuplicateEntry).Once()
	// 3. 重新查询发现用户名已被并发写入者抢占
	mockAccountRepo.On("FindByUsername", ctx, username).Return(&domain.Account{ID: 42, Username: username}, nil).Once()

	// Act
	_, err := authService.Register(ctx, username, "c@z.com", "password")

	// Assert: 约束冲突必须被当作重复条件报告，而不是内部错误
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDuplicateUsername), "保存冲突时应重新判定为 ErrDuplicateUsername")

	// Verify
	mockAccountRepo.AssertExpectations(t)
}

// --- 测试 Login 方法 ---

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "test-secret", 24)
	ctx := context.Background()
	username := "alice"
	password := "pw1"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	accountInDB := &domain.Account{ID: 1, Username: username, PasswordHash: string(hashed)}

	// 设置 Mock 预期: 成功找到账户
	mockAccountRepo.On("FindByUsername", ctx, username).Return(accountInDB, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, password)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Verify
	mockAccountRepo.AssertExpectations(t)
}

func TestAuthService_Login_AccountNotFound(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "test-secret", 24)
	ctx := context.Background()

	// 设置 Mock 预期: 账户不存在
	mockAccountRepo.On("FindByUsername", ctx, "nobody").Return(nil, repository.ErrAccountNotFound).Once()

	// Act
	token, err := authService.Login(ctx, "nobody", "password")

	// Assert
	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))

	// Verify
	mockAccountRepo.AssertExpectations(t)
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "test-secret", 24)
	ctx := context.Background()
	username := "alice"
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	accountInDB := &domain.Account{ID: 1, Username: username, PasswordHash: string(hashed)}

	// 设置 Mock 预期: 找到账户
	mockAccountRepo.On("FindByUsername", ctx, username).Return(accountInDB, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, "wrong-password")

	// Assert
	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))

	// Verify
	mockAccountRepo.AssertExpectations(t)
}

// --- 测试 CurrentAccount 方法 ---

func TestAuthService_CurrentAccount(t *testing.T) {
	// Arrange
	mockAccountRepo := new(mocks.AccountRepository)
	authService, _ := service.NewAuthService(mockAccountRepo, "test-secret", 24)
	ctx := context.Background()
	accountInDB := &domain.Account{ID: 7, Username: "alice"}

	mockAccountRepo.On("FindByID", ctx, uint(7)).Return(accountInDB, nil).Once()
	mockAccountRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrAccountNotFound).Once()

	// Act / Assert: 存在的账户被解析出来
	account, err := authService.CurrentAccount(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)

	// Act / Assert: 会话指向的账户已不存在
	_, err = authService.CurrentAccount(ctx, 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))

	// Verify
	mockAccountRepo.AssertExpectations(t)
}
