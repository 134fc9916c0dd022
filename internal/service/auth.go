package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 负责账户注册、登录和身份解析相关的业务逻辑。
// 凭据的创建和校验只允许经过这个服务，其他组件不得绕过。
type AuthService struct {
	accountRepo   repository.AccountRepository
	sessionSecret []byte        // 会话令牌签名密钥的字节形式
	sessionExpiry time.Duration // 会话令牌过期时间
}

// NewAuthService 创建 AuthService 实例。
// sessionSecretKey 应从安全配置中获取。
// sessionExpiryHours 定义会话令牌过期的小时数。
func NewAuthService(accountRepo repository.AccountRepository, sessionSecretKey string, sessionExpiryHours int) (*AuthService, error) {
	if accountRepo == nil {
		panic("AccountRepository cannot be nil for AuthService")
	}
	if sessionSecretKey == "" {
		return nil, fmt.Errorf("session secret key cannot be empty")
	}
	if sessionExpiryHours <= 0 {
		sessionExpiryHours = 24 // 默认 24 小时
	}
	return &AuthService{
		accountRepo:   accountRepo,
		sessionSecret: []byte(sessionSecretKey),
		sessionExpiry: time.Duration(sessionExpiryHours) * time.Hour,
	}, nil
}

// Register 处理账户注册。
// 用户名冲突先于邮箱冲突被检查和报告。
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	// 1. 基本验证
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required")
	}

	// 2. 检查用户名是否已被占用
	if _, err := s.accountRepo.FindByUsername(ctx, username); err == nil {
		logCtx.Warn("Registration failed: username already exists")
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		logCtx.WithError(err).Error("Database error checking username during registration")
		return nil, ErrInternalServer
	}

	// 3. 检查邮箱是否已被注册
	if _, err := s.accountRepo.FindByEmail(ctx, email); err == nil {
		logCtx.Warn("Registration failed: email already registered")
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		logCtx.WithError(err).Error("Database error checking email during registration")
		return nil, ErrInternalServer
	}

	// 4. 哈希密码
	hash, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	// 5. 保存账户 (调用 Repository 接口)
	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		// 预检查和插入之间可能有并发注册者抢先写入，唯一约束才是最终裁决。
		// 此时重新查询用户名来判断冲突发生在哪个字段。
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: unique constraint rejected the insert")
			if _, findErr := s.accountRepo.FindByUsername(ctx, username); findErr == nil {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		logCtx.WithError(err).Error("Database error during account creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("account_id", account.ID).Info("Account registered successfully")
	return account, nil
}

// Login 处理账户登录，成功时签发会话令牌。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	// 1. 查找账户
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			logCtx.Warn("Login attempt failed: account not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding account")
		}
		return "", ErrInvalidCredentials // 对调用方统一返回认证失败，避免泄露账户是否存在
	}
	// 防御性检查，以防仓库实现返回 nil, nil
	if account == nil {
		logCtx.Warn("Login attempt failed: repo returned nil account without error")
		return "", ErrInvalidCredentials
	}

	// 2. 验证密码 (只走 bcrypt 的匹配函数，绝不与明文做相等比较)
	if !checkPassword(password, account.PasswordHash) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrInvalidCredentials
	}

	// 3. 签发会话令牌
	token, err := s.issueSessionToken(account.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue session token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("account_id", account.ID).Info("Account logged in successfully")
	return token, nil
}

// CurrentAccount 解析已认证请求对应的账户身份。
// 会话令牌指向的账户已不存在时返回 ErrInvalidCredentials。
func (s *AuthService) CurrentAccount(ctx context.Context, id uint) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			logrus.WithField("account_id", id).Warn("Session refers to a missing account")
			return nil, ErrInvalidCredentials
		}
		logrus.WithError(err).WithField("account_id", id).Error("Database error resolving current account")
		return nil, ErrInternalServer
	}
	return account, nil
}

// --- 私有辅助函数 ---

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// issueSessionToken 为指定账户 ID 签发会话令牌
func (s *AuthService) issueSessionToken(accountID uint) (string, error) {
	// s.sessionSecret 和 s.sessionExpiry 在 NewAuthService 时已初始化和检查
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(s.sessionExpiry).Unix(),
		"iat":        time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}
