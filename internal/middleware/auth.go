package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// SessionCookieName 是保存会话令牌的 Cookie 名称。
const SessionCookieName = "session_token"

// ContextAccountKey 是认证通过后存入 gin.Context 的账户 ID 键。
const ContextAccountKey = "account_id"

// LoginPath 是未认证访问被重定向到的登录页路径。
const LoginPath = "/login"

// Auth 返回一个 Gin 中间件，验证会话 Cookie 中的令牌。
// 这是一个 HTML 站点：未认证的访问被重定向到登录页，而不是返回 JSON 401。
// sessionSecret: 用于验证签名的密钥，必须提供。
func Auth(sessionSecret string) gin.HandlerFunc {
	// 在创建中间件时就进行检查，避免运行时 panic
	if sessionSecret == "" {
		panic("session secret cannot be empty for Auth middleware")
	}

	return func(c *gin.Context) {
		// 1. 从 Cookie 提取令牌
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			logrus.WithField("path", c.Request.URL.Path).Debug("Auth middleware: no session cookie")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// 2. 验证令牌
		claims, err := validateSessionToken(tokenStr, sessionSecret)
		if err != nil {
			logCtx := logrus.WithError(err)
			logCtx.Warn("Auth middleware: invalid session token")
			var validationError *jwt.ValidationError
			if errors.As(err, &validationError) {
				if validationError.Errors&jwt.ValidationErrorExpired != 0 {
					logCtx.Warn("Reason: session token is expired")
				}
				if validationError.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
					logCtx.Warn("Reason: session token signature is invalid")
				}
			}
			// 失效的 Cookie 顺手清掉，避免每个请求都重复验证失败
			c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// 3. 从 Claims 中提取账户 ID 并设置到 Context
		idClaim, ok := claims["account_id"]
		if !ok {
			logrus.Error("Auth middleware: 'account_id' claim missing in token")
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// JWT 数字默认为 float64，需要安全转换为 uint
		idFloat, ok := idClaim.(float64)
		if !ok || idFloat <= 0 || idFloat != float64(uint(idFloat)) {
			logrus.Errorf("Auth middleware: 'account_id' claim is not a valid positive integer: %v", idClaim)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		accountID := uint(idFloat)

		// 将账户 ID 存储在 Gin 上下文中，供后续处理程序使用
		c.Set(ContextAccountKey, accountID)
		logrus.WithField("account_id", accountID).Debug("Auth middleware: account authenticated via session cookie")

		c.Next()
	}
}

// validateSessionToken 解析并验证会话令牌字符串
// secret: 用于验证签名的密钥
func validateSessionToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法是否为 HMAC (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
