package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-site/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

// newGatedRouter 构建一条挂了认证中间件的测试路由，
// 认证通过时把 Context 中的账户 ID 回显出来。
func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", middleware.Auth(testSecret), func(c *gin.Context) {
		accountID := c.MustGet(middleware.ContextAccountKey).(uint)
		c.String(http.StatusOK, "account:%d", accountID)
	})
	return r
}

// signSessionToken 用给定密钥和过期时间签发一个会话令牌。
func signSessionToken(t *testing.T, secret string, accountID uint, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoCookieRedirectsToLogin(t *testing.T) {
	r := newGatedRouter()

	w := doRequest(r, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestAuth_ValidTokenPassesThrough(t *testing.T) {
	r := newGatedRouter()
	token := signSessionToken(t, testSecret, 42, time.Now().Add(time.Hour))

	w := doRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "account:42", w.Body.String())
}

func TestAuth_ExpiredTokenRedirectsAndClearsCookie(t *testing.T) {
	r := newGatedRouter()
	token := signSessionToken(t, testSecret, 42, time.Now().Add(-time.Hour))

	w := doRequest(r, token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	// 失效 Cookie 应被清除（Max-Age < 0 序列化为 Max-Age=0）
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge <= 0 && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "过期令牌的 Cookie 应被清除")
}

func TestAuth_WrongSignatureRedirects(t *testing.T) {
	r := newGatedRouter()
	token := signSessionToken(t, "another-secret", 42, time.Now().Add(time.Hour))

	w := doRequest(r, token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestAuth_MissingAccountClaimRedirects(t *testing.T) {
	r := newGatedRouter()

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doRequest(r, token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}
