package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlashContext(t *testing.T, flashCookie string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if flashCookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: flashCookieName, Value: flashCookie})
	}
	return c, w
}

func TestFlash_SetThenPopRoundTrip(t *testing.T) {
	// Arrange: 先在一个响应中写入 flash Cookie
	setCtx, setRec := newFlashContext(t, "")
	setFlash(setCtx, "success", "Post created successfully!")

	cookies := setRec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, flashCookieName, cookies[0].Name)

	// Act: 用写出的 Cookie 值模拟下一次请求并消费
	popCtx, popRec := newFlashContext(t, cookies[0].Value)
	flash := popFlash(popCtx)

	// Assert: 消息完整还原，Cookie 被清除
	require.NotNil(t, flash)
	assert.Equal(t, "success", flash.Severity)
	assert.Equal(t, "Post created successfully!", flash.Message)

	var cleared bool
	for _, c := range popRec.Result().Cookies() {
		if c.Name == flashCookieName && c.Value == "" && c.MaxAge <= 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "消费后的 flash Cookie 应被清除")
}

func TestFlash_MessageMayContainSeparator(t *testing.T) {
	// 消息本身含 "|" 时只在第一个分隔符处切分
	setCtx, setRec := newFlashContext(t, "")
	setFlash(setCtx, "danger", "a|b|c")

	popCtx, _ := newFlashContext(t, setRec.Result().Cookies()[0].Value)
	flash := popFlash(popCtx)

	require.NotNil(t, flash)
	assert.Equal(t, "danger", flash.Severity)
	assert.Equal(t, "a|b|c", flash.Message)
}

func TestFlash_NoCookieReturnsNil(t *testing.T) {
	c, _ := newFlashContext(t, "")
	assert.Nil(t, popFlash(c))
}

func TestFlash_CorruptCookieReturnsNil(t *testing.T) {
	c, _ := newFlashContext(t, "not-valid-base64!!!")
	assert.Nil(t, popFlash(c))
}
