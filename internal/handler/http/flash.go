// Package http 包含站点的 gin HTTP 处理器。
// 页面渲染和重定向是这里唯一的两种出口，业务错误统一转换为
// flash 消息；只有文章 404 以终态页面结束请求。
package http

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Flash 是一条一次性状态消息：随重定向写入，
// 在下一次页面渲染时被消费并清除，不依赖任何服务端会话状态。
type Flash struct {
	Severity string // "success" 或 "danger"
	Message  string
}

const flashCookieName = "flash"

// setFlash 把一条 flash 消息编码进 Cookie，供下一次渲染读取。
func setFlash(c *gin.Context, severity, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(severity + "|" + message))
	c.SetCookie(flashCookieName, value, 60, "/", "", false, true)
}

// popFlash 读取并立即清除 flash Cookie。没有待展示的消息时返回 nil。
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	decoded, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil // 损坏的 Cookie 直接丢弃
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Severity: parts[0], Message: parts[1]}
}

// redirectWithFlash 设置 flash 消息并发出 302 重定向。
func redirectWithFlash(c *gin.Context, location, severity, message string) {
	setFlash(c, severity, message)
	c.Redirect(http.StatusFound, location)
}
