package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-site/internal/middleware"
)

// render 渲染模板，并附带待消费的 flash 消息。
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		if flash := popFlash(c); flash != nil {
			data["Flash"] = flash
		}
	}
	c.HTML(status, template, data)
}

// renderNotFound 渲染终态 404 页面。
func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}

// renderServerError 渲染终态 500 页面。
func renderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
}

// currentAccountID 从 Gin 上下文取出 Auth 中间件设置的账户 ID。
func currentAccountID(c *gin.Context) (uint, bool) {
	idAny, exists := c.Get(middleware.ContextAccountKey)
	if !exists {
		logrus.Warn("Handler: account ID not found in context, middleware missing or failed?")
		return 0, false
	}
	id, ok := idAny.(uint)
	if !ok {
		logrus.Error("Handler: account ID in context is not uint")
		return 0, false
	}
	return id, true
}

// parsePostID 解析路径参数中的文章 ID。
func parsePostID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id64, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q: %w", raw, err)
	}
	return uint(id64), nil
}
