package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-site/internal/middleware"
	"portfolio-site/internal/service"
)

// PostHandler 封装了文章管理相关的 HTTP 处理逻辑。
// 这里的所有路由都在 Auth 中间件之后。
type PostHandler struct {
	contentService *service.ContentService
	authService    *service.AuthService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(contentService *service.ContentService, authService *service.AuthService) *PostHandler {
	return &PostHandler{
		contentService: contentService,
		authService:    authService,
	}
}

// PostForm 定义创建/编辑文章表单的字段
type PostForm struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

// Dashboard 展示当前账户自己的文章。
func (h *PostHandler) Dashboard(c *gin.Context) {
	// 1. 获取认证账户 ID
	accountID, ok := currentAccountID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	// 2. 解析账户身份 (仪表盘需要展示用户名)
	account, err := h.authService.CurrentAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// 会话指向的账户已不存在，清掉 Cookie 强制重新登录
			c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, middleware.LoginPath)
		} else {
			renderServerError(c)
		}
		return
	}

	// 3. 只列出该账户自己的文章
	posts, err := h.contentService.ListPostsByAuthor(c.Request.Context(), accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("Handler.Dashboard: failed to list posts")
		renderServerError(c)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{"Account": account, "Posts": posts})
}

// ShowCreate 渲染新文章表单。
func (h *PostHandler) ShowCreate(c *gin.Context) {
	render(c, http.StatusOK, "create_post.html", nil)
}

// Create 处理新文章提交
func (h *PostHandler) Create(c *gin.Context) {
	// 1. 获取认证账户 ID
	accountID, ok := currentAccountID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	// 2. 绑定并验证表单输入
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Warn("Handler.Create: invalid form input")
		redirectWithFlash(c, "/create_post", "danger", "Title and content are required")
		return
	}

	// 3. 调用 Service 层创建文章
	post, err := h.contentService.CreatePost(c.Request.Context(), accountID, form.Title, form.Content)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("Handler.Create: failed to create post")
		renderServerError(c)
		return
	}

	// 4. 成功响应
	logrus.WithFields(logrus.Fields{"account_id": accountID, "post_id": post.ID}).Info("Handler.Create: post created successfully")
	redirectWithFlash(c, "/dashboard", "success", "Post created successfully!")
}

// ShowEdit 渲染编辑表单并预填文章内容。
// 非作者访问与提交时一样被弹回仪表盘。
func (h *PostHandler) ShowEdit(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		renderNotFound(c)
		return
	}

	post, err := h.contentService.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c)
		}
		return
	}

	if post.AuthorID != accountID {
		redirectWithFlash(c, "/dashboard", "danger", "You can only edit your own posts!")
		return
	}

	render(c, http.StatusOK, "edit_post.html", gin.H{"Post": post})
}

// Update 处理编辑表单提交
func (h *PostHandler) Update(c *gin.Context) {
	// 1. 获取认证账户 ID 和文章 ID
	accountID, ok := currentAccountID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	id, err := parsePostID(c)
	if err != nil {
		renderNotFound(c)
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"account_id": accountID, "post_id": id})

	// 2. 绑定并验证表单输入
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		logCtx.WithError(err).Warn("Handler.Update: invalid form input")
		redirectWithFlash(c, fmt.Sprintf("/edit_post/%d", id), "danger", "Title and content are required")
		return
	}

	// 3. 调用 Service 层更新文章，所有权在 Service 内裁决
	_, err = h.contentService.UpdatePost(c.Request.Context(), accountID, id, form.Title, form.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			renderNotFound(c)
		case errors.Is(err, service.ErrNotPostOwner):
			logCtx.Warn("Handler.Update: account is not the post owner")
			redirectWithFlash(c, "/dashboard", "danger", "You can only edit your own posts!")
		default:
			logCtx.WithError(err).Error("Handler.Update: failed to update post")
			renderServerError(c)
		}
		return
	}

	// 4. 成功响应
	logCtx.Info("Handler.Update: post updated successfully")
	redirectWithFlash(c, "/dashboard", "success", "Post updated successfully!")
}

// Delete 删除自己的文章。
// 他人的文章或不存在的 id 会被静默跳过：照常跳回仪表盘但不带任何提示。
func (h *PostHandler) Delete(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	id, err := parsePostID(c)
	if err != nil {
		renderNotFound(c)
		return
	}

	deleted, err := h.contentService.DeletePost(c.Request.Context(), accountID, id)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"account_id": accountID, "post_id": id}).Error("Handler.Delete: failed to delete post")
		renderServerError(c)
		return
	}

	if deleted {
		redirectWithFlash(c, "/dashboard", "success", "Post deleted successfully!")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
