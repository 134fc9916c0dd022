package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-site/internal/service"
)

// 首页作品集摘要的条数。
const homeProjectTeaser = 3

// PageHandler 封装无需认证的展示页面的 HTTP 处理逻辑
type PageHandler struct {
	contentService *service.ContentService
}

// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(contentService *service.ContentService) *PageHandler {
	return &PageHandler{contentService: contentService}
}

// Home 渲染首页，最多展示 3 个作品集项目。
func (h *PageHandler) Home(c *gin.Context) {
	projects, err := h.contentService.ListProjects(c.Request.Context(), homeProjectTeaser)
	if err != nil {
		logrus.WithError(err).Error("Handler.Home: failed to load projects")
		renderServerError(c)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"Projects": projects})
}

// About 渲染静态的关于页面。
func (h *PageHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", nil)
}

// Portfolio 渲染全部作品集项目。
func (h *PageHandler) Portfolio(c *gin.Context) {
	projects, err := h.contentService.ListProjects(c.Request.Context(), 0)
	if err != nil {
		logrus.WithError(err).Error("Handler.Portfolio: failed to load projects")
		renderServerError(c)
		return
	}
	render(c, http.StatusOK, "portfolio.html", gin.H{"Projects": projects})
}

// Blog 渲染全部文章，按发表时间倒序。
func (h *PageHandler) Blog(c *gin.Context) {
	posts, err := h.contentService.ListPosts(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Handler.Blog: failed to load posts")
		renderServerError(c)
		return
	}
	render(c, http.StatusOK, "blog.html", gin.H{"Posts": posts})
}

// ShowPost 渲染单篇文章。文章不存在时以 404 页面终结请求。
func (h *PageHandler) ShowPost(c *gin.Context) {
	// 1. 解析路径参数
	id, err := parsePostID(c)
	if err != nil {
		renderNotFound(c)
		return
	}

	// 2. 调用 Service 层加载文章
	post, err := h.contentService.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			renderNotFound(c)
		} else {
			logrus.WithError(err).WithField("post_id", id).Error("Handler.ShowPost: failed to load post")
			renderServerError(c)
		}
		return
	}

	render(c, http.StatusOK, "post.html", gin.H{"Post": post})
}

// ShowContact 渲染联系表单。
func (h *PageHandler) ShowContact(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", nil)
}

// Contact 处理联系表单提交。
// 表单内容不做任何持久化，只回一条感谢消息并跳回表单页。
func (h *PageHandler) Contact(c *gin.Context) {
	redirectWithFlash(c, "/contact", "success", "Thank you for your message! I'll get back to you soon.")
}
