package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-site/internal/middleware"
	"portfolio-site/internal/service"
)

// AuthHandler 封装了与账户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge int // 会话 Cookie 的存活秒数，与令牌过期时间一致
}

// NewAuthHandler 创建 AuthHandler 实例
// sessionExpiryHours 与 AuthService 的令牌过期配置保持一致。
func NewAuthHandler(authService *service.AuthService, sessionExpiryHours int) *AuthHandler {
	if sessionExpiryHours <= 0 {
		sessionExpiryHours = 24
	}
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: sessionExpiryHours * 3600,
	}
}

// LoginRequest 定义登录表单的字段
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowLogin 渲染登录表单。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", nil)
}

// Login 处理登录表单提交
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// 1. 绑定并验证表单输入
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: invalid form input")
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"Flash": &Flash{Severity: "danger", Message: "Invalid username or password"},
		})
		return
	}

	// 2. 调用 Service 层处理登录逻辑
	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)

	// 3. 处理 Service 返回的错误
	if err != nil {
		logCtx := logrus.WithField("username", req.Username)
		if errors.Is(err, service.ErrInvalidCredentials) {
			logCtx.Warn("Handler.Login: authentication failed")
			// 与原站点一致：登录失败重新渲染表单并提示，不做重定向
			render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Flash": &Flash{Severity: "danger", Message: "Invalid username or password"},
			})
		} else {
			logCtx.WithError(err).Error("Handler.Login: internal error during login")
			renderServerError(c)
		}
		return
	}

	// 4. 写入会话 Cookie 并跳转仪表盘
	c.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAge, "/", "", false, true)
	logrus.WithField("username", req.Username).Info("Handler.Login: account logged in successfully")
	redirectWithFlash(c, "/dashboard", "success", "Logged in successfully!")
}

// RegisterRequest 定义注册表单的字段
// 除必填外不做额外校验，与原站点保持一致。
type RegisterRequest struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowRegister 渲染注册表单。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", nil)
}

// Register 处理注册表单提交
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	// 1. 绑定并验证表单输入
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: invalid form input")
		redirectWithFlash(c, "/register", "danger", "All fields are required")
		return
	}

	// 2. 调用 Service 层处理注册逻辑
	account, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)

	// 3. 处理 Service 返回的错误：冲突按字段分别提示，跳回注册页
	if err != nil {
		logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			logCtx.Warn("Handler.Register: username already exists")
			redirectWithFlash(c, "/register", "danger", "Username already exists")
		case errors.Is(err, service.ErrDuplicateEmail):
			logCtx.Warn("Handler.Register: email already registered")
			redirectWithFlash(c, "/register", "danger", "Email already registered")
		default:
			logCtx.WithError(err).Error("Handler.Register: internal error during registration")
			renderServerError(c)
		}
		return
	}

	// 4. 注册成功：提示后引导登录
	logrus.WithField("account_id", account.ID).Info("Handler.Register: account registered successfully")
	redirectWithFlash(c, "/login", "success", "Registration successful! Please login.")
}

// Logout 结束会话：清除会话 Cookie 并跳转首页。
// 令牌本身是无状态的，随过期时间自然失效。
func (h *AuthHandler) Logout(c *gin.Context) {
	accountID, _ := currentAccountID(c)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	logrus.WithField("account_id", accountID).Info("Handler.Logout: account logged out")
	redirectWithFlash(c, "/", "success", "Logged out successfully!")
}
