// Package bootstrap 负责配置加载和应用组件的组装。
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "portfolio-site/internal/handler/http"
	gormpersistence "portfolio-site/internal/infra/persistence/gorm"
	"portfolio-site/internal/infra/setup"
	"portfolio-site/internal/middleware"
	"portfolio-site/internal/service"
)

// Config 结构体用于存储从环境变量或 .env 文件加载的配置
type Config struct {
	DBPath             string // sqlite 数据库文件路径
	ServerPort         string
	SessionSecret      string
	SessionExpiryHours int
	LogLevel           string
	AppEnv             string // 应用环境 (development/production)
	TemplateGlob       string // HTML 模板的 glob 路径
	StaticDir          string // 静态资源目录
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)，忽略错误，允许只使用环境变量
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:        os.Getenv("DB_PATH"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
		TemplateGlob:  os.Getenv("TEMPLATE_GLOB"),
		StaticDir:     os.Getenv("STATIC_DIR"),
	}

	// 处理会话过期时间
	expiryStr := os.Getenv("SESSION_EXPIRY_HOURS")
	cfg.SessionExpiryHours, _ = strconv.Atoi(expiryStr) // 忽略错误，默认为 0 由下面修正

	// --- 设置默认值和进行必要检查 ---
	if cfg.DBPath == "" {
		cfg.DBPath = "portfolio.db"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.TemplateGlob == "" {
		cfg.TemplateGlob = "web/templates/*.html"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}
	if cfg.SessionExpiryHours <= 0 {
		cfg.SessionExpiryHours = 24
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("environment variable SESSION_SECRET must be set")
	}

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App 结构体包含应用的所有组件和配置
type App struct {
	Config     *Config
	Log        *logrus.Logger
	DB         *gorm.DB
	HttpServer *http.Server
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded successfully")

	// 3. 初始化基础设施：打开数据库并迁移模式
	db, err := setup.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	// 4. 初始化 Repositories
	accountRepo := gormpersistence.NewGormAccountRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	projectRepo := gormpersistence.NewGormProjectRepository(db)
	log.Info("Repositories initialized")

	// 5. 初始化 Services
	authService, err := service.NewAuthService(accountRepo, cfg.SessionSecret, cfg.SessionExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	contentService := service.NewContentService(postRepo, projectRepo)
	log.Info("Services initialized")

	// 6. 写入种子数据 (空库时一次性生效)
	if err := setup.Seed(context.Background(), projectRepo, accountRepo, authService); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	// 7. 初始化 Handlers
	pageHandler := httpHandler.NewPageHandler(contentService)
	authHandler := httpHandler.NewAuthHandler(authService, cfg.SessionExpiryHours)
	postHandler := httpHandler.NewPostHandler(contentService, authService)
	log.Info("Handlers initialized")

	// 8. 初始化 Gin Engine 和路由
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.LoadHTMLGlob(cfg.TemplateGlob)
	router.Static("/static", cfg.StaticDir)

	// --- 公开页面 ---
	router.GET("/", pageHandler.Home)
	router.GET("/about", pageHandler.About)
	router.GET("/portfolio", pageHandler.Portfolio)
	router.GET("/blog", pageHandler.Blog)
	router.GET("/post/:id", pageHandler.ShowPost)
	router.GET("/contact", pageHandler.ShowContact)
	router.POST("/contact", pageHandler.Contact)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)

	// --- 需要认证的页面 ---
	authRequired := router.Group("/").Use(middleware.Auth(cfg.SessionSecret))
	{
		authRequired.GET("/dashboard", postHandler.Dashboard)
		authRequired.GET("/create_post", postHandler.ShowCreate)
		authRequired.POST("/create_post", postHandler.Create)
		authRequired.GET("/edit_post/:id", postHandler.ShowEdit)
		authRequired.POST("/edit_post/:id", postHandler.Update)
		authRequired.GET("/delete_post/:id", postHandler.Delete)
		authRequired.GET("/logout", authHandler.Logout)
	}
	log.Info("Router setup complete")

	// 9. 初始化 HTTP Server
	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// 10. 组装 App 对象
	app := &App{
		Config:     cfg,
		Log:        log,
		DB:         db,
		HttpServer: httpServer,
	}
	log.Info("Application assembled successfully")

	return app, nil
}

// Start 启动 HTTP 服务器
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 优雅关闭 HTTP 服务器
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 2. 关闭数据库连接 (存储句柄的生命周期在这里显式终结)
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Log.Errorf("Error closing database connection: %v", err)
			} else {
				a.Log.Info("Database connection closed.")
			}
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next() // 处理请求
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   clientIP,
			"method":      method,
			"path":        path,
		})

		if errorMessage != "" {
			entry.Error(errorMessage)
		} else {
			// 区分状态码记录日志级别
			if statusCode >= 500 {
				entry.Error("Server error")
			} else if statusCode >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request handled")
			}
		}
	}
}
