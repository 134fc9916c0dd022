// Package setup 负责数据库的打开、模式迁移和种子数据。
package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio-site/internal/domain"
)

// InitDB 打开 (必要时创建) sqlite 数据库并配置连接池。
// path 可以是文件路径，也可以是 ":memory:" (测试用)。
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// sqlite 同一文件同一时刻只允许一个写入者，连接池收窄到 1 避免 SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	logrus.WithField("path", path).Info("SQLite database opened")
	return db, nil
}

// Migrate 自动迁移三张表的模式。
// 唯一约束和外键索引由 domain 模型上的 GORM tag 声明。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.Account{},
		&domain.Post{},
		&domain.Project{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
