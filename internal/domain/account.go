// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// Account 表示站点的注册账户。
type Account struct {
	ID           uint      `gorm:"primaryKey"`                                          // 账户唯一标识符 (主键)
	Username     string    `gorm:"type:varchar(80);uniqueIndex:idx_account_username;not null"`  // 用户名，全局唯一
	Email        string    `gorm:"type:varchar(120);uniqueIndex:idx_account_email;not null"`    // 邮箱，全局唯一
	PasswordHash string    `json:"-" gorm:"type:varchar(200);not null"`                 // 只存储 bcrypt 哈希，绝不存明文
	CreatedAt    time.Time `gorm:"autoCreateTime"`                                      // 注册时间 (GORM 自动填充, UTC)

	// Posts 是该账户拥有的全部文章 (一对多，外键在 Post.AuthorID)。
	Posts []Post `gorm:"foreignKey:AuthorID"`
}
