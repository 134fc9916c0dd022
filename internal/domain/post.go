package domain

import "time"

// Post 表示一篇博客文章，必须归属于且只归属于一个账户。
type Post struct {
	ID       uint      `gorm:"primaryKey"`                 // 文章唯一标识符 (主键)
	Title    string    `gorm:"type:varchar(200);not null"` // 标题
	Content  string    `gorm:"type:text;not null"`         // 正文
	PostedAt time.Time `gorm:"index;not null"`             // 发表时间，创建时写入，编辑时保持不变
	AuthorID uint      `gorm:"index;not null"`             // 作者账户 ID (外键关联 Account.ID)
}
