package domain

// Project 表示作品集中的一个展示项目。
// 项目不属于任何账户，由启动时的种子数据写入，站点内只读。
type Project struct {
	ID           uint   `gorm:"primaryKey"`                 // 项目唯一标识符 (主键)
	Title        string `gorm:"type:varchar(200);not null"` // 项目名称
	Description  string `gorm:"type:text;not null"`         // 项目简介
	Technologies string `gorm:"type:varchar(300)"`          // 逗号分隔的技术列表，不做结构化解析
	ImageURL     string `gorm:"type:varchar(500)"`          // 预览图地址 (可选)
	GithubURL    string `gorm:"type:varchar(500)"`          // 源码仓库地址 (可选)
	LiveURL      string `gorm:"type:varchar(500)"`          // 在线演示地址 (可选)
}
