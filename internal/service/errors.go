package service

import "errors"

// 业务层错误。handler 层负责把它们转换为 flash 消息加重定向，
// 只有文章不存在会以 404 页面终结请求。
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotPostOwner       = errors.New("post belongs to another account")
	ErrInternalServer     = errors.New("internal server error")
)
