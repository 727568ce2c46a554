package service

import "errors"

// 服务层哨兵错误，handler 负责映射为 HTTP 状态与页面提示.
var (
	// ErrDuplicateUsername 用户名已被占用.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials 用户名不存在或密码错误，对外不区分.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound 文件登记不存在，或磁盘内容已丢失.
	ErrNotFound = errors.New("file not found")
	// ErrEmptyUpload 上传表单没有文件或文件为空.
	ErrEmptyUpload = errors.New("no file provided")
)
