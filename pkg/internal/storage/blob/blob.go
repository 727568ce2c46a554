// Package blob 处理本地磁盘上的文件内容存储.
// 上传目录是扁平的，文件名冲突时自动追加 _1、_2 等后缀，
// 重命名通过 O_CREATE|O_EXCL 原子创建完成，并发上传同名文件也不会互相覆盖.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/dandelion/pkg/configs"
	nlog "github.com/yeisme/dandelion/pkg/log"
)

// maxNameAttempts 同名文件后缀尝试上限.
const maxNameAttempts = 10000

// Client 本地磁盘 blob 存储客户端.
type Client struct {
	dir string
}

// New 初始化本地存储，创建上传目录.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().Storage

	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.UploadDir, err)
	}

	nlog.Logger().Info().Str("dir", cfg.UploadDir).Msg("blob 存储已初始化")

	return &Client{dir: cfg.UploadDir}, nil
}

// NewWithDir 在指定目录上构造客户端，跳过全局配置.
func NewWithDir(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &Client{dir: dir}, nil
}

// Dir 返回上传目录.
func (c *Client) Dir() string {
	return c.dir
}

// Path 返回存储名对应的磁盘路径.
func (c *Client) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// Sanitize 把用户提供的文件名收敛为安全的磁盘文件名.
// 去掉路径部分，替换非常规字符，空结果回退为 "file".
func Sanitize(name string) string {
	// 同时处理两种路径分隔符，Base 只认当前平台的
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}

	return out
}

// SaveResult 保存结果.
type SaveResult struct {
	StoredName string // 实际落盘的文件名，可能带 _N 后缀
	Size       int64  // 写入字节数
	Checksum   string // 内容的 xxhash64 校验和（十六进制）
}

// Save 把 r 的内容写入上传目录，返回实际使用的存储名.
// 文件名冲突时在扩展名前追加 _1、_2 等后缀重试.
func (c *Client) Save(ctx context.Context, name string, r io.Reader) (*SaveResult, error) {
	base := Sanitize(name)

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}

		f, err := os.OpenFile(c.Path(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if os.IsExist(err) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("create %s: %w", candidate, err)
		}

		hash := xxhash.New()

		size, err := io.Copy(io.MultiWriter(f, hash), r)
		if err != nil {
			f.Close()
			// 写入失败时清理半成品
			_ = os.Remove(c.Path(candidate))

			return nil, fmt.Errorf("write %s: %w", candidate, err)
		}

		if err := f.Close(); err != nil {
			_ = os.Remove(c.Path(candidate))

			return nil, fmt.Errorf("close %s: %w", candidate, err)
		}

		return &SaveResult{
			StoredName: candidate,
			Size:       size,
			Checksum:   fmt.Sprintf("%016x", hash.Sum64()),
		}, nil
	}

	return nil, fmt.Errorf("no free name for %s after %d attempts", base, maxNameAttempts)
}

// Open 打开已存储的文件.
func (c *Client) Open(name string) (*os.File, error) {
	return os.Open(c.Path(name))
}

// Stat 查询已存储文件的信息.
func (c *Client) Stat(name string) (os.FileInfo, error) {
	return os.Stat(c.Path(name))
}

// Remove 删除已存储的文件，文件不存在不算错误.
func (c *Client) Remove(name string) error {
	err := os.Remove(c.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}

	return nil
}

// Names 列出上传目录中的所有存储名（不含子目录）.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		names = append(names, e.Name())
	}

	return names, nil
}

// Close 关闭存储（本地实现无需操作）.
func (c *Client) Close() error {
	return nil
}
