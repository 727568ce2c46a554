// Package meta 从已落盘的文件中提取元数据.
//
// 提取器总是写入 size_bytes 和 mime_type 两个键；其余键由按 MIME 类型注册的
// sniffer 补充（图片分辨率、PDF 页数等）.新增文件类型只需 RegisterSniffer，
// 不用改动上传流程.
//
// 提取失败从不中断上传：sniffer 返回的错误（包括 panic）会被记录为 error 键.
package meta

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	nlog "github.com/yeisme/dandelion/pkg/log"
)

// 元数据键名.
const (
	KeySize        = "size_bytes"
	KeyMimeType    = "mime_type"
	KeyExtMimeType = "ext_mime_type"
	KeyResolution  = "resolution"
	KeyFormat      = "format"
	KeyPageCount   = "page_count"
	KeyTitle       = "title"
	KeyAuthor      = "author"
	KeyError       = "error"
)

// Sniffer 针对单一 MIME 家族的元数据提取函数，把结果写入 out.
type Sniffer func(path string, out map[string]string) error

type snifferEntry struct {
	match string // 精确类型或 "image/" 这样的前缀
	fn    Sniffer
}

var (
	snifferMu sync.RWMutex
	sniffers  []snifferEntry
)

// RegisterSniffer 注册 sniffer，match 为精确 MIME 类型或以 / 结尾的前缀.
func RegisterSniffer(match string, fn Sniffer) {
	snifferMu.Lock()
	defer snifferMu.Unlock()

	sniffers = append(sniffers, snifferEntry{match: match, fn: fn})
}

// lookupSniffers 返回匹配该 MIME 类型的所有 sniffer.
func lookupSniffers(mimeType string) []Sniffer {
	snifferMu.RLock()
	defer snifferMu.RUnlock()

	matched := make([]Sniffer, 0, 1)

	for _, e := range sniffers {
		if strings.HasSuffix(e.match, "/") {
			if strings.HasPrefix(mimeType, e.match) {
				matched = append(matched, e.fn)
			}
		} else if mimeType == e.match {
			matched = append(matched, e.fn)
		}
	}

	return matched
}

// Extract 提取文件元数据.总是返回 size_bytes 和 mime_type；
// 无匹配 sniffer 的类型只有这两个键.出错时写入 error 键，从不返回失败.
func Extract(path string) map[string]string {
	out := make(map[string]string)

	if info, err := os.Stat(path); err == nil {
		out[KeySize] = strconv.FormatInt(info.Size(), 10)
	} else {
		out[KeyError] = fmt.Sprintf("stat: %v", err)
		return out
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		out[KeyError] = fmt.Sprintf("detect mime: %v", err)
		return out
	}

	// 去掉 "; charset=..." 参数部分
	sniffed := strings.TrimSpace(strings.SplitN(mtype.String(), ";", 2)[0])
	out[KeyMimeType] = sniffed

	// 扩展名推断与内容嗅探不一致时记录，便于发现改过后缀的文件
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		extType := strings.TrimSpace(strings.SplitN(byExt, ";", 2)[0])
		if extType != sniffed {
			out[KeyExtMimeType] = extType
		}
	}

	for _, fn := range lookupSniffers(sniffed) {
		if err := runSniffer(fn, path, out); err != nil {
			out[KeyError] = err.Error()

			nlog.Logger().Warn().
				Str("path", path).
				Str("mime_type", sniffed).
				Err(err).
				Msg("元数据提取失败")
		}
	}

	return out
}

// runSniffer 执行 sniffer 并把 panic 转为 error，解析器对损坏文件可能 panic.
func runSniffer(fn Sniffer, path string, out map[string]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sniffer panic: %v", r)
		}
	}()

	return fn(path, out)
}
