package meta_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/yeisme/dandelion/pkg/internal/meta"
)

// writeFile 把内容写到临时目录并返回路径.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

// writePNG 生成一张 w x h 的 PNG 图片.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "pic.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return path
}

// TestExtractTextFile 测试普通文本文件只有基础键且无 error.
func TestExtractTextFile(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("plain text content\n"))

	out := meta.Extract(path)

	if _, ok := out[meta.KeyError]; ok {
		t.Errorf("unexpected error key: %q", out[meta.KeyError])
	}

	if out[meta.KeySize] != "19" {
		t.Errorf("size_bytes = %q, want \"19\"", out[meta.KeySize])
	}

	if out[meta.KeyMimeType] != "text/plain" {
		t.Errorf("mime_type = %q, want \"text/plain\"", out[meta.KeyMimeType])
	}

	if _, ok := out[meta.KeyResolution]; ok {
		t.Error("text file should not have resolution")
	}
}

// TestExtractPNG 测试图片得到分辨率和格式.
func TestExtractPNG(t *testing.T) {
	path := writePNG(t, 3, 2)

	out := meta.Extract(path)

	if _, ok := out[meta.KeyError]; ok {
		t.Fatalf("unexpected error key: %q", out[meta.KeyError])
	}

	if out[meta.KeyMimeType] != "image/png" {
		t.Errorf("mime_type = %q, want \"image/png\"", out[meta.KeyMimeType])
	}

	if out[meta.KeyResolution] != "3x2" {
		t.Errorf("resolution = %q, want \"3x2\"", out[meta.KeyResolution])
	}

	if out[meta.KeyFormat] != "png" {
		t.Errorf("format = %q, want \"png\"", out[meta.KeyFormat])
	}
}

// TestExtractMismatchedExtension 测试改过后缀的文件记录扩展名推断的类型.
func TestExtractMismatchedExtension(t *testing.T) {
	// PNG 内容配上 .txt 后缀
	src := writePNG(t, 2, 2)

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}

	path := writeFile(t, "disguised.txt", data)

	out := meta.Extract(path)

	if out[meta.KeyMimeType] != "image/png" {
		t.Errorf("mime_type = %q, want \"image/png\"", out[meta.KeyMimeType])
	}

	if out[meta.KeyExtMimeType] != "text/plain" {
		t.Errorf("ext_mime_type = %q, want \"text/plain\"", out[meta.KeyExtMimeType])
	}
}

// TestExtractCorruptImage 测试解不开的图片写 error 键但仍有基础元数据.
func TestExtractCorruptImage(t *testing.T) {
	// 合法 PNG 魔数 + 垃圾内容，mimetype 认为是 PNG 但解码会失败
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, []byte("not a real png body")...)
	path := writeFile(t, "broken.png", data)

	out := meta.Extract(path)

	if out[meta.KeyMimeType] != "image/png" {
		t.Errorf("mime_type = %q, want \"image/png\"", out[meta.KeyMimeType])
	}

	if _, ok := out[meta.KeyError]; !ok {
		t.Error("corrupt image should record an error key")
	}

	if _, ok := out[meta.KeySize]; !ok {
		t.Error("size_bytes missing for corrupt image")
	}
}

// TestExtractMissingFile 测试文件不存在时只有 error 键.
func TestExtractMissingFile(t *testing.T) {
	out := meta.Extract(filepath.Join(t.TempDir(), "gone.bin"))

	if _, ok := out[meta.KeyError]; !ok {
		t.Error("missing file should record an error key")
	}

	if _, ok := out[meta.KeySize]; ok {
		t.Error("missing file should not have size_bytes")
	}
}
