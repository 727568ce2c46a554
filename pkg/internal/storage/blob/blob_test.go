package blob_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yeisme/dandelion/pkg/internal/storage/blob"
)

// TestSanitize 测试文件名收敛规则.
func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"path stripped", "/etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\notes.txt`, "notes.txt"},
		{"traversal stripped", "../../secret.txt", "secret.txt"},
		{"spaces replaced", "my holiday photo.jpg", "my_holiday_photo.jpg"},
		{"unicode replaced", "résumé.pdf", "r_sum_.pdf"},
		{"leading dots trimmed", "...hidden", "hidden"},
		{"empty falls back", "", "file"},
		{"only separators falls back", "///", "file"},
		{"only dots falls back", "..", "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := blob.Sanitize(tc.in); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestSaveAndOpen 测试写入后能按存储名读回相同内容.
func TestSaveAndOpen(t *testing.T) {
	c, err := blob.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir: %v", err)
	}

	content := "hello dandelion"

	res, err := c.Save(context.Background(), "greeting.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if res.StoredName != "greeting.txt" {
		t.Errorf("StoredName = %q, want %q", res.StoredName, "greeting.txt")
	}

	if res.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", res.Size, len(content))
	}

	if len(res.Checksum) != 16 {
		t.Errorf("Checksum = %q, want 16 hex chars", res.Checksum)
	}

	f, err := c.Open(res.StoredName)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	buf := make([]byte, len(content))
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(buf) != content {
		t.Errorf("read back %q, want %q", string(buf), content)
	}
}

// TestSaveCollisionNaming 测试同名文件自动追加 _N 后缀.
func TestSaveCollisionNaming(t *testing.T) {
	c, err := blob.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir: %v", err)
	}

	ctx := context.Background()
	want := []string{"report.pdf", "report_1.pdf", "report_2.pdf"}

	for i, name := range want {
		res, err := c.Save(ctx, "report.pdf", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}

		if res.StoredName != name {
			t.Errorf("Save #%d StoredName = %q, want %q", i, res.StoredName, name)
		}
	}

	names, err := c.Names(ctx)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}

	if len(names) != len(want) {
		t.Errorf("Names returned %d entries, want %d", len(names), len(want))
	}
}

// TestSaveChecksumStable 测试相同内容得到相同校验和.
func TestSaveChecksumStable(t *testing.T) {
	c, err := blob.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir: %v", err)
	}

	ctx := context.Background()

	a, err := c.Save(ctx, "a.bin", strings.NewReader("same bytes"))
	if err != nil {
		t.Fatalf("Save a: %v", err)
	}

	b, err := c.Save(ctx, "b.bin", strings.NewReader("same bytes"))
	if err != nil {
		t.Fatalf("Save b: %v", err)
	}

	if a.Checksum != b.Checksum {
		t.Errorf("checksums differ: %q vs %q", a.Checksum, b.Checksum)
	}

	other, err := c.Save(ctx, "c.bin", strings.NewReader("different bytes"))
	if err != nil {
		t.Fatalf("Save c: %v", err)
	}

	if other.Checksum == a.Checksum {
		t.Error("different content produced identical checksum")
	}
}

// TestRemoveMissing 测试删除不存在的文件不报错.
func TestRemoveMissing(t *testing.T) {
	c, err := blob.NewWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewWithDir: %v", err)
	}

	if err := c.Remove("never-stored.txt"); err != nil {
		t.Errorf("Remove missing file: %v", err)
	}
}
