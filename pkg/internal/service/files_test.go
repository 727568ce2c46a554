package service_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/yeisme/dandelion/pkg/internal/meta"
	"github.com/yeisme/dandelion/pkg/internal/service"
)

// TestUploadRegistersFile 测试上传后登记行包含内容属性和基础元数据.
func TestUploadRegistersFile(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	content := "hello dandelion upload"

	file, err := fs.Upload(ctx, "notes.txt", strings.NewReader(content), "first note")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if file.ID == 0 {
		t.Fatal("Upload returned zero file ID")
	}

	if file.FileName != "notes.txt" {
		t.Errorf("FileName = %q, want %q", file.FileName, "notes.txt")
	}

	if file.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", file.Size, len(content))
	}

	if file.MimeType != "text/plain" {
		t.Errorf("MimeType = %q, want \"text/plain\"", file.MimeType)
	}

	if file.Comment != "first note" {
		t.Errorf("Comment = %q, want %q", file.Comment, "first note")
	}

	if file.Checksum == "" {
		t.Error("Checksum is empty")
	}

	got, err := fs.Get(ctx, file.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	metaKeys := make(map[string]string, len(got.Meta))
	for _, m := range got.Meta {
		metaKeys[m.MetaKey] = m.MetaValue
	}

	if metaKeys[meta.KeySize] == "" {
		t.Error("size_bytes metadata missing")
	}

	if metaKeys[meta.KeyMimeType] != "text/plain" {
		t.Errorf("mime_type metadata = %q, want \"text/plain\"", metaKeys[meta.KeyMimeType])
	}
}

// TestUploadCollisionRenames 测试同名上传自动改名，两份内容都保留.
func TestUploadCollisionRenames(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	first, err := fs.Upload(ctx, "report.pdf", strings.NewReader("first body"), "")
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}

	second, err := fs.Upload(ctx, "report.pdf", strings.NewReader("second body"), "")
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}

	if first.FileName != "report.pdf" {
		t.Errorf("first FileName = %q, want %q", first.FileName, "report.pdf")
	}

	if second.FileName != "report_1.pdf" {
		t.Errorf("second FileName = %q, want %q", second.FileName, "report_1.pdf")
	}

	n, err := fs.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

// TestUploadEmpty 测试空内容和 nil reader 都按空上传拒绝且不留 blob.
func TestUploadEmpty(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	if _, err := fs.Upload(ctx, "empty.txt", strings.NewReader(""), ""); !errors.Is(err, service.ErrEmptyUpload) {
		t.Errorf("empty Upload: err = %v, want ErrEmptyUpload", err)
	}

	if _, err := fs.Upload(ctx, "nil.txt", nil, ""); !errors.Is(err, service.ErrEmptyUpload) {
		t.Errorf("nil reader Upload: err = %v, want ErrEmptyUpload", err)
	}

	n, err := fs.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	if n != 0 {
		t.Errorf("Count = %d after rejected uploads, want 0", n)
	}
}

// TestListNewestFirst 测试列表新文件在前.
func TestListNewestFirst(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	for _, name := range []string{"old.txt", "middle.txt", "new.txt"} {
		if _, err := fs.Upload(ctx, name, strings.NewReader("content of "+name), ""); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	files, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("List returned %d files, want 3", len(files))
	}

	want := []string{"new.txt", "middle.txt", "old.txt"}
	for i, name := range want {
		if files[i].FileName != name {
			t.Errorf("files[%d].FileName = %q, want %q", i, files[i].FileName, name)
		}
	}
}

// TestSearchMatchesNameAndComment 测试大小写不敏感的搜索命中文件名和备注.
func TestSearchMatchesNameAndComment(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	uploads := []struct {
		name    string
		comment string
	}{
		{"Vacation_Photo.jpg.txt", ""},
		{"taxes.txt", "2025 Tax Return"},
		{"misc.txt", "nothing special"},
	}

	for _, u := range uploads {
		if _, err := fs.Upload(ctx, u.name, strings.NewReader("body of "+u.name), u.comment); err != nil {
			t.Fatalf("Upload %s: %v", u.name, err)
		}
	}

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches filename case-insensitive", "vacation", []string{"Vacation_Photo.jpg.txt"}},
		{"matches comment case-insensitive", "tax return", []string{"taxes.txt"}},
		{"matches filename and comment", "ta", []string{"taxes.txt"}},
		{"no match", "zzz", nil},
		{"empty query lists all", "", []string{"misc.txt", "taxes.txt", "Vacation_Photo.jpg.txt"}},
		{"whitespace query lists all", "   ", []string{"misc.txt", "taxes.txt", "Vacation_Photo.jpg.txt"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := fs.Search(ctx, tc.query)
			if err != nil {
				t.Fatalf("Search(%q): %v", tc.query, err)
			}

			if len(files) != len(tc.want) {
				t.Fatalf("Search(%q) returned %d files, want %d", tc.query, len(files), len(tc.want))
			}

			for i, name := range tc.want {
				if files[i].FileName != name {
					t.Errorf("Search(%q)[%d] = %q, want %q", tc.query, i, files[i].FileName, name)
				}
			}
		})
	}
}

// TestDeleteRemovesRegistrationAndBlob 测试删除后登记和磁盘内容都消失.
func TestDeleteRemovesRegistrationAndBlob(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	file, err := fs.Upload(ctx, "doomed.txt", strings.NewReader("to be deleted"), "")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := os.Stat(file.StoragePath); err != nil {
		t.Fatalf("blob missing after upload: %v", err)
	}

	if err := fs.Delete(ctx, file.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := fs.Get(ctx, file.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}

	if _, err := os.Stat(file.StoragePath); !os.IsNotExist(err) {
		t.Errorf("blob still on disk after Delete: %v", err)
	}
}

// TestDeleteMissingID 测试删除不存在的 ID 静默成功.
func TestDeleteMissingID(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	if err := fs.Delete(ctx, 9999); err != nil {
		t.Errorf("Delete missing id: %v", err)
	}
}

// TestOpenMissingBlob 测试登记行在但磁盘内容丢失时按未找到处理.
func TestOpenMissingBlob(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	file, err := fs.Upload(ctx, "fragile.txt", strings.NewReader("content"), "")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, path, err := fs.Open(ctx, file.ID, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got.ID != file.ID {
		t.Errorf("Open returned file %d, want %d", got.ID, file.ID)
	}

	// 模拟磁盘内容被外部删除
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove blob: %v", err)
	}

	if _, _, err := fs.Open(ctx, file.ID, "alice"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Open after blob loss: err = %v, want ErrNotFound", err)
	}
}

// TestOpenUnknownID 测试未知 ID 返回 ErrNotFound.
func TestOpenUnknownID(t *testing.T) {
	ctx := newTestContext(t)
	fs := service.NewFileService(ctx)

	if _, _, err := fs.Open(ctx, 12345, "alice"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Open unknown id: err = %v, want ErrNotFound", err)
	}
}
