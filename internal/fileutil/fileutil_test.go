package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCopyFile(t *testing.T) {
	tempDir := t.TempDir()

	srcContent := "sermon draft"
	srcPath := filepath.Join(tempDir, "src.txt")
	if err := os.WriteFile(srcPath, []byte(srcContent), 0644); err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}

	dstPath := filepath.Join(tempDir, "dst.txt")
	if err := CopyFile(srcPath, dstPath); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	dstContent, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("failed to read destination file: %v", err)
	}
	if string(dstContent) != srcContent {
		t.Errorf("content mismatch: got %q, want %q", dstContent, srcContent)
	}
}

func TestCopyFile_CreateDir(t *testing.T) {
	tempDir := t.TempDir()

	srcPath := filepath.Join(tempDir, "src.txt")
	if err := os.WriteFile(srcPath, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create source file: %v", err)
	}

	dstPath := filepath.Join(tempDir, "nested", "deep", "dst.txt")
	if err := CopyFile(srcPath, dstPath); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	if _, err := os.Stat(dstPath); os.IsNotExist(err) {
		t.Error("destination file not created")
	}
}

func TestCopyFile_NonexistentSource(t *testing.T) {
	tempDir := t.TempDir()

	err := CopyFile("/nonexistent/file", filepath.Join(tempDir, "dst.txt"))
	if err == nil {
		t.Error("expected error for nonexistent source")
	}
}

func TestCopyDir(t *testing.T) {
	tempDir := t.TempDir()

	srcDir := filepath.Join(tempDir, "src")
	if err := os.MkdirAll(filepath.Join(srcDir, "subdir"), 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "file1.txt"), []byte("content1"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "subdir", "file2.txt"), []byte("content2"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	dstDir := filepath.Join(tempDir, "dst")
	if err := CopyDir(srcDir, dstDir); err != nil {
		t.Fatalf("CopyDir failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, "file1.txt")); os.IsNotExist(err) {
		t.Error("file1.txt not copied")
	}
	content, _ := os.ReadFile(filepath.Join(dstDir, "subdir", "file2.txt"))
	if string(content) != "content2" {
		t.Errorf("content mismatch: got %q, want %q", content, "content2")
	}
}

func TestBackupPath(t *testing.T) {
	at := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
	got := BackupPath(filepath.Join("docs", "report.docx"), at)
	want := filepath.Join("docs", "report_backup_20240131_154500.docx")
	if got != want {
		t.Errorf("BackupPath() = %q, want %q", got, want)
	}
}

func TestCreateBackup(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sermon.docx")
	if err := os.WriteFile(path, []byte("docx bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.Contains(filepath.Base(backup), "sermon_backup_") {
		t.Errorf("backup name = %q, want sermon_backup_ prefix", backup)
	}
	if !strings.HasSuffix(backup, ".docx") {
		t.Errorf("backup name = %q, want .docx suffix", backup)
	}

	content, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(content) != "docx bytes" {
		t.Errorf("backup content = %q", content)
	}
}

func TestBackupXZRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sermon.docx")
	original := []byte("compressible document bytes, repeated repeated repeated")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := CreateBackupXZ(path)
	if err != nil {
		t.Fatalf("CreateBackupXZ failed: %v", err)
	}
	if !strings.HasSuffix(backup, ".docx.xz") {
		t.Errorf("backup name = %q, want .docx.xz suffix", backup)
	}

	restored := filepath.Join(tempDir, "restored.docx")
	if err := RestoreBackupXZ(backup, restored); err != nil {
		t.Fatalf("RestoreBackupXZ failed: %v", err)
	}
	content, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != string(original) {
		t.Error("restored content differs from original")
	}
}

func TestIsBackup(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report_backup_20240131_154500.docx", true},
		{"report_backup_20240131_154500.docx.xz", true},
		{"report.docx", false},
		{"backup_plan.docx", false},
	}
	for _, tt := range tests {
		if got := IsBackup(tt.name); got != tt.want {
			t.Errorf("IsBackup(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDiscoverDocuments(t *testing.T) {
	tempDir := t.TempDir()

	files := []string{
		"b-second.docx",
		"a-first.docx",
		"notes.txt",
		"~$a-first.docx",
		"a-first_backup_20240131_154500.docx",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tempDir, "nested.docx"), 0755); err != nil {
		t.Fatal(err)
	}

	// Discovery recurses into subdirectories, with the same skips.
	subDir := filepath.Join(tempDir, "chapters")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"c-third.docx", "~$c-third.docx", "c-third_backup_20240131_154500.docx"} {
		if err := os.WriteFile(filepath.Join(subDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := DiscoverDocuments(tempDir)
	if err != nil {
		t.Fatalf("DiscoverDocuments failed: %v", err)
	}

	want := []string{
		filepath.Join(tempDir, "a-first.docx"),
		filepath.Join(tempDir, "b-second.docx"),
		filepath.Join(subDir, "c-third.docx"),
	}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents %v, want %d", len(docs), docs, len(want))
	}
	for i := range want {
		if docs[i] != want[i] {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i], want[i])
		}
	}
}

func TestDiscoverDocuments_MissingDir(t *testing.T) {
	if _, err := DiscoverDocuments("/nonexistent/dir"); err == nil {
		t.Error("expected error for missing directory")
	}
}
