package batch

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/CedarVerse/internal/docx"
)

const citationsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r>
        <w:t>The sermon referenced Jn 3:16 in passing.</w:t>
      </w:r>
      <w:r>
        <w:t>A second run.</w:t>
      </w:r>
    </w:p>
    <w:tbl>
      <w:tr>
        <w:tc>
          <w:p>
            <w:r>
              <w:t>Table cell citing Gal 3:27.</w:t>
            </w:r>
          </w:p>
        </w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

const plainXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r>
        <w:t>Nothing to standardize here.</w:t>
      </w:r>
    </w:p>
  </w:body>
</w:document>`

// writeDocx assembles a DOCX container on disk with the given
// word/document.xml content plus the minimum companion parts.
func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"_rels/.rels":         `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
		"word/document.xml":   documentXML,
	}
	for name, content := range parts {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func documentText(t *testing.T, path string) string {
	t.Helper()
	doc, err := docx.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	var sb strings.Builder
	for _, p := range doc.Paragraphs() {
		sb.WriteString(p.Text())
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestProcessDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.docx")
	writeDocx(t, path, citationsXML)

	res := ProcessDocument(NewJob(path), DefaultOptions())
	if !res.OK {
		t.Fatalf("ProcessDocument failed: %s", res.Err)
	}
	if res.RunsTotal != 3 {
		t.Errorf("RunsTotal = %d, want 3", res.RunsTotal)
	}
	if res.RunsChanged != 2 {
		t.Errorf("RunsChanged = %d, want 2", res.RunsChanged)
	}
	if res.InputHash == res.OutputHash {
		t.Error("hashes should differ after a rewrite")
	}
	if res.BackupPath == "" {
		t.Fatal("expected a backup path")
	}
	if _, err := os.Stat(res.BackupPath); err != nil {
		t.Errorf("backup not on disk: %v", err)
	}

	text := documentText(t, path)
	if !strings.Contains(text, "John 3:16") {
		t.Errorf("rewrite missing from body:\n%s", text)
	}
	if !strings.Contains(text, "Galatians 3:27") {
		t.Errorf("table-cell rewrite missing:\n%s", text)
	}
}

func TestProcessDocumentNoChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.docx")
	writeDocx(t, path, plainXML)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	res := ProcessDocument(NewJob(path), DefaultOptions())
	if !res.OK {
		t.Fatalf("ProcessDocument failed: %s", res.Err)
	}
	if res.RunsChanged != 0 {
		t.Errorf("RunsChanged = %d, want 0", res.RunsChanged)
	}
	if res.OutputHash != res.InputHash {
		t.Error("hashes should match when nothing changed")
	}
	if res.BackupPath != "" {
		t.Errorf("no backup expected, got %s", res.BackupPath)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("untouched document was rewritten on disk")
	}
}

func TestProcessDocumentCompressedBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sermon.docx")
	writeDocx(t, path, citationsXML)

	opts := Options{Backup: true, Compress: true}
	res := ProcessDocument(NewJob(path), opts)
	if !res.OK {
		t.Fatalf("ProcessDocument failed: %s", res.Err)
	}
	if !strings.HasSuffix(res.BackupPath, ".xz") {
		t.Errorf("BackupPath = %s, want .xz suffix", res.BackupPath)
	}
}

func TestProcessDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(garbage, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		path      string
		operation string
		wantHash  bool
	}{
		{"missing file", filepath.Join(dir, "absent.docx"), "read", false},
		{"not a container", garbage, "parse", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ProcessDocument(NewJob(tt.path), DefaultOptions())
			if res.OK {
				t.Fatal("expected failure")
			}
			if !strings.HasPrefix(res.Err, tt.operation+":") {
				t.Errorf("Err = %q, want %q prefix", res.Err, tt.operation)
			}
			// Fields recorded before the failure survive into the result.
			if got := res.InputHash != ""; got != tt.wantHash {
				t.Errorf("InputHash set = %v, want %v", got, tt.wantHash)
			}
			if res.ID == "" || res.Path != tt.path {
				t.Errorf("result identity lost: %+v", res)
			}
		})
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "a.docx"), citationsXML)
	writeDocx(t, filepath.Join(dir, "b.docx"), plainXML)
	if err := os.WriteFile(filepath.Join(dir, "c.docx"), []byte("corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Lock files and prior backups are skipped by discovery.
	if err := os.WriteFile(filepath.Join(dir, "~$a.docx"), []byte("lock"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := ProcessDir(dir, Options{Workers: 2, Backup: false})
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Fatal("results not sorted by path")
		}
	}
	failed := 0
	for _, res := range results {
		if res.ID == "" {
			t.Error("result missing job ID")
		}
		if !res.OK {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestProcessDirEmpty(t *testing.T) {
	results, err := ProcessDir(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestNewJobUniqueIDs(t *testing.T) {
	a, b := NewJob("x.docx"), NewJob("x.docx")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("job IDs not unique: %q %q", a.ID, b.ID)
	}
}
