// Package batch rewrites scripture citations across whole DOCX
// documents, one document per job, fanned out over a worker pool.
package batch

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/CedarVerse/core/standardize"
	"github.com/FocuswithJustin/CedarVerse/internal/docx"
	"github.com/FocuswithJustin/CedarVerse/internal/fileutil"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

// Options control how documents are processed.
type Options struct {
	// Workers is the fan-out for ProcessDir. Zero means one per CPU.
	Workers int
	// Backup writes a timestamped copy next to each document before
	// it is modified.
	Backup bool
	// Compress stores backups xz-compressed.
	Compress bool
}

// DefaultOptions enables plain backups with automatic worker sizing.
func DefaultOptions() Options {
	return Options{Backup: true}
}

// Job identifies one document to process.
type Job struct {
	ID   string
	Path string
}

// NewJob assigns a fresh ID to a document path.
func NewJob(path string) Job {
	return Job{ID: uuid.NewString(), Path: path}
}

// Result records what happened to one document. InputHash and
// OutputHash are hex BLAKE3 digests of the file bytes before and
// after the rewrite; they are equal when nothing changed.
type Result struct {
	ID          string
	Path        string
	OK          bool
	Err         string
	RunsTotal   int
	RunsChanged int
	BackupPath  string
	InputHash   string
	OutputHash  string
	Diagnostics []standardize.Diagnostic
	Duration    time.Duration
}

func contentHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// failed marks the result as a failure for one operation, keeping
// whatever was already recorded (hashes, diagnostics) so reports on
// failed documents stay informative.
func (r Result) failed(operation string, err error, elapsed time.Duration) Result {
	logging.DocumentError(r.Path, operation, err)
	r.OK = false
	r.Err = fmt.Sprintf("%s: %v", operation, err)
	r.Duration = elapsed
	return r
}

// ProcessDocument rewrites every run of every paragraph in one
// document. Failures come back as a Result with Err set; the function
// never panics on malformed input.
func ProcessDocument(job Job, opts Options) Result {
	start := time.Now()
	res := Result{ID: job.ID, Path: job.Path}

	data, err := os.ReadFile(job.Path)
	if err != nil {
		return res.failed("read", err, time.Since(start))
	}
	res.InputHash = contentHash(data)

	doc, err := docx.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return res.failed("parse", err, time.Since(start))
	}

	std := standardize.New(standardize.WithDiagnostics(func(d standardize.Diagnostic) {
		res.Diagnostics = append(res.Diagnostics, d)
	}))

	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			res.RunsTotal++
			orig := run.Text()
			next := standardize.PostProcess(std.Text(orig))
			if next != orig {
				run.SetText(next)
				res.RunsChanged++
			}
		}
	}

	if res.RunsChanged == 0 {
		res.OK = true
		res.OutputHash = res.InputHash
		res.Duration = time.Since(start)
		logging.DocumentProcessed(job.Path, 0, res.Duration)
		return res
	}

	if opts.Backup {
		backup := fileutil.CreateBackup
		if opts.Compress {
			backup = fileutil.CreateBackupXZ
		}
		res.BackupPath, err = backup(job.Path)
		if err != nil {
			return res.failed("backup", err, time.Since(start))
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return res.failed("encode", err, time.Since(start))
	}
	if err := os.WriteFile(job.Path, buf.Bytes(), 0o644); err != nil {
		return res.failed("save", err, time.Since(start))
	}

	res.OK = true
	res.OutputHash = contentHash(buf.Bytes())
	res.Duration = time.Since(start)
	logging.DocumentProcessed(job.Path, res.RunsChanged, res.Duration)
	return res
}

// ProcessDir discovers the documents in dir and processes them in
// parallel. Results are sorted by path; per-document failures are
// reported in the results, not as an error.
func ProcessDir(dir string, opts Options) ([]Result, error) {
	start := time.Now()

	docs, err := fileutil.DiscoverDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	p := newPool[Job, Result](opts.Workers, len(docs))
	p.start(func(job Job) Result {
		return ProcessDocument(job, opts)
	})
	for _, path := range docs {
		p.submit(NewJob(path))
	}
	p.close()

	results := make([]Result, 0, len(docs))
	failed := 0
	for res := range p.results {
		if !res.OK {
			failed++
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	logging.BatchSummary(dir, len(results)-failed, failed, time.Since(start))
	return results, nil
}
