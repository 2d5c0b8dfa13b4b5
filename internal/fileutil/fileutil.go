// Package fileutil provides filesystem helpers for document processing:
// copies, timestamped backups, and .docx discovery.
package fileutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

// backupStamp is the timestamp layout embedded in backup file names.
const backupStamp = "20060102_150405"

// CopyFile copies a single file, creating the destination directory if
// needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.NewIO("open", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.NewIO("mkdir", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.NewIO("copy", dst, err)
	}
	return out.Close()
}

// CopyDir recursively copies a directory tree.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return CopyFile(path, target)
	})
}

// BackupPath returns the backup name for path at the given time:
// "report.docx" becomes "report_backup_20240131_154500.docx" next to the
// original.
func BackupPath(path string, at time.Time) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, stem+"_backup_"+at.Format(backupStamp)+ext)
}

// CreateBackup copies path to a timestamped sibling and returns the
// backup's path.
func CreateBackup(path string) (string, error) {
	backup := BackupPath(path, time.Now())
	if err := CopyFile(path, backup); err != nil {
		return "", errors.Wrap(err, "create backup")
	}
	return backup, nil
}

// CreateBackupXZ writes an xz-compressed backup alongside the original,
// named like CreateBackup with an ".xz" suffix, and returns its path.
func CreateBackupXZ(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer in.Close()

	backup := BackupPath(path, time.Now()) + ".xz"
	out, err := os.Create(backup)
	if err != nil {
		return "", errors.NewIO("create", backup, err)
	}

	xw, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		return "", errors.Wrap(err, "init xz writer")
	}
	if _, err := io.Copy(xw, in); err != nil {
		out.Close()
		return "", errors.NewIO("compress", backup, err)
	}
	if err := xw.Close(); err != nil {
		out.Close()
		return "", errors.Wrap(err, "finish xz stream")
	}
	if err := out.Close(); err != nil {
		return "", errors.NewIO("close", backup, err)
	}
	return backup, nil
}

// RestoreBackupXZ decompresses an xz backup created by CreateBackupXZ to
// dst.
func RestoreBackupXZ(backup, dst string) error {
	in, err := os.Open(backup)
	if err != nil {
		return errors.NewIO("open", backup, err)
	}
	defer in.Close()

	xr, err := xz.NewReader(in)
	if err != nil {
		return errors.Wrap(err, "init xz reader")
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	if _, err := io.Copy(out, xr); err != nil {
		out.Close()
		return errors.NewIO("decompress", dst, err)
	}
	return out.Close()
}

// IsBackup reports whether the file name looks like a backup produced by
// CreateBackup or CreateBackupXZ.
func IsBackup(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), ".xz")
	return strings.Contains(base, "_backup_")
}

// DiscoverDocuments walks dir and returns every .docx file beneath it,
// sorted by path. Word lock files ("~$...") and backups are skipped.
func DiscoverDocuments(dir string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), ".docx") {
			return nil
		}
		if strings.HasPrefix(name, "~$") || IsBackup(name) {
			return nil
		}
		docs = append(docs, path)
		return nil
	})
	if err != nil {
		return nil, errors.NewIO("walk dir", dir, err)
	}
	sort.Strings(docs)
	return docs, nil
}
