package eval

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pbrass/findr/core/ast"
)

// entry is the per-call evaluation context for one directory entry. Metadata
// is loaded on first use and cached for the rest of the expression, so a
// chain of tests against the same entry stats at most once.
type entry struct {
	path   string
	dirent fs.DirEntry
	now    time.Time

	info    fs.FileInfo
	statted bool
}

func (e *entry) name() string {
	return filepath.Base(e.path)
}

func (e *entry) fullPath() string {
	return e.path
}

// stat returns the entry's lstat metadata. Symlinks are judged as links, not
// as their targets, matching the walker's traversal.
func (e *entry) stat() (fs.FileInfo, bool) {
	if !e.statted {
		e.statted = true
		if e.dirent != nil {
			e.info, _ = e.dirent.Info()
		} else {
			e.info, _ = os.Lstat(e.path)
		}
	}
	return e.info, e.info != nil
}

func (e *entry) fileType() ast.FileTypeSet {
	info, ok := e.stat()
	if !ok {
		return 0
	}
	switch m := info.Mode(); {
	case m.IsRegular():
		return ast.TypeFile
	case m.IsDir():
		return ast.TypeDir
	case m&fs.ModeSymlink != 0:
		return ast.TypeSymlink
	case m&fs.ModeNamedPipe != 0:
		return ast.TypePipe
	case m&fs.ModeSocket != 0:
		return ast.TypeSocket
	case m&fs.ModeCharDevice != 0:
		return ast.TypeChar
	case m&fs.ModeDevice != 0:
		return ast.TypeBlock
	}
	return 0
}

func (e *entry) modTime() (time.Time, bool) {
	info, ok := e.stat()
	if !ok {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (e *entry) dirIsEmpty() bool {
	names, err := os.ReadDir(e.path)
	return err == nil && len(names) == 0
}

// referenceTime resolves the timestamp of a newer-test reference file using
// the same timestamp accessor the test will apply to scanned entries.
func referenceTime(path string, ts func(*entry) (time.Time, bool)) (time.Time, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return time.Time{}, errBadReference(path, err)
	}
	ref := &entry{path: path, info: info, statted: true}
	when, ok := ts(ref)
	if !ok {
		return time.Time{}, errBadReference(path, errNoTimestamp)
	}
	return when, nil
}
