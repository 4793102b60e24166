package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
)

// FS adapts read-only fs.FS, e.g. embed.FS, to FileSystem.
// Store always fails with ErrNotSupported.
type FS struct {
	Backend fs.FS
}

// FromFS converts fs.FS into FileSystem.
func FromFS(fsys fs.FS) *FS {
	return &FS{Backend: fsys}
}

func fsPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (f *FS) Load(fpath string) (io.ReadCloser, error) {
	return f.Backend.Open(fsPath(fpath))
}

func (f *FS) Exist(fpath string) bool {
	_, err := fs.Stat(f.Backend, fsPath(fpath))
	return err == nil
}

func (f *FS) Store(fpath string) (io.WriteCloser, error) {
	return nil, fmt.Errorf("%w: store %s on read-only fs", ErrNotSupported, fpath)
}
