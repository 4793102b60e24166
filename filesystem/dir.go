package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	DefaultMaxFileSize = 3 * 1024 * 1024 // 3MByte
)

// Desktop is a FileSystem on the current directory.
var Desktop = &Dir{MaxFileSize: DefaultMaxFileSize}

// Dir is a FileSystem on the OS directory Root.
// Relative paths are resolved from Root, or from the current directory
// if Root is empty. Absolute paths are used as is.
type Dir struct {
	Root        string
	MaxFileSize int64 // in bytes, 0 means no limit.
}

func (d *Dir) ResolvePath(fpath string) (string, error) {
	if filepath.IsAbs(fpath) || d.Root == "" {
		return filepath.Clean(fpath), nil
	}
	return filepath.Join(d.Root, fpath), nil
}

func (d *Dir) Load(fpath string) (io.ReadCloser, error) {
	fpath, _ = d.ResolvePath(fpath)
	finfo, err := os.Stat(fpath)
	if err != nil {
		return nil, fmt.Errorf("can not fetch file info: %w", err)
	}
	if max := d.MaxFileSize; max > 0 && finfo.Size() > max {
		return nil, fmt.Errorf("%w: %s (>%v bytes)", ErrTooLarge, fpath, max)
	}
	return os.Open(fpath)
}

func (d *Dir) Exist(fpath string) bool {
	fpath, _ = d.ResolvePath(fpath)
	_, err := os.Stat(fpath)
	return err == nil
}

func (d *Dir) Store(fpath string) (io.WriteCloser, error) {
	fpath, _ = d.ResolvePath(fpath)
	if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
		return nil, fmt.Errorf("can not create store directory: %w", err)
	}
	fp, err := os.Create(fpath)
	if err != nil {
		return nil, fmt.Errorf("can not create store file: %w", err)
	}
	return fp, nil
}

func (d *Dir) Remove(fpath string) error {
	fpath, _ = d.ResolvePath(fpath)
	return os.Remove(fpath)
}
