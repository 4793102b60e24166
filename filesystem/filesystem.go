package filesystem

import (
	"errors"
	"fmt"
	"io"

	"github.com/mzki/puzzlescene/util/log"
)

// FileSystem is an abstraction of the file storage used by
// the game, e.g. scripts, resource manifest and save data.
type FileSystem interface {
	Loader

	// create data store entry. Parent directories are created if needed.
	Store(filepath string) (io.WriteCloser, error)
}

// Remover is optionally implemented by FileSystem which can delete files.
type Remover interface {
	Remove(filepath string) error
}

// PathResolver resolves file path on the filesystem.
type PathResolver interface {
	ResolvePath(path string) (string, error)
}

// NopPathResolver implements PathResolver interface.
type NopPathResolver struct{}

// ResolvePath returns path as is and no error.
func (NopPathResolver) ResolvePath(path string) (string, error) { return path, nil }

// Loader loads file content by path.
type Loader interface {
	// Load returns the content of filepath. Close() is responsible for the caller.
	Load(filepath string) (reader io.ReadCloser, err error)

	// Exist returns whether filepath exists.
	Exist(filepath string) bool
}

var (
	ErrTooLarge     = errors.New("filesystem: file is too large")
	ErrNotSupported = errors.New("filesystem: operation not supported")
)

// Default is a default FileSystem to be used by exported functions.
var Default FileSystem = Desktop

func Load(filepath string) (reader io.ReadCloser, err error) {
	log.Debugf("FileSystem.Load: %s", filepath)
	return Default.Load(filepath)
}

func Exist(filepath string) bool {
	return Default.Exist(filepath)
}

func Store(filepath string) (io.WriteCloser, error) {
	log.Debugf("FileSystem.Store: %s", filepath)
	return Default.Store(filepath)
}

// RemoveFrom removes filepath from fs. It returns ErrNotSupported
// if fs does not implement Remover.
func RemoveFrom(fs FileSystem, filepath string) error {
	r, ok := fs.(Remover)
	if !ok {
		return fmt.Errorf("%w: remove %s", ErrNotSupported, filepath)
	}
	log.Debugf("FileSystem.Remove: %s", filepath)
	return r.Remove(filepath)
}

// ReadFile reads whole content of filepath from Default.
func ReadFile(filepath string) ([]byte, error) {
	return ReadFileFrom(Default, filepath)
}

// ReadFileFrom reads whole content of filepath from ldr.
func ReadFileFrom(ldr Loader, filepath string) ([]byte, error) {
	r, err := ldr.Load(filepath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("filesystem: read %s: %w", filepath, err)
	}
	return bs, nil
}

// ResolvePath resolves file path under filesystem.Default.
// If Default does not implement PathResolver, path itself is returned.
func ResolvePath(path string) (string, error) {
	return ResolvePathFS(Default, path)
}

// ResolvePathFS resolves file path under given Loader.
func ResolvePathFS(ldr Loader, path string) (string, error) {
	if pr, ok := ldr.(PathResolver); ok {
		return pr.ResolvePath(path)
	}
	return path, nil
}

// OpenWatcher creates Watcher resolving paths by Default FileSystem.
// Note that returned watcher must call Close() after use.
func OpenWatcher() (Watcher, error) {
	if pr, ok := Default.(PathResolver); ok {
		return OpenWatcherPR(pr)
	}
	log.Debug("Default FileSystem not implement PathResolver. Use NopPathResolver instead of that.")
	return newWatcher(NopPathResolver{})
}

// OpenWatcherPR creates Watcher from given PathResolver.
func OpenWatcherPR(pr PathResolver) (Watcher, error) {
	return newWatcher(pr)
}
