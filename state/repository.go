package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/util/log"
)

// Repository is a data-store which persists Documents by puzzle id.
type Repository interface {
	// Exist returns whether a document with id exists.
	// return false if not exists or context is canceled.
	Exist(ctx context.Context, id string) bool

	// Save persists doc as id with title shown in save list.
	Save(ctx context.Context, id string, title string, doc *Document) error

	// Load restores document of id.
	// It returns ErrNotFound if no document is saved.
	Load(ctx context.Context, id string) (*Document, error)

	// LoadMeta returns metadata of id without reading the document.
	LoadMeta(ctx context.Context, id string) (*MetaData, error)
}

var (
	ErrNotFound  = errors.New("state: document not found")
	ErrInvalidID = errors.New("state: invalid document id")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// FileRepository saves one file per puzzle under Config.SaveFileDir
// of the FileSystem. Each file consists of MetaData header and
// msgpack encoded Document.
type FileRepository struct {
	fs         filesystem.FileSystem
	config     Config
	expectMeta MetaData
}

// NewFileRepository returns FileRepository. version is written to
// every file and newer files than it are refused.
func NewFileRepository(fs filesystem.FileSystem, config Config, version int32) *FileRepository {
	if config.SaveFileDir == "" {
		config.SaveFileDir = DefaultSaveFileDir
	}
	return &FileRepository{
		fs:     fs,
		config: config,
		expectMeta: MetaData{
			Identifier: DefaultMetaIdent,
			Version:    version,
		},
	}
}

func (repo *FileRepository) path(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(repo.config.SaveFileDir, id+DefaultSaveExt), nil
}

func (repo *FileRepository) Exist(ctx context.Context, id string) bool {
	if ctx.Err() != nil {
		return false
	}
	path, err := repo.path(id)
	if err != nil {
		return false
	}
	return repo.fs.Exist(path)
}

func (repo *FileRepository) Save(ctx context.Context, id string, title string, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := repo.path(id)
	if err != nil {
		return err
	}

	// encode whole content first so that an encode error leaves
	// the previous file as is.
	buf := new(bytes.Buffer)
	metadata := repo.expectMeta // copy
	metadata.Title = title
	if err := writeMetaDataTo(buf, &metadata); err != nil {
		return err
	}
	if err := doc.Encode(buf); err != nil {
		return err
	}

	fp, err := repo.fs.Store(path)
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(fp)
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := filesystem.RemoveFrom(repo.fs, path); rerr != nil {
			log.Debugf("state: can not remove partial file %s: %v", path, rerr)
		}
		return fmt.Errorf("state: save %s: %w", id, err)
	}
	return nil
}

func (repo *FileRepository) Load(ctx context.Context, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := repo.path(id)
	if err != nil {
		return nil, err
	}
	if !repo.fs.Exist(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fp, err := repo.fs.Load(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	metadata := &MetaData{}
	if err := readMetaDataFrom(fp, metadata); err != nil {
		return nil, err
	}
	if err := validateMetaData(metadata, repo.expectMeta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Decode(fp)
}

func (repo *FileRepository) LoadMeta(ctx context.Context, id string) (*MetaData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := repo.path(id)
	if err != nil {
		return nil, err
	}
	if !repo.fs.Exist(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fp, err := repo.fs.Load(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	metadata := &MetaData{}
	if err := readMetaDataFrom(fp, metadata); err != nil {
		return nil, err
	}
	return metadata, validateMetaData(metadata, repo.expectMeta)
}
