package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mzki/puzzlescene/util/errutil"
)

// MetaData is saved ahead of the document.
// It is referred to validate reading file.
type MetaData struct {
	Identifier string
	Version    int32
	Title      string
}

const (
	DefaultMetaIdent    = "pzsav"
	DefaultMetaIdentLen = 5

	MetaTitleLimit = 120 // 30 * 4byte char
)

var (
	ErrTitleTooLarge     = errors.New("state: title in metadata is too long")
	ErrUnknownIdentifier = errors.New("state: signature in metadata is not correct")
	ErrNewerVersion      = errors.New("state: saved by newer version")
)

var binaryEndian = binary.LittleEndian

// writeMetaDataTo writes metadata into w.
//
//	identifier  5 bytes
//	version     int32
//	title len   int32
//	title       variable
func writeMetaDataTo(w io.Writer, md *MetaData) error {
	if len(md.Identifier) != DefaultMetaIdentLen {
		return fmt.Errorf("state: identifier must be %d bytes, got %q", DefaultMetaIdentLen, md.Identifier)
	}
	btitle := []byte(md.Title)
	if len(btitle) > MetaTitleLimit {
		return ErrTitleTooLarge
	}

	ewriter := errutil.NewErrWriter(w)
	ewriter.Write([]byte(md.Identifier))
	var buf [4]byte
	binaryEndian.PutUint32(buf[:], uint32(md.Version))
	ewriter.Write(buf[:])
	binaryEndian.PutUint32(buf[:], uint32(len(btitle)))
	ewriter.Write(buf[:])
	ewriter.Write(btitle)
	return ewriter.Err()
}

// readMetaDataFrom reads metadata from r.
// handled errors are just io problems and broken length.
// validation of md is other task.
func readMetaDataFrom(r io.Reader, md *MetaData) error {
	buf := make([]byte, MetaTitleLimit)

	if _, err := io.ReadFull(r, buf[:DefaultMetaIdentLen]); err != nil {
		return fmt.Errorf("state: read identifier: %w", err)
	}
	md.Identifier = string(buf[:DefaultMetaIdentLen])

	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return fmt.Errorf("state: read version: %w", err)
	}
	md.Version = int32(binaryEndian.Uint32(buf[:4]))

	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return fmt.Errorf("state: read title length: %w", err)
	}
	blen := binaryEndian.Uint32(buf[:4])
	if blen > MetaTitleLimit {
		return ErrTitleTooLarge
	}
	if _, err := io.ReadFull(r, buf[:blen]); err != nil {
		return fmt.Errorf("state: read title: %w", err)
	}
	md.Title = string(buf[:blen])
	return nil
}

// validateMetaData returns error if md can not be read as expected.
// Older version is accepted since Document is read tolerantly.
func validateMetaData(md *MetaData, expect MetaData) error {
	if md.Identifier != expect.Identifier {
		return ErrUnknownIdentifier
	}
	if md.Version > expect.Version {
		return fmt.Errorf("%w: %d > %d", ErrNewerVersion, md.Version, expect.Version)
	}
	// Title is ignored for validation
	return nil
}
