// Package toml wraps BurntSushi/toml with the filesystem package,
// so that config and manifest files are loaded from filesystem.Default.
package toml

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/util/log"
)

// encode data to Writer.
func Encode(w io.Writer, data interface{}) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(data)
}

// encode data to file.
func EncodeFile(file string, data interface{}) error {
	fp, err := filesystem.Store(file)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Encode(fp, data)
}

// decode from reader and store it to data.
// Undecoded keys are only logged.
func Decode(r io.Reader, data interface{}) error {
	meta, err := toml.NewDecoder(r).Decode(data)
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Infoln("toml.Decode:", "undecoded keys exist,", undecoded)
	}
	return err
}

// DecodeStrict is like Decode but undecoded keys are reported as error.
// It is used for files written by hand, where a typo must not be ignored.
func DecodeStrict(r io.Reader, data interface{}) error {
	meta, err := toml.NewDecoder(r).Decode(data)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// decode from file and store it to data.
func DecodeFile(file string, data interface{}) error {
	fp, err := filesystem.Load(file)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Decode(fp, data)
}

// DecodeFileFrom decodes file loaded by ldr strictly.
func DecodeFileFrom(ldr filesystem.Loader, file string, data interface{}) error {
	fp, err := ldr.Load(file)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := DecodeStrict(fp, data); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}
