// Package state defines the persisted-state contract of puzzles.
//
// Each puzzle serializes its gameplay progress into a Document,
// a key-value map encoded by msgpack. Reading is tolerant: missing or
// malformed values are defaulted and clamped into valid range,
// so that puzzles never see corrupt data.
package state

import (
	"fmt"
	"io"
	"sort"

	"github.com/ugorji/go/codec"

	"github.com/mzki/puzzlescene/access"
	"github.com/mzki/puzzlescene/util/log"
)

// AccessKey is the key for access.State of the puzzle.
const AccessKey = "access"

// Document is a structured key-value document of one puzzle.
// The zero value is not usable, use NewDocument.
type Document struct {
	values map[string]interface{}
}

func NewDocument() *Document {
	return &Document{values: make(map[string]interface{})}
}

// Persistent is implemented by puzzle states that are saved.
type Persistent interface {
	// SaveState writes current progress into doc.
	SaveState(doc *Document)
	// LoadState restores progress from doc. It must accept any doc,
	// falling back to the initial configuration for invalid values.
	LoadState(doc *Document)
}

// Snapshot returns a new Document holding p's state.
func Snapshot(p Persistent) *Document {
	doc := NewDocument()
	p.SaveState(doc)
	return doc
}

func (d *Document) SetInt(key string, v int)        { d.values[key] = int64(v) }
func (d *Document) SetBool(key string, v bool)      { d.values[key] = v }
func (d *Document) SetString(key string, v string) { d.values[key] = v }

func (d *Document) SetInts(key string, vs []int) {
	arr := make([]interface{}, len(vs))
	for i, v := range vs {
		arr[i] = int64(v)
	}
	d.values[key] = arr
}

func (d *Document) SetAccess(a access.State) { d.values[AccessKey] = a.String() }

// Has returns whether key exists.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Delete removes key.
func (d *Document) Delete(key string) { delete(d.values, key) }

// Keys returns all keys in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Document) Len() int { return len(d.values) }

// Int returns integer value of key clamped into [lo, hi].
// It returns def when key is missing or not a number.
func (d *Document) Int(key string, def, lo, hi int) int {
	v, ok := d.values[key]
	if !ok {
		return def
	}
	n, ok := toInt64(v)
	if !ok {
		log.Debugf("state: %s: not a number %v, use default %d", key, v, def)
		return def
	}
	return clamp(n, lo, hi)
}

// Ints returns n integers of key, each clamped into [lo, hi].
// It returns false when key is missing, has a different length
// or contains a non number, so that the caller falls back
// to its initial configuration.
func (d *Document) Ints(key string, n, lo, hi int) ([]int, bool) {
	v, ok := d.values[key]
	if !ok {
		return nil, false
	}
	arr, ok := v.([]interface{})
	if !ok || len(arr) != n {
		log.Debugf("state: %s: expect %d integers, got %v", key, n, v)
		return nil, false
	}
	out := make([]int, n)
	for i, e := range arr {
		x, ok := toInt64(e)
		if !ok {
			log.Debugf("state: %s[%d]: not a number %v", key, i, e)
			return nil, false
		}
		out[i] = clamp(x, lo, hi)
	}
	return out, true
}

// Bool returns boolean value of key, or def when missing or not a boolean.
func (d *Document) Bool(key string, def bool) bool {
	b, ok := d.values[key].(bool)
	if !ok {
		return def
	}
	return b
}

// String returns string value of key, or def when missing or not a string.
func (d *Document) String(key string, def string) string {
	switch s := d.values[key].(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return def
}

// Access returns access.State of the puzzle. Missing or unknown value
// is read as access.Unvisited.
func (d *Document) Access() access.State {
	name := d.String(AccessKey, "")
	a, err := access.Parse(name)
	if err != nil {
		if name != "" {
			log.Debugf("state: %v, use %v", err, access.Unvisited)
		}
		return access.Unvisited
	}
	return a
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		if n > 1<<63-1 {
			return 1<<63 - 1, true
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func clamp(n int64, lo, hi int) int {
	if n < int64(lo) {
		return lo
	}
	if n > int64(hi) {
		return hi
	}
	return int(n)
}

var codecHandler = newHandle()

func newHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.RawToString = true
	h.Canonical = true
	return h
}

// Encode writes d to w in msgpack.
func (d *Document) Encode(w io.Writer) error {
	enc := codec.NewEncoder(w, codecHandler)
	if err := enc.Encode(d.values); err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}
	return nil
}

// Decode reads msgpack document from r.
func Decode(r io.Reader) (*Document, error) {
	values := make(map[string]interface{})
	dec := codec.NewDecoder(r, codecHandler)
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("state: decode: %w", err)
	}
	return &Document{values: values}, nil
}
