package state

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/mzki/puzzlescene/access"
)

func TestDocumentInt(t *testing.T) {
	doc := NewDocument()
	doc.SetInt("in", 3)
	doc.SetInt("low", -5)
	doc.SetInt("high", 99)
	doc.SetString("str", "3")

	for _, test := range []struct {
		Key    string
		Expect int
	}{
		{"in", 3},
		{"low", 0},
		{"high", 9},
		{"str", 1},
		{"missing", 1},
	} {
		if got := doc.Int(test.Key, 1, 0, 9); got != test.Expect {
			t.Errorf("%s: got %v, expect %v", test.Key, got, test.Expect)
		}
	}
}

func TestDocumentInts(t *testing.T) {
	doc := NewDocument()
	doc.SetInts("grid", []int{0, 5, -1, 2})
	doc.SetBool("flag", true)

	got, ok := doc.Ints("grid", 4, 0, 3)
	if !ok {
		t.Fatal("grid must be read")
	}
	if expect := []int{0, 3, 0, 2}; !reflect.DeepEqual(got, expect) {
		t.Errorf("got %v, expect %v", got, expect)
	}
	if _, ok := doc.Ints("grid", 3, 0, 3); ok {
		t.Errorf("different length must be rejected")
	}
	if _, ok := doc.Ints("flag", 1, 0, 1); ok {
		t.Errorf("non array must be rejected")
	}
	if _, ok := doc.Ints("missing", 1, 0, 1); ok {
		t.Errorf("missing key must be rejected")
	}
}

func TestDocumentBoolStringAccess(t *testing.T) {
	doc := NewDocument()
	doc.SetBool("b", true)
	doc.SetString("s", "x")
	doc.SetInt("n", 1)

	if !doc.Bool("b", false) || !doc.Bool("n", true) || doc.Bool("missing", false) {
		t.Errorf("unexpected Bool result")
	}
	if doc.String("s", "") != "x" || doc.String("n", "def") != "def" {
		t.Errorf("unexpected String result")
	}

	if doc.Access() != access.Unvisited {
		t.Errorf("missing access must be unvisited")
	}
	doc.SetAccess(access.Solved)
	if doc.Access() != access.Solved {
		t.Errorf("got %v, expect solved", doc.Access())
	}
	doc.SetString(AccessKey, "broken")
	if doc.Access() != access.Unvisited {
		t.Errorf("broken access must be unvisited")
	}
}

func TestDocumentEncodeDecode(t *testing.T) {
	doc := NewDocument()
	doc.SetAccess(access.Visited)
	doc.SetInt("turn", 12)
	doc.SetInts("grid", []int{1, 2, 3})
	doc.SetBool("light", true)

	buf := new(bytes.Buffer)
	if err := doc.Encode(buf); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got.Keys(), []string{"access", "grid", "light", "turn"}) {
		t.Errorf("unexpected keys %v", got.Keys())
	}
	if got.Access() != access.Visited {
		t.Errorf("access: got %v", got.Access())
	}
	if got.Int("turn", 0, 0, 100) != 12 {
		t.Errorf("turn: got %v", got.Int("turn", 0, 0, 100))
	}
	if grid, ok := got.Ints("grid", 3, 0, 9); !ok || !reflect.DeepEqual(grid, []int{1, 2, 3}) {
		t.Errorf("grid: got %v", grid)
	}
	if !got.Bool("light", false) {
		t.Errorf("light must be true")
	}
}

func TestDecodeBroken(t *testing.T) {
	if _, err := Decode(bytes.NewReader(nil)); err == nil {
		t.Errorf("broken data must be error")
	}
}

type counter struct{ n int }

func (c *counter) SaveState(doc *Document) { doc.SetInt("n", c.n) }
func (c *counter) LoadState(doc *Document) { c.n = doc.Int("n", 0, 0, 10) }

func TestSnapshot(t *testing.T) {
	src := &counter{n: 7}
	doc := Snapshot(src)
	dst := &counter{}
	dst.LoadState(doc)
	if dst.n != 7 {
		t.Errorf("got %v, expect 7", dst.n)
	}
}
