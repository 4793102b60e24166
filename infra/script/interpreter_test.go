package script

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/scene"
)

func newInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	ip := NewInterpreter(Config{
		CallStackSize:       CallStackSize,
		RegistrySize:        RegistrySize,
		IncludeGoStackTrace: true,
		LoadTimeout:         time.Second,
	})
	t.Cleanup(ip.Quit)
	return ip
}

func TestLoadFile(t *testing.T) {
	config := NewConfig()
	config.LoadDir = "testdata"
	scenes, err := Load(context.Background(), filesystem.Desktop, config)
	if err != nil {
		t.Fatal(err)
	}

	if names := scenes.Names(); !reflect.DeepEqual(names, []string{"hero", "intro", "outro"}) {
		t.Errorf("unexpected scene names %v", names)
	}
	if extras := scenes.Extras(); !reflect.DeepEqual(extras, []string{"hero"}) {
		t.Errorf("unexpected extras %v", extras)
	}

	expectIntro := scene.Sequence{Actions: []scene.Action{
		scene.SetBackground{Name: "lab"},
		scene.Place{Actor: -1, Sprite: "tree", Frame: 0, Pos: scene.Pos(200, 40)},
		scene.Place{Actor: 1, Sprite: "hero", Frame: 0, Pos: scene.Pos(0, 120)},
		scene.Slide{Actor: 1, To: scene.Pos(80, 120), Flip: true, Duration: 500 * time.Millisecond},
		scene.Talk{Actor: 1, Style: scene.TalkNormal, Anchor: scene.AnchorAbove, Text: "Turn on every lamp."},
	}}
	if !reflect.DeepEqual(scenes.Intro(), expectIntro) {
		t.Errorf("intro:\ngot    %#v\nexpect %#v", scenes.Intro(), expectIntro)
	}

	expectOutro := scene.Sequence{Actions: []scene.Action{
		scene.SetLight{Dark: true},
		scene.Parallel{Actions: []scene.Action{
			scene.Jump{Actor: 1, To: scene.Pos(120, 120), Duration: 400 * time.Millisecond},
			scene.PlaySound{Sound: "chime"},
		}},
		scene.SetLight{Dark: false},
		scene.Signal{Kind: 1, Value: 2},
	}}
	if !reflect.DeepEqual(scenes.Outro(), expectOutro) {
		t.Errorf("outro:\ngot    %#v\nexpect %#v", scenes.Outro(), expectOutro)
	}

	loop, ok := scenes["hero"].(scene.Repeat)
	if !ok || loop.Min != 2 || loop.Max != 2 {
		t.Errorf("hero must be fixed repeat, got %#v", scenes["hero"])
	}
}

func TestLoadString(t *testing.T) {
	ip := newInterpreter(t)
	ctx := context.Background()

	for _, test := range []struct {
		Name   string
		Src    string
		Expect scene.Action
	}{
		{"loop range", `return { a = loop(1, 3, wait(1)) }`,
			scene.Repeat{Min: 1, Max: 3, Action: scene.Wait{Duration: time.Second}}},
		{"variadic par", `return { a = par(show(2), hide(3)) }`,
			scene.Parallel{Actions: []scene.Action{
				scene.SetVisible{Actor: 2, Visible: true},
				scene.SetVisible{Actor: 3, Visible: false},
			}}},
		{"talk style", `return { a = talk(1, "thought", "left", "hmm") }`,
			scene.Talk{Actor: 1, Style: scene.TalkThought, Anchor: scene.AnchorLeft, Text: "hmm"}},
		{"remove setpos", `return { a = seq{remove(4), setpos(5, 1.5, 2)} }`,
			scene.Sequence{Actions: []scene.Action{
				scene.Remove{Actor: 4},
				scene.SetPosition{Actor: 5, Pos: scene.Pos(1.5, 2)},
			}}},
		{"empty seq", `return { a = seq{} }`, scene.Sequence{Actions: []scene.Action{}}},
	} {
		scenes, err := ip.LoadString(ctx, test.Name, test.Src)
		if err != nil {
			t.Errorf("%s: %v", test.Name, err)
			continue
		}
		if !reflect.DeepEqual(scenes["a"], test.Expect) {
			t.Errorf("%s:\ngot    %#v\nexpect %#v", test.Name, scenes["a"], test.Expect)
		}
	}
}

func TestLoadStringErrors(t *testing.T) {
	ip := newInterpreter(t)
	ctx := context.Background()

	for _, test := range []struct {
		Name   string
		Src    string
		Target error
	}{
		{"syntax", `return {`, nil},
		{"no table", `return 1`, ErrNoScenes},
		{"not action", `return { a = 1 }`, ErrNotAction},
		{"number key", `return { wait(1) }`, ErrNotAction},
		{"bad style", `return { a = talk(1, "shout", "above", "x") }`, nil},
		{"bad seq element", `return { a = seq{wait(1), 2} }`, nil},
		{"missing arg", `return { a = place(1, "hero") }`, nil},
		{"io is removed", `io.open("x")`, nil},
		{"dofile is removed", `dofile("x")`, nil},
		{"print is removed", `print("x")`, nil},
	} {
		_, err := ip.LoadString(ctx, test.Name, test.Src)
		if err == nil {
			t.Errorf("%s: must be error", test.Name)
			continue
		}
		if test.Target != nil && !errors.Is(err, test.Target) {
			t.Errorf("%s: got %v, expect %v", test.Name, err, test.Target)
		}
	}
}

func TestLoadTimeout(t *testing.T) {
	ip := NewInterpreter(Config{LoadTimeout: 50 * time.Millisecond})
	defer ip.Quit()

	_, err := ip.LoadString(context.Background(), "loop", `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("infinite loop must be aborted by timeout, got %v", err)
	}

	// interpreter is still usable after abort.
	if _, err := ip.LoadString(context.Background(), "ok", `return {}`); err != nil {
		t.Errorf("interpreter must be reusable, got %v", err)
	}
}

func TestScriptsDoNotShareGlobals(t *testing.T) {
	ip := newInterpreter(t)
	ctx := context.Background()

	if _, err := ip.LoadString(ctx, "first", `shared = 1; return {}`); err != nil {
		t.Fatal(err)
	}
	scenes, err := ip.LoadString(ctx, "second", `return { a = wait(shared or 0) }`)
	if err != nil {
		t.Fatal(err)
	}
	if w := scenes["a"].(scene.Wait); w.Duration != 0 {
		t.Errorf("global of former script must not be seen, got %v", w.Duration)
	}
}

func TestLoadFileFromFS(t *testing.T) {
	ip := newInterpreter(t)
	fsys := filesystem.FromFS(fstest.MapFS{
		"script/a.lua": {Data: []byte(`return { intro = sound("beep") }`)},
	})
	scenes, err := ip.LoadFile(context.Background(), fsys, "script/a.lua")
	if err != nil {
		t.Fatal(err)
	}
	if scenes.Outro() != nil {
		t.Errorf("undefined outro must be nil")
	}
	if !reflect.DeepEqual(scenes.Intro(), scene.PlaySound{Sound: "beep"}) {
		t.Errorf("unexpected intro %#v", scenes.Intro())
	}
	if _, err := ip.LoadFile(context.Background(), fsys, "script/none.lua"); err == nil {
		t.Errorf("missing file must be error")
	}
}
