package script

import (
	"context"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/util/log"
)

// Names of scenes having special meaning for a puzzle.
const (
	IntroScene = "intro"
	OutroScene = "outro"
)

// Scenes is a set of named scene scripts returned by a script file.
type Scenes map[string]scene.Action

// Intro returns the intro scene, or nil if not defined.
func (s Scenes) Intro() scene.Action { return s[IntroScene] }

// Outro returns the outro scene, or nil if not defined.
func (s Scenes) Outro() scene.Action { return s[OutroScene] }

// Names returns all of scene names in sorted order.
func (s Scenes) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extras returns names except intro and outro in sorted order.
func (s Scenes) Extras() []string {
	names := make([]string, 0, len(s))
	for _, name := range s.Names() {
		if name != IntroScene && name != OutroScene {
			names = append(names, name)
		}
	}
	return names
}

// Interpreter builds scene scripts by running Lua files.
// The script runs in the sandbox which has no access to the filesystem
// and OS, and returns a table of scene name to action.
//
//	return {
//	  intro = seq{
//	    place(1, "hero", 0, 40, 120),
//	    talk(1, "normal", "above", "Turn on every lamp."),
//	  },
//	}
//
// typical usage:
//
//	ip := NewInterpreter(...)
//	defer ip.Quit()
type Interpreter struct {
	vm     *lua.LState
	config Config
}

// construct interpreter.
// must be call Interpreter.Quit after use this.
func NewInterpreter(config Config) *Interpreter {
	vm := lua.NewState(lua.Options{
		CallStackSize:       config.CallStackSize,
		RegistrySize:        config.RegistrySize,
		IncludeGoStackTrace: config.IncludeGoStackTrace,
		SkipOpenLibs:        true,
	})
	ip := &Interpreter{vm: vm, config: config}
	ip.init()
	return ip
}

// names of base functions removed from the sandbox.
var unsafeLibs = []string{
	"print", // write stdout is not allowed
	"dofile",
	"dostring",
	"load",
	"loadfile",
	"loadstring",
	"module",
	"require",
	"collectgarbage",
}

// initialize sandbox environment and scene functions.
func (ip *Interpreter) init() {
	L := ip.vm
	// register bultin libraries which do not contain
	// the modules to access file system and OS.
	for _, pair := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(pair.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(pair.name)); err != nil {
			panic(err)
		}
	}
	for _, name := range unsafeLibs {
		L.SetGlobal(name, lua.LNil)
	}

	registerActionType(L)
	L.SetFuncs(L.Get(lua.GlobalsIndex).(*lua.LTable), sceneExports)
	registerLogger(L, ip.config.IncludeGoStackTrace)
}

// Quit quits virtual machine in Interpreter.
// use it for releasing resources.
func (ip *Interpreter) Quit() {
	ip.vm.Close()
}

// LoadString runs src named as name and returns scenes it returns.
func (ip *Interpreter) LoadString(ctx context.Context, name, src string) (Scenes, error) {
	fn, err := ip.vm.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	return ip.run(ctx, name, fn)
}

// LoadFile runs file loaded by ldr and returns scenes it returns.
func (ip *Interpreter) LoadFile(ctx context.Context, ldr filesystem.Loader, file string) (Scenes, error) {
	r, err := ldr.Load(file)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer r.Close()

	fn, err := ip.vm.Load(r, file)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", file, err)
	}
	return ip.run(ctx, file, fn)
}

// run calls fn on a fresh environment, so that globals defined by
// one script are not seen by others.
func (ip *Interpreter) run(ctx context.Context, name string, fn *lua.LFunction) (Scenes, error) {
	L := ip.vm

	env := L.NewTable()
	mt := L.NewTable()
	mt.RawSetString("__index", L.Get(lua.GlobalsIndex))
	L.SetMetatable(env, mt)
	L.SetFEnv(fn, env)

	ctx, cancel := context.WithTimeout(ctx, ip.config.loadTimeout())
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("script: %s: %w", name, ctxErr)
		}
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	scenes, err := toScenes(ret)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	log.Debugf("script: %s: loaded scenes %v", name, scenes.Names())
	return scenes, nil
}

func toScenes(ret lua.LValue) (Scenes, error) {
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoScenes, ret.Type())
	}
	scenes := make(Scenes)
	var err error
	tbl.ForEach(func(key, value lua.LValue) {
		if err != nil {
			return
		}
		name, ok := key.(lua.LString)
		if !ok {
			err = fmt.Errorf("%w: scene name must be string, got %s", ErrNotAction, key.Type())
			return
		}
		a, ok := toAction(value)
		if !ok {
			err = fmt.Errorf("%w: scene %s is %s", ErrNotAction, name, value.Type())
			return
		}
		scenes[string(name)] = a
	})
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

// Load runs the script file configured by config on ldr.
func Load(ctx context.Context, ldr filesystem.Loader, config Config) (Scenes, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	ip := NewInterpreter(config)
	defer ip.Quit()
	return ip.LoadFile(ctx, ldr, path)
}
