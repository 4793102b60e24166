package script

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/mzki/puzzlescene/scene"
)

// actions are passed around in Lua as userdata with this metatable.
const actionTypeName = "scene.action"

func registerActionType(L *lua.LState) {
	mt := L.NewTypeMetatable(actionTypeName)
	mt.RawSetString("__tostring", L.NewFunction(actionToString))
	mt.RawSetString("__metatable", lua.LString("protected"))
}

func actionToString(L *lua.LState) int {
	a := checkAction(L, 1)
	L.Push(lua.LString(fmt.Sprintf("action: %T", a)))
	return 1
}

func pushAction(L *lua.LState, a scene.Action) int {
	ud := L.NewUserData()
	ud.Value = a
	L.SetMetatable(ud, L.GetTypeMetatable(actionTypeName))
	L.Push(ud)
	return 1
}

func toAction(lv lua.LValue) (scene.Action, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	a, ok := ud.Value.(scene.Action)
	return a, ok
}

func checkAction(L *lua.LState, n int) scene.Action {
	a, ok := toAction(L.Get(n))
	if !ok {
		L.ArgError(n, "action expected, got "+L.Get(n).Type().String())
	}
	return a
}

// checkActions accepts either one table of actions, f{a, b}, or
// variadic actions, f(a, b), starting from n.
func checkActions(L *lua.LState, n int) []scene.Action {
	if tbl, ok := L.Get(n).(*lua.LTable); ok {
		actions := make([]scene.Action, 0, tbl.Len())
		for i := 1; i <= tbl.Len(); i++ {
			a, ok := toAction(tbl.RawGetInt(i))
			if !ok {
				L.ArgError(n, fmt.Sprintf("element %d is not an action", i))
			}
			actions = append(actions, a)
		}
		return actions
	}
	actions := make([]scene.Action, 0, L.GetTop())
	for i := n; i <= L.GetTop(); i++ {
		actions = append(actions, checkAction(L, i))
	}
	return actions
}

func checkHandle(L *lua.LState, n int) scene.Handle {
	return scene.Handle(L.CheckInt(n))
}

func checkSeconds(L *lua.LState, n int) time.Duration {
	return seconds(float64(L.CheckNumber(n)))
}

func seconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

func checkPos(L *lua.LState, n int) scene.Position {
	return scene.Pos(float64(L.CheckNumber(n)), float64(L.CheckNumber(n+1)))
}

var sceneExports = map[string]lua.LGFunction{
	"seq":        sceneSeq,
	"par":        scenePar,
	"loop":       sceneLoop,
	"wait":       sceneWait,
	"place":      scenePlace,
	"remove":     sceneRemove,
	"setpos":     sceneSetPos,
	"setframe":   sceneSetFrame,
	"slide":      sceneSlide,
	"jump":       sceneJump,
	"show":       sceneShow,
	"hide":       sceneHide,
	"light":      sceneLight,
	"dark":       sceneDark,
	"talk":       sceneTalk,
	"sound":      sceneSound,
	"background": sceneBackground,
	"signal":     sceneSignal,
}

// seq{action...} or seq(action...)
func sceneSeq(L *lua.LState) int {
	return pushAction(L, scene.Sequence{Actions: checkActions(L, 1)})
}

// par{action...} or par(action...)
func scenePar(L *lua.LState) int {
	return pushAction(L, scene.Parallel{Actions: checkActions(L, 1)})
}

// loop(n, action) or loop(min, max, action)
func sceneLoop(L *lua.LState) int {
	if L.GetTop() <= 2 {
		n := L.CheckInt(1)
		return pushAction(L, scene.Repeat{Min: n, Max: n, Action: checkAction(L, 2)})
	}
	return pushAction(L, scene.Repeat{
		Min:    L.CheckInt(1),
		Max:    L.CheckInt(2),
		Action: checkAction(L, 3),
	})
}

// wait(sec)
func sceneWait(L *lua.LState) int {
	return pushAction(L, scene.Wait{Duration: checkSeconds(L, 1)})
}

// place(handle, sprite, frame, x, y)
func scenePlace(L *lua.LState) int {
	return pushAction(L, scene.Place{
		Actor:  checkHandle(L, 1),
		Sprite: L.CheckString(2),
		Frame:  L.CheckInt(3),
		Pos:    checkPos(L, 4),
	})
}

// remove(handle)
func sceneRemove(L *lua.LState) int {
	return pushAction(L, scene.Remove{Actor: checkHandle(L, 1)})
}

// setpos(handle, x, y)
func sceneSetPos(L *lua.LState) int {
	return pushAction(L, scene.SetPosition{Actor: checkHandle(L, 1), Pos: checkPos(L, 2)})
}

// setframe(handle, frame)
func sceneSetFrame(L *lua.LState) int {
	return pushAction(L, scene.SetFrame{Actor: checkHandle(L, 1), Frame: L.CheckInt(2)})
}

// slide{handle, x, y, sec, flip = bool, front = bool}
func sceneSlide(L *lua.LState) int {
	tbl := L.CheckTable(1)
	num := func(i int) float64 {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(1, fmt.Sprintf("number expected at index %d", i))
		}
		return float64(n)
	}
	return pushAction(L, scene.Slide{
		Actor:    scene.Handle(num(1)),
		To:       scene.Pos(num(2), num(3)),
		Duration: seconds(num(4)),
		Flip:     lua.LVAsBool(tbl.RawGetString("flip")),
		Front:    lua.LVAsBool(tbl.RawGetString("front")),
	})
}

// jump(handle, x, y, sec)
func sceneJump(L *lua.LState) int {
	return pushAction(L, scene.Jump{
		Actor:    checkHandle(L, 1),
		To:       checkPos(L, 2),
		Duration: checkSeconds(L, 4),
	})
}

// show(handle)
func sceneShow(L *lua.LState) int {
	return pushAction(L, scene.SetVisible{Actor: checkHandle(L, 1), Visible: true})
}

// hide(handle)
func sceneHide(L *lua.LState) int {
	return pushAction(L, scene.SetVisible{Actor: checkHandle(L, 1), Visible: false})
}

// light()
func sceneLight(L *lua.LState) int { return pushAction(L, scene.Light()) }

// dark()
func sceneDark(L *lua.LState) int { return pushAction(L, scene.Dark()) }

// talk(handle, style, anchor, text)
//
// style is one of "normal", "thought", "system" and
// anchor is one of "above", "below", "left", "right".
func sceneTalk(L *lua.LState) int {
	h := checkHandle(L, 1)
	style, ok := scene.ParseTalkStyle(L.CheckString(2))
	if !ok {
		L.ArgError(2, "unknown talk style "+L.CheckString(2))
	}
	anchor, ok := scene.ParseTalkAnchor(L.CheckString(3))
	if !ok {
		L.ArgError(3, "unknown talk anchor "+L.CheckString(3))
	}
	return pushAction(L, scene.Talk{Actor: h, Style: style, Anchor: anchor, Text: L.CheckString(4)})
}

// sound(name)
func sceneSound(L *lua.LState) int {
	return pushAction(L, scene.PlaySound{Sound: L.CheckString(1)})
}

// background(name)
func sceneBackground(L *lua.LState) int {
	return pushAction(L, scene.SetBackground{Name: L.CheckString(1)})
}

// signal(kind, value)
func sceneSignal(L *lua.LState) int {
	return pushAction(L, scene.Signal{Kind: L.CheckInt(1), Value: L.CheckInt(2)})
}
