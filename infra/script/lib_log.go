package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mzki/puzzlescene/util/log"
)

// log table lets scripts output to the program log.
//
// Example:
//
//	log.info("scene count", 3) -- "script: scene count 3"
//	log.debugf("x = %d", 10)    -- only in debug level
const loggerModuleName = "log"

const registryDebugEnableKey = "_DEBUG_ENABLE"

func registerLogger(L *lua.LState, debug bool) {
	L.CheckTable(lua.RegistryIndex).RawSetString(registryDebugEnableKey, lua.LBool(debug))
	mod := L.SetFuncs(L.NewTable(), loggerExports)
	L.SetGlobal(loggerModuleName, mod)
}

var loggerExports = map[string]lua.LGFunction{
	"debug":  logDebug,
	"debugf": logDebugf,
	"info":   logInfo,
	"infof":  logInfof,
}

// If Registry table has registryDebugEnableKey and stored value is true
// then logDebugXXX funtions do, otherwise do nothing.
func debugEnable(L *lua.LState) bool {
	lv := L.CheckTable(lua.RegistryIndex).RawGetString(registryDebugEnableKey)
	return lua.LVAsBool(lv)
}

func logInfo(L *lua.LState) int {
	vs := logValues(L, 1)
	log.Infoln(append([]interface{}{"script:"}, vs...)...)
	return 0
}

func logInfof(L *lua.LState) int {
	format := L.CheckString(1)
	log.Infof("script: "+format, logValues(L, 2)...)
	return 0
}

func logDebug(L *lua.LState) int {
	if !debugEnable(L) {
		return 0
	}
	vs := logValues(L, 1)
	log.Debugln(append([]interface{}{"script:", where(L)}, vs...)...)
	return 0
}

func logDebugf(L *lua.LState) int {
	if !debugEnable(L) {
		return 0
	}
	format := L.CheckString(1)
	log.Debugf("script: %s "+format, append([]interface{}{where(L)}, logValues(L, 2)...)...)
	return 0
}

// where returns "source:line" of the calling script.
func where(L *lua.LState) string {
	dbg, ok := L.GetStack(1)
	if !ok {
		return "?"
	}
	if _, err := L.GetInfo("Sl", dbg, lua.LNil); err != nil {
		return "?"
	}
	return fmt.Sprintf("%s:%d", dbg.Source, dbg.CurrentLine)
}

func logValues(L *lua.LState, start int) []interface{} {
	n := L.GetTop()
	if start < 1 || start > n {
		return []interface{}{}
	}
	vs := make([]interface{}, 0, n-start+1)
	for i := start; i <= n; i++ {
		switch lv := L.Get(i).(type) {
		case lua.LNumber:
			vs = append(vs, float64(lv))
		case lua.LBool:
			vs = append(vs, bool(lv))
		case lua.LString:
			vs = append(vs, string(lv))
		case *lua.LFunction:
			p := lv.Proto
			if p == nil {
				vs = append(vs, "function: builtin")
			} else {
				vs = append(vs, fmt.Sprintf("function: %s:%d", p.SourceName, p.LineDefined))
			}
		case *lua.LTable:
			vs = append(vs, fmt.Sprintf("table: size %d", lv.Len()))
		case *lua.LUserData:
			if a, ok := toAction(lv); ok {
				vs = append(vs, fmt.Sprintf("action: %T", a))
			} else {
				vs = append(vs, fmt.Sprintf("userdata: %v", lv.Value))
			}
		default:
			vs = append(vs, lv.String())
		}
	}
	return vs
}
