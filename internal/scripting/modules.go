package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua table into L.
//
// engine.log(msg) writes msg to the manager's logger at info level.
// engine.clamp(v, lo, hi) bounds v to [lo, hi].
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("lua", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetField(engine, "clamp", L.NewFunction(func(L *lua.LState) int {
		v, lo, hi := L.CheckNumber(1), L.CheckNumber(2), L.CheckNumber(3)
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		L.Push(v)
		return 1
	}))
	L.SetGlobal("engine", engine)
}
