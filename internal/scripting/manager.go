package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// UnitSnapshot is a read-only view of a unit passed to Lua hooks.
type UnitSnapshot struct {
	ID           string
	Name         string
	HP           int
	MaxHP        int
	Mana         int
	Damage       int
	Defense      int
	Speed        int
	CriticalRate float64
	Level        int
	// Condition is the ID of the condition whose hook is running.
	Condition string
	// Remaining is the condition's turns remaining; -1 means permanent.
	Remaining int
}

// Manager owns one sandboxed LState holding all loaded condition scripts.
//
// Manager is safe for concurrent use; calls into the VM are serialised.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit <= 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager with the engine module registered.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	m := &Manager{
		L:         NewSandboxedState(),
		instLimit: instLimit,
		logger:    logger,
	}
	m.RegisterModules(m.L)
	return m
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: All hooks defined by the files are callable; returns an
// error naming the first file that fails to load.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range luaFiles {
		if err := runLimited(m.L, m.instLimit, func() error { return m.L.DoFile(path) }); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.logger.Debug("scripts loaded", zap.String("dir", dir), zap.Int("files", len(luaFiles)))
	return nil
}

// LoadString executes src in the VM under the instruction budget.
func (m *Manager) LoadString(src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := runLimited(m.L, m.instLimit, func() error { return m.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading chunk: %w", err)
	}
	return nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined. Lua runtime errors, including an exhausted
// instruction budget, are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	var ret lua.LValue = lua.LNil
	err := runLimited(m.L, m.instLimit, func() error {
		if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = m.L.Get(-1)
		m.L.Pop(1)
		return nil
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	return ret, nil
}

// CallUnitHook calls hook with a table built from snap and interprets a
// numeric return value as an HP delta. Any other return yields 0.
func (m *Manager) CallUnitHook(hook string, snap UnitSnapshot) (int, error) {
	m.mu.Lock()
	tbl := snapshotTable(m.L, snap)
	m.mu.Unlock()

	ret, err := m.CallHook(hook, tbl)
	if err != nil {
		return 0, err
	}
	if n, ok := ret.(lua.LNumber); ok {
		return int(n), nil
	}
	return 0, nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

func snapshotTable(L *lua.LState, s UnitSnapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(s.ID))
	t.RawSetString("name", lua.LString(s.Name))
	t.RawSetString("hp", lua.LNumber(s.HP))
	t.RawSetString("max_hp", lua.LNumber(s.MaxHP))
	t.RawSetString("mana", lua.LNumber(s.Mana))
	t.RawSetString("damage", lua.LNumber(s.Damage))
	t.RawSetString("defense", lua.LNumber(s.Defense))
	t.RawSetString("speed", lua.LNumber(s.Speed))
	t.RawSetString("critical_rate", lua.LNumber(s.CriticalRate))
	t.RawSetString("level", lua.LNumber(s.Level))
	t.RawSetString("condition", lua.LString(s.Condition))
	t.RawSetString("remaining", lua.LNumber(s.Remaining))
	return t
}
