package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/l1jgo/motion/internal/geom"
)

// Engine wraps a single gopher-lua VM holding the client's rule scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	ranges map[int32]geom.RangeTier // spell range answers never change
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, ranges: make(map[int32]geom.RangeTier)}

	for _, sub := range []string{"core", "spell"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory. A missing directory is fine.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SpellRange asks spell_range(id) how close the hero must stand to cast.
// 1..3 are cell tiers; 0, nil, a missing function or any error mean the
// spell has no range rule (Zero).
func (e *Engine) SpellRange(spellID int32) geom.RangeTier {
	if t, ok := e.ranges[spellID]; ok {
		return t
	}
	steps := e.callIntFunc("spell_range", int(spellID))
	tier := geom.TierForSteps(steps)
	if tier == geom.Undefined {
		e.log.Warn("spell_range out of bounds", zap.Int32("spell", spellID), zap.Int("range", steps))
		tier = geom.Zero
	}
	e.ranges[spellID] = tier
	return tier
}

// SpellInfo is the table returned by get_spell(id).
type SpellInfo struct {
	Name   string
	Range  int
	Motion string // "spell" or "attack"
}

// GetSpell calls get_spell(id). Returns nil when the script has no entry.
func (e *Engine) GetSpell(spellID int32) *SpellInfo {
	fn := e.vm.GetGlobal("get_spell")
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(spellID)); err != nil {
		e.log.Error("lua get_spell error", zap.Error(err), zap.Int32("spell", spellID))
		return nil
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	t, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}
	return &SpellInfo{
		Name:   lStr(t, "name"),
		Range:  lInt(t, "range"),
		Motion: lStr(t, "motion"),
	}
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// callIntFunc calls a Lua function with int args and returns an int result.
// A missing function yields 0.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Debug("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
