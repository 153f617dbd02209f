// Package scripting embeds a Lua VM for town-life decision logic:
// Go detects idle NPCs and executes commands, Lua decides what an idle
// NPC should do next. Trigger scripts can also drive the task queue
// directly through the injected director API.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/mathx"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (the game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. Missing subdirectories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "ai", "triggers"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
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

// Director is the task-injection surface trigger scripts drive
// directly, bypassing the on_idle command protocol.
type Director interface {
	MoveEntityTo(id ecs.EntityID, pos mathx.Vec3)
	MakeEntityWork(id ecs.EntityID, duration float64)
	MakeEntityWait(id ecs.EntityID, duration float64)
	ClearTasks(id ecs.EntityID)
}

// BindDirector registers the town_* globals so trigger scripts can
// inject tasks: town_move_to(entity, x, y, z), town_work(entity, dur),
// town_wait(entity, dur), town_clear(entity).
func (e *Engine) BindDirector(d Director) {
	e.vm.SetGlobal("town_move_to", e.vm.NewFunction(func(L *lua.LState) int {
		id := ecs.EntityID(L.CheckNumber(1))
		d.MoveEntityTo(id, mathx.Vec3{
			X: float64(L.CheckNumber(2)),
			Y: float64(L.CheckNumber(3)),
			Z: float64(L.CheckNumber(4)),
		})
		return 0
	}))
	e.vm.SetGlobal("town_work", e.vm.NewFunction(func(L *lua.LState) int {
		d.MakeEntityWork(ecs.EntityID(L.CheckNumber(1)), float64(L.CheckNumber(2)))
		return 0
	}))
	e.vm.SetGlobal("town_wait", e.vm.NewFunction(func(L *lua.LState) int {
		d.MakeEntityWait(ecs.EntityID(L.CheckNumber(1)), float64(L.CheckNumber(2)))
		return 0
	}))
	e.vm.SetGlobal("town_clear", e.vm.NewFunction(func(L *lua.LState) int {
		d.ClearTasks(ecs.EntityID(L.CheckNumber(1)))
		return 0
	}))
}

// IdleContext is the pre-packed state handed to the Lua on_idle hook.
type IdleContext struct {
	Entity     uint64
	Profession string
	Hour       float64
	X, Y, Z    float64
}

// Command is one task-queue instruction returned by Lua. Type is one of
// "move_to", "work", "wait", "clear".
type Command struct {
	Type     string
	X, Y, Z  float64
	Duration float64
}

// RunOnIdle calls the Lua global on_idle(ctx) and returns the commands
// to enqueue. A missing hook or a script error yields nil; the routine
// table then drives refill on its own.
func (e *Engine) RunOnIdle(ctx IdleContext) []Command {
	fn := e.vm.GetGlobal("on_idle")
	if fn == lua.LNil {
		return nil
	}

	t := e.vm.NewTable()
	t.RawSetString("entity", lua.LNumber(ctx.Entity))
	t.RawSetString("profession", lua.LString(ctx.Profession))
	t.RawSetString("hour", lua.LNumber(ctx.Hour))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("z", lua.LNumber(ctx.Z))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_idle error", zap.Error(err), zap.Uint64("entity", ctx.Entity))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil
	}

	var cmds []Command
	rt.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			cmds = append(cmds, Command{
				Type:     lStr(row, "type"),
				X:        lNum(row, "x"),
				Y:        lNum(row, "y"),
				Z:        lNum(row, "z"),
				Duration: lNum(row, "duration"),
			})
		}
	})
	return cmds
}

func lStr(t *lua.LTable, key string) string {
	if v, ok := t.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return ""
}

func lNum(t *lua.LTable, key string) float64 {
	if v, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(v)
	}
	return 0
}
