package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/townforge/townsim/internal/config"
	"github.com/townforge/townsim/internal/core/event"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/data"
	"github.com/townforge/townsim/internal/mathx"
	"github.com/townforge/townsim/internal/persist"
	"github.com/townforge/townsim/internal/scripting"
	"github.com/townforge/townsim/internal/system"
	"github.com/townforge/townsim/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            townsim  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      town-life simulation server          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/townsim.toml"
	if p := os.Getenv("TOWNSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Optional Postgres for pose snapshots
	var snapshots *persist.SnapshotRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("postgres connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("migrations applied")
		fmt.Println()

		snapshots = persist.NewSnapshotRepo(db, log)
		defer snapshots.Close()
	}

	// 4. Load data tables
	printSection("data")

	npcTable, err := data.LoadNpcTable(filepath.Join(cfg.Data.Dir, "npc_list.yaml"))
	if err != nil {
		return fmt.Errorf("load npc table: %w", err)
	}
	printStat("npc templates", npcTable.Count())

	spawnList, err := data.LoadSpawnList(filepath.Join(cfg.Data.Dir, "spawn_list.yaml"))
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}

	locationTable, err := data.LoadLocationTable(filepath.Join(cfg.Data.Dir, "location_list.yaml"))
	if err != nil {
		return fmt.Errorf("load location table: %w", err)
	}
	printStat("locations", locationTable.Count())

	routineTable, err := data.LoadRoutineTable(filepath.Join(cfg.Data.Dir, "routine_list.yaml"))
	if err != nil {
		return fmt.Errorf("load routine table: %w", err)
	}
	printStat("routines", routineTable.Count())

	// 5. Optional Lua scripting
	var lua *scripting.Engine
	if cfg.Scripts.Enabled {
		lua, err = scripting.NewEngine(cfg.Scripts.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer lua.Close()
		printOK("lua scripts loaded")
	}

	// 6. World state, clock, town population
	bus := event.NewBus()
	state := world.NewState(world.Params{
		WorldSize:   cfg.Simulation.WorldSize,
		CellSize:    cfg.Simulation.CellSize,
		GroundLevel: cfg.Physics.GroundLevel,
		GravityOn:   cfg.Physics.GravityEnabled,
	}, bus)
	state.Clock = world.NewClock(cfg.Clock.DayLength, cfg.Clock.StartHour)

	npcCount, obstacleCount := spawnTown(state, npcTable, spawnList, cfg.Simulation.Seed, log)
	printStat("npcs spawned", npcCount)
	printStat("obstacles", obstacleCount)
	fmt.Println()

	director := world.NewDirector(state, log)
	if lua != nil {
		lua.BindDirector(director)
	}

	// 7. Systems
	runID := uuid.New()
	wander := system.NewRandomWander(cfg.Simulation.Seed,
		cfg.Simulation.WanderChance, cfg.Simulation.WanderRadius)

	runner := coresys.NewRunner()
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewClockSystem(state))
	runner.Register(system.NewBehaviorSystem(state, routineTable, locationTable, lua, wander, log))
	runner.Register(system.NewPhysicsSystem(state))
	runner.Register(system.NewAppearanceSystem(state))
	runner.Register(system.NewPersistSystem(state, snapshots, runID, cfg.Database.SnapshotInterval))
	runner.Register(system.NewCleanupSystem(state))

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Simulation.TickRate))
	printReady(fmt.Sprintf("run id %s", runID))
	fmt.Println()

	log.Info("simulation running",
		zap.Duration("tick_rate", cfg.Simulation.TickRate),
		zap.Int("npcs", npcCount),
		zap.String("run_id", runID.String()))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// spawnTown populates the world from the spawn list. Instance scatter
// is driven by seeded noise so a given seed always produces the same
// town layout.
func spawnTown(state *world.State, npcs *data.NpcTable, spawns []data.SpawnEntry, seed int64, log *zap.Logger) (npcCount, obstacleCount int) {
	noise := mathx.NewNoise(uint64(seed))
	for _, spawn := range spawns {
		if spawn.Obstacle {
			state.SpawnObstacle(mathx.Vec3{X: spawn.X, Y: spawn.Y, Z: spawn.Z}, spawn.Radius)
			obstacleCount++
			continue
		}
		tmpl := npcs.Get(spawn.TemplateID)
		if tmpl == nil {
			log.Warn("spawn references unknown template",
				zap.Int32("template_id", spawn.TemplateID))
			continue
		}
		count := spawn.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			pos := mathx.Vec3{X: spawn.X, Y: spawn.Y, Z: spawn.Z}
			if spawn.Scatter > 0 {
				fi := float64(i)
				pos.X += (noise.At(spawn.X+fi*13.7, spawn.Z)*2 - 1) * spawn.Scatter
				pos.Z += (noise.At(spawn.X, spawn.Z+fi*7.3)*2 - 1) * spawn.Scatter
			}
			state.SpawnNPC(world.NPCSpec{
				Pos:        pos,
				Direction:  spawn.Direction,
				Radius:     tmpl.Radius,
				Mass:       tmpl.Mass,
				MoveSpeed:  tmpl.MoveSpeed,
				Profession: tmpl.Profession,
				Model:      tmpl.Model,
				Scale:      tmpl.Scale,
				Palette:    tmpl.Palette,
			})
			npcCount++
		}
	}
	return npcCount, obstacleCount
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
