package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/motion/internal/config"
	"github.com/l1jgo/motion/internal/core/event"
	coresys "github.com/l1jgo/motion/internal/core/system"
	"github.com/l1jgo/motion/internal/data"
	"github.com/l1jgo/motion/internal/geom"
	"github.com/l1jgo/motion/internal/handler"
	"github.com/l1jgo/motion/internal/hero"
	"github.com/l1jgo/motion/internal/nav"
	gonet "github.com/l1jgo/motion/internal/net"
	"github.com/l1jgo/motion/internal/net/packet"
	"github.com/l1jgo/motion/internal/persist"
	"github.com/l1jgo/motion/internal/present"
	"github.com/l1jgo/motion/internal/scripting"
	"github.com/l1jgo/motion/internal/system"
	"github.com/l1jgo/motion/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, uid uint32) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             herosim  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        天堂 3.80C · 英雄動作排程器        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m角色:\033[0m %s \033[90m(編號: %d)\033[0m\n\n", name, uid)
}

// displayWidth counts CJK runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - displayWidth(label) - len(numStr)
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

// ── Main client logic ─────────────────────────────────────────────

func run() error {
	cfgPath := flag.String("config", "config/client.toml", "config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Client.Name, cfg.Client.UID)

	// 3. Static data
	printSection("資料載入")

	maps, err := data.LoadMapData(cfg.Data.MapList, cfg.Data.TileDir)
	if err != nil {
		return fmt.Errorf("load maps: %w", err)
	}
	if maps.GetInfo(cfg.Client.MapID) == nil {
		return fmt.Errorf("map %d not loaded", cfg.Client.MapID)
	}
	printStat("地圖", maps.Count())

	sc, err := data.LoadScenario(cfg.Data.Scenario)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	printStat("劇本指令", len(sc.Steps))

	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua 腳本載入完成")
	fmt.Println()

	// 4. World view
	mapID := cfg.Client.MapID
	dir := world.NewDirectory(maps, mapID)
	for _, e := range sc.Entities {
		dir.Add(world.Entity{UID: e.UID, Name: e.Name, Kind: e.Kind, Cell: geom.C(e.X, e.Y)})
	}
	ground := world.NewGroundItems()
	for _, it := range sc.Items {
		ground.Add(world.GroundItem{ID: it.ID, ItemID: it.ItemID, Name: it.Name, Cell: geom.C(it.X, it.Y)})
	}
	bus := event.NewBus()

	// 5. Reporter: the verification server when configured, otherwise the log
	printSection("連線")
	var (
		reporter hero.Reporter
		client   *gonet.Client
	)
	if cfg.Network.ServerAddress != "" {
		dialCtx, cancel := context.WithTimeout(context.Background(), cfg.Network.DialTimeout)
		client, err = gonet.Dial(dialCtx, cfg.Network.ServerAddress,
			cfg.Network.InQueueSize, cfg.Network.OutQueueSize, cfg.Network.WriteTimeout, log)
		cancel()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer client.Close()
		client.Start()
		client.Hello(cfg.Client.Name, cfg.Client.UID, mapID)
		reporter = client
		printOK(fmt.Sprintf("已連線 %s", cfg.Network.ServerAddress))
	} else {
		reporter = gonet.NewLogReporter(log)
		printOK("離線模式，動作只寫入日誌")
	}
	fmt.Println()

	// 6. Hero
	finder := nav.NewFinder(maps, mapID)
	presenter := present.New(ground, log)
	presenter.SetSpellBook(engine)

	h, err := hero.New(hero.Options{
		UID:          cfg.Client.UID,
		Start:        geom.C(cfg.Client.StartX, cfg.Client.StartY),
		Mounted:      cfg.Client.Mounted,
		DefaultSpeed: cfg.Hero.DefaultSpeed,
		MotionDelay:  cfg.Hero.MotionDelay,
		TraceMove:    cfg.Hero.TraceMove,
	}, hero.Deps{
		Paths:     finder,
		Occupancy: finder,
		Directory: dir,
		Presenter: presenter,
		Reporter:  reporter,
		Spells:    engine,
		Bus:       bus,
	}, log)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	finder.SetStepper(h)

	// 7. Journal (optional)
	journal := persist.NewJournal(fmt.Sprintf("%s-%d", cfg.Client.Name, time.Now().Unix()))
	var store persist.JournalStore
	if cfg.Database.Enabled {
		printSection("資料庫")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL 連線成功")

		version, err := persist.RunMigrations(ctx, db.Pool, log)
		cancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("資料庫遷移完成 (版本 %d)", version))
		fmt.Println()
		store = persist.NewJournalRepo(db)
	}

	// 8. Systems
	scenario := system.NewScenarioSystem(sc, h, dir, log)
	heroSys := system.NewHeroSystem(h)
	pickup := system.NewAutoPickupSystem(h, ground)
	journalSys := system.NewJournalSystem(bus, journal, store, log, cfg.Database.FlushInterval)

	runner := coresys.NewRunner()
	if client != nil {
		reg := packet.NewRegistry(log)
		handler.RegisterAll(reg, &handler.Deps{Hero: h, Directory: dir, Ground: ground, Bus: bus, Log: log})
		runner.Register(system.NewInputSystem(client, reg, log))
	}
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(scenario)
	runner.Register(heroSys)
	runner.Register(pickup)
	runner.Register(journalSys)

	// 9. Start loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Hero.TickRate)
	defer ticker.Stop()

	printSection("開始")
	printReady(fmt.Sprintf("劇本 %s", sc.Name))
	printReady(fmt.Sprintf("迴圈啟動 (tick: %s)", cfg.Hero.TickRate))
	fmt.Println()

	var lost <-chan struct{}
	if client != nil {
		lost = client.Done()
	}

	finish := func(reason string) {
		// deliver events of the last tick before the final flush
		bus.SwapBuffers()
		bus.DispatchAll()
		journalSys.Flush()
		ticks, failed := heroSys.Stats()
		log.Info(reason,
			zap.Stringer("position", h.Position()),
			zap.Int("ticks", ticks),
			zap.Int("failed", failed),
			zap.Int("picked_up", presenter.PickedUp()),
			zap.Int("auto_pickup", pickup.Reported()),
			zap.Int("journal_pending", journal.Pending()))
	}

	for {
		select {
		case now := <-ticker.C:
			runner.Tick(now)
			if scenario.Done() {
				finish("劇本結束")
				return nil
			}
		case <-lost:
			finish("伺服器連線中斷")
			return nil
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			finish("已停止")
			return nil
		}
	}
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
