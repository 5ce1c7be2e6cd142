// Command hearthome runs the Hearthome simulation daemon: it ticks the
// core on wall-clock time, persists snapshots to SQLite, and serves the
// observation API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ambergrove/hearthome/internal/api"
	"github.com/ambergrove/hearthome/internal/catalog"
	"github.com/ambergrove/hearthome/internal/climate"
	"github.com/ambergrove/hearthome/internal/config"
	"github.com/ambergrove/hearthome/internal/econ"
	"github.com/ambergrove/hearthome/internal/engine"
	"github.com/ambergrove/hearthome/internal/garden"
	"github.com/ambergrove/hearthome/internal/persistence"
	"github.com/ambergrove/hearthome/internal/synergy"
	"github.com/ambergrove/hearthome/internal/tuning"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded",
		"plants", len(cat.Plants),
		"mushrooms", len(cat.Mushrooms),
		"equipment", len(cat.Equipment),
	)

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	bus := synergy.NewBus(tuning.SynergyDecayWindowDays)
	coord := engine.NewCoordinator(cat, bus, climate.NewProvider(cfg.ClimateSeed))
	coord.DayLength = cfg.DayLength

	env := loadOrSeed(db, bus, cat)

	srv := api.NewServer(cfg.APIPort, cfg.AdminKey, cat)
	skipCh := make(chan float64, 1)
	srv.Skip = func(days float64) error {
		select {
		case skipCh <- days:
			return nil
		default:
			return fmt.Errorf("a skip is already queued")
		}
	}
	srv.Start()

	// Virtual clock offset accumulated by skips: simulated "now" runs
	// ahead of the wall clock by this much, permanently.
	var offset time.Duration

	runTick := func() {
		env.CurrentTime = time.Now().Add(offset)
		res := coord.Tick(env)

		env.LastTick = res.LastTick
		env.Snapshot = res.Snapshot
		bus.Prune(res.GameDay)

		if len(res.Events) > 0 {
			for _, ev := range res.Events {
				slog.Info("event", "kind", ev.Kind, "day", fmt.Sprintf("%.2f", ev.Day))
			}
			if err := db.AppendEvents(res.Events); err != nil {
				slog.Error("failed to append events", "error", err)
			}
		}
		srv.Publish(env, res)
	}

	save := func() {
		if err := db.SaveState(env, bus.Events()); err != nil {
			slog.Error("failed to save state", "error", err)
			return
		}
		day := coord.GameDay(env, env.LastTick)
		a := persistence.Archive{Envelope: env, BusEvents: bus.Events(), GameDay: day}
		if path, err := persistence.WriteArchive(cfg.ArchiveDir, a); err != nil {
			slog.Error("failed to write archive", "error", err)
		} else {
			slog.Info("state saved", "day", fmt.Sprintf("%.2f", day), "archive", path)
		}
	}

	slog.Info("hearthome daemon started",
		"day_length", cfg.DayLength,
		"tick_interval", cfg.TickInterval,
		"game_day", fmt.Sprintf("%.2f", coord.GameDay(env, time.Now().Add(offset))),
	)

	runTick()

	tick := time.NewTicker(cfg.TickInterval)
	defer tick.Stop()
	saveTick := time.NewTicker(cfg.SaveInterval)
	defer saveTick.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-tick.C:
			runTick()
		case days := <-skipCh:
			offset += time.Duration(days * float64(cfg.DayLength))
			slog.Info("skipping forward", "days", days)
			runTick()
		case <-saveTick.C:
			save()
		case sig := <-sigCh:
			slog.Info("received signal, saving and shutting down", "signal", sig)
			save()
			return
		}
	}
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogDir != "" {
		return catalog.LoadDir(cfg.CatalogDir)
	}
	return catalog.LoadDefault()
}

// loadOrSeed restores the last save, or plants a fresh starter household.
func loadOrSeed(db *persistence.DB, bus *synergy.Bus, cat *catalog.Catalog) engine.Envelope {
	if db.HasState() {
		env, busEvents, err := db.LoadState()
		if err != nil {
			slog.Error("failed to load saved state", "error", err)
			os.Exit(1)
		}
		bus.Restore(busEvents)
		slog.Info("state restored",
			"units", len(env.Snapshot.Units),
			"goods", len(env.Snapshot.Goods),
			"money", env.Snapshot.Econ.Money,
		)
		return env
	}

	now := time.Now()
	potMod := 1.0
	if pot, ok := cat.EquipmentByID("terracotta_pot"); ok {
		potMod = pot.GrowthBonus
	}

	env := engine.Envelope{
		LastTick:  now,
		GameStart: now,
		Snapshot: engine.Snapshot{
			Units: []garden.Unit{
				garden.NewPlant("basil", true, potMod),
				garden.NewPlant("mint", false, potMod),
				garden.NewMushroom("oyster"),
			},
			Econ: econ.State{
				Money:             tuning.StartingMoney,
				WeeklyRent:        tuning.DefaultWeeklyRent,
				WeeklyGroceryBase: tuning.DefaultWeeklyGrocery,
			},
			WeeklyIncome: tuning.DefaultWeeklyIncome,
			StorageBonus: tuning.DefaultStorageBonus,
			LastRentPaid: now,
		},
	}
	slog.Info("new household seeded", "units", len(env.Snapshot.Units))
	return env
}
