package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/persistence"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/server"
	"github.com/wfunc/drawguess/services"
	"github.com/wfunc/drawguess/session"
	"github.com/wfunc/drawguess/timer"
)

func main() {
	configPath := pflag.StringP("config", "c", ".", "directory holding config.yaml")
	pflag.Parse()

	logger.Init("info")
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	// Game archive
	var db persistence.Database
	if cfg.Database.Enabled {
		pg, err := persistence.NewGormPostgreSQL(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
		db = pg
	} else {
		logger.Log.Info("Database disabled, keeping finished games in memory.")
		db = persistence.NewMemoryStore(persistence.DefaultMemoryCapacity)
	}
	defer db.Close()
	records := services.NewRecordService(db, cfg.Database.Timeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mon, err := monitor.NewMonitor(cfg.Metrics.Namespace, reg)
	if err != nil {
		logger.Log.Fatalf("Failed to register metrics: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := server.NewLoop(1024)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	timers := timer.NewTimerManager(10*time.Millisecond, loop.Dispatch)
	defer timers.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	registry := room.NewRegistry(timers, rng, cfg.Game.StrokeBuffer)
	sessions := session.NewManager()

	engine := game.NewEngine(
		game.SettingsFromConfig(cfg.Game),
		registry,
		timers,
		broadcast.NewRoomBroadcaster(registry, sessions),
		game.WithRand(rng),
		game.WithGuesser(ai.NewGuesser(game.PolicyFromConfig(cfg.AI))),
		game.WithMonitor(mon),
		game.WithRecorder(records),
	)

	gameServer := server.NewGameServer(cfg.Server, engine, loop, sessions, mon, records)
	go func() {
		if err := gameServer.Start(); err != nil {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, os.Interrupt)
	sig := <-sigCh
	logger.Log.Infow("shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := gameServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warnw("http shutdown", "error", err)
	}
	timers.Stop()
	cancel()
	<-loopDone
	records.Wait()
	logger.Log.Info("Server stopped.")
}
