package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/obma24/Quest-Board/internal/api"
	"github.com/obma24/Quest-Board/internal/app/activity"
	"github.com/obma24/Quest-Board/internal/app/quest"
	"github.com/obma24/Quest-Board/internal/app/shop"
	"github.com/obma24/Quest-Board/internal/domain"
	"github.com/obma24/Quest-Board/internal/health"
	"github.com/obma24/Quest-Board/internal/infra/metrics"
	"github.com/obma24/Quest-Board/internal/infra/sqlite"
)

// Daemon is the core Quest Board runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Quests   *quest.Service
	Shop     *shop.Service
	Activity *activity.Service
	Health   *health.Checker
	Server   *api.Server
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = questboardHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	quests := quest.NewService(db)
	quests.Subscribe(logEvent)
	quests.Subscribe(countEvent)

	d := &Daemon{
		Config:   cfg,
		DB:       db,
		Quests:   quests,
		Shop:     shop.NewService(db),
		Activity: activity.NewService(db),
		Health:   health.NewChecker(db, dataDir),
	}

	srv := api.NewServer(d.Quests, d.Shop, d.Activity, version)
	srv.SetHealthChecker(d.Health)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Quest Board serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// logEvent is the daemon's logging subscriber on the lifecycle controller.
func logEvent(e domain.Event) {
	switch e.Type {
	case domain.EventQuestCompleted:
		log.Printf("[daemon] %s completed quest %s (+%d coins, streak %d)",
			e.UserID, e.QuestID, e.Coins, e.Streak)
	case domain.EventLevelUp:
		log.Printf("[daemon] %s reached level %d", e.UserID, e.Level)
	case domain.EventBadgeEarned:
		log.Printf("[daemon] %s earned badge %s", e.UserID, e.Badge)
	case domain.EventQuestRespawned:
		log.Printf("[daemon] respawned %s quest %s for %s", e.Frequency, e.QuestID, e.UserID)
	}
}

// countEvent is the daemon's metrics subscriber on the lifecycle controller.
func countEvent(e domain.Event) {
	switch e.Type {
	case domain.EventQuestCreated:
		metrics.QuestsCreated.WithLabelValues(string(e.Frequency)).Inc()
	case domain.EventQuestCompleted:
		metrics.QuestsCompleted.WithLabelValues(string(e.Frequency)).Inc()
		metrics.CoinsGranted.Add(float64(e.Coins))
	case domain.EventQuestUncompleted:
		metrics.QuestsUncompleted.Inc()
	case domain.EventQuestRespawned:
		metrics.QuestsRespawned.Inc()
	case domain.EventLevelUp:
		metrics.LevelsGained.Add(float64(e.LevelsGained))
	case domain.EventBadgeEarned:
		metrics.BadgesAwarded.WithLabelValues(e.Badge).Inc()
	case domain.EventLogin:
		metrics.Logins.Inc()
	}
}
