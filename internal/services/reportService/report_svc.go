package reportservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redjax/hwsum/internal/config"
	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
	platformservice "github.com/redjax/hwsum/internal/services/platformService"
	"github.com/redjax/hwsum/internal/utils/spinner"
)

// NewLogger builds the text logger on w at the configured level.
func NewLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})), nil
}

// NewBackend builds the executor and the backend for the running OS.
func NewBackend(cfg *config.Config, logger *slog.Logger) (platformservice.Backend, error) {
	executor := platformservice.NewShellExecutor(cfg.Collect.Timeout, cfg.Collect.Retries, logger)
	return platformservice.NewBackend(executor, logger)
}

// Collect runs one collection pass against backend. A spinner is shown on
// stderr unless disabled or debug logging is on, since the two would
// interleave.
func Collect(ctx context.Context, cfg *config.Config, backend platformservice.Backend, logger *slog.Logger) (*inventoryservice.Inventory, error) {
	if missing := platformservice.MissingRequirements(backend); len(missing) > 0 {
		logger.Warn("required commands not found on PATH", "backend", backend.Name(), "missing", missing)
	}

	collector := inventoryservice.NewCollector(backend,
		inventoryservice.WithPartial(cfg.Collect.Partial),
		inventoryservice.WithLogger(logger),
	)

	stop := func() {}
	if cfg.Spinner && !logger.Enabled(ctx, slog.LevelDebug) {
		stop = spinner.StartSpinner("Collecting hardware inventory")
	}

	inv, err := collector.Collect(ctx)
	stop()
	if err != nil {
		return nil, fmt.Errorf("collect hardware inventory on %s: %w", backend.Name(), err)
	}

	logger.Info("inventory collected",
		"id", inv.ID,
		"cpus", len(inv.CPUs),
		"memory_modules", len(inv.Memory),
		"disks", len(inv.Disks),
	)
	return inv, nil
}
