package main

import (
	"fmt"
	"log/slog"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/adamjmurray/producer-pal/internal/config"
	"github.com/adamjmurray/producer-pal/pkg/adapters/memory"
	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/spf13/cobra"
)

// loadConfig resolves the configuration file and flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if fixture, _ := cmd.Flags().GetString("fixture"); fixture != "" {
		cfg.Fixture = fixture
	}
	return cfg, nil
}

// buildEngine wires the engine over the in-memory host. Production
// deployments embed the library against their own live.Client bridge;
// the CLI serves the in-memory set for demos and integration tests.
func buildEngine(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*producerpal.Engine, error) {
	var set *memory.Set
	var err error
	if cfg.Fixture != "" {
		set, err = memory.LoadSet(cfg.Fixture)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		logger.Info("loaded set fixture", "path", cfg.Fixture, "tracks", len(set.Tracks), "scenes", len(set.Scenes))
	} else {
		set = memory.NewSet()
	}

	opts := []producerpal.Option{
		producerpal.WithLogger(logger),
		producerpal.WithLifecycleHooks(hooks),
		producerpal.WithLengthener(set.Lengthener()),
	}
	if cfg.HoldingGap > 0 {
		opts = append(opts, producerpal.WithHoldingGap(cfg.HoldingGap))
	}
	if cfg.ControlDeviceName != "" {
		opts = append(opts, producerpal.WithControlDeviceName(cfg.ControlDeviceName))
	}
	return producerpal.New(set.Client(), opts...)
}
