package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teemow/prkeeper/internal/config"
	"github.com/teemow/prkeeper/internal/event"
	"github.com/teemow/prkeeper/internal/instrumentation"
	"github.com/teemow/prkeeper/internal/logging"
	"github.com/teemow/prkeeper/internal/tracker"
)

// runtime bundles the pieces every bot command needs: validated
// configuration, a logger, the instrumentation provider and the tracker
// client bound to the configured repository.
type runtime struct {
	cfg      config.Config
	log      *slog.Logger
	provider *instrumentation.Provider
	client   *tracker.Client
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.FromEnv()
	logger := logging.NewLogger(slog.LevelInfo)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", logging.Err(err))
		return nil, err
	}
	owner, name, err := cfg.OwnerName()
	if err != nil {
		return nil, err
	}

	instCfg := instrumentation.DefaultConfig()
	instCfg.ServiceVersion = version
	if err := instCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrumentation configuration: %w", err)
	}
	provider, err := instrumentation.NewProvider(ctx, instCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize instrumentation: %w", err)
	}

	client := tracker.NewClient(ctx, cfg.Token, owner, name, provider.Metrics())

	return &runtime{
		cfg:      cfg,
		log:      logging.WithRepo(logger, cfg.Repository),
		provider: provider,
		client:   client,
	}, nil
}

// shutdown flushes pending metrics; the bots are one-shot processes, so
// skipping this would drop the run's counters.
func (r *runtime) shutdown(ctx context.Context) {
	if err := r.provider.Shutdown(ctx); err != nil {
		r.log.Error("failed to shut down instrumentation", logging.Err(err))
	}
}

// loadPayload reads the optional event payload path argument. No argument
// means no payload; the event-driven bots treat that as a fatal
// precondition themselves.
func loadPayload(args []string) (*event.Payload, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return event.Load(args[0])
}
