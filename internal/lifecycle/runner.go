package lifecycle

import (
	"context"
	"time"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/config"
	"go.uber.org/zap"
)

// Runner drives the engine on a coarse periodic schedule. Each pass gets its
// own wall-clock budget; an interrupted pass leaves already-committed
// transitions in place and the next tick resumes where it left off.
type Runner struct {
	engine *Engine
	logger *zap.Logger

	interval   time.Duration
	runTimeout time.Duration
}

func NewRunner(engine *Engine, cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{
		engine:     engine,
		logger:     logger.Named("lifecycle.runner"),
		interval:   cfg.LifecycleInterval,
		runTimeout: cfg.LifecycleRunTimeout,
	}
}

func (r *Runner) Run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	summary, err := r.engine.RunOnce(runCtx)
	if err != nil {
		r.logger.Error("pass_failed", zap.Error(err))
		return
	}

	r.logger.Info("pass_completed",
		zap.Int("processed", summary.Processed),
		zap.Int("transitions", summary.Transitions),
	)
}
