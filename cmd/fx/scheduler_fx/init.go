package scheduler_fx

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vipgate/internal/services"
	mem "vipgate/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(provideCron),
	fx.Invoke(registerJobs),
)

func provideCron() *cron.Cron {
	return cron.New(cron.WithLocation(time.UTC))
}

// registerJobs schedules the daily sweeps: expired removals at 02:00 UTC,
// expiry warnings at 10:00 UTC. Both are also reachable over HTTP.
func registerJobs(
	lc fx.Lifecycle,
	c *cron.Cron,
	lifecycle services.LifecycleService,
	limiter mem.RateLimiter,
	logger *zap.Logger,
) error {
	if _, err := c.AddFunc("0 2 * * *", func() {
		report, err := lifecycle.RemoveExpired(context.Background())
		if err != nil {
			logger.Error("remove-expired sweep failed", zap.Error(err))
			return
		}
		logger.Info("remove-expired sweep finished",
			zap.Int("processed", report.Processed),
			zap.Int("total", report.Total),
			zap.Int("failures", len(report.Errors)))
	}); err != nil {
		return err
	}

	if _, err := c.AddFunc("0 10 * * *", func() {
		report, err := lifecycle.NotifyExpiring(context.Background())
		if err != nil {
			logger.Error("notify-expiring sweep failed", zap.Error(err))
			return
		}
		logger.Info("notify-expiring sweep finished",
			zap.Int("processed", report.Processed),
			zap.Int("total", report.Total),
			zap.Int("failures", len(report.Errors)))
	}); err != nil {
		return err
	}

	if _, err := c.AddFunc("@hourly", limiter.Sweep); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})
	return nil
}
