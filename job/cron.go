package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"labor-contract/logger"
)

// Purger deletes sessions idle for longer than ttl.
type Purger interface {
	PurgeIdle(ctx context.Context, ttl time.Duration) (int64, error)
}

// StartCronJob schedules the idle-session purge. The caller stops the
// returned cron on shutdown.
func StartCronJob(spec string, ttl time.Duration, p Purger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { PurgeOnce(context.Background(), ttl, p) }); err != nil {
		return nil, fmt.Errorf("schedule purge %q: %w", spec, err)
	}
	c.Start()
	logger.L().Info("session purge scheduled", zap.String("spec", spec), zap.Duration("idle_ttl", ttl))
	return c, nil
}

func PurgeOnce(ctx context.Context, ttl time.Duration, p Purger) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	n, err := p.PurgeIdle(ctx, ttl)
	if err != nil {
		logger.L().Error("purge idle sessions", zap.Error(err))
		return
	}
	if n > 0 {
		logger.L().Info("purged idle sessions", zap.Int64("count", n))
	}
}
