package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Publisher receives each freshly generated feed.
type Publisher interface {
	Update(data []byte)
}

// Watch syncs rs once, publishes the feed, then resyncs every interval until
// ctx is cancelled. A non-positive interval disables the periodic refresh.
// A failed sync keeps the previously published feed.
func (g *Generator) Watch(ctx context.Context, rs *RuleSet, pub Publisher, interval time.Duration) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	g.publish(ctx, rs, pub)

	if interval <= config.DisabledInterval {
		<-ctx.Done()
		log.Info(config.MsgWorkerStop)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			g.publish(ctx, rs, pub)
		}
	}
}

func (g *Generator) publish(ctx context.Context, rs *RuleSet, pub Publisher) {
	icsData, _, _, err := g.RunSync(ctx, rs)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error(config.MsgSyncFailed,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyError, err)
		}
		return
	}
	pub.Update(icsData)
}
