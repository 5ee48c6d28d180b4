package notify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/redis/go-redis/v9"

	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
)

const dedupKeyPrefix = "oracle-client:notify:"

// Dedup suppresses a notification identical to one delivered within the
// window. A poll failing every 30s would otherwise notify every 30s.
// When Redis is unreachable the notification is delivered.
type Dedup struct {
	next   Sink
	rdb    *redis.Client
	window time.Duration
}

// NewDedup connects to redisURL and wraps next.
func NewDedup(ctx context.Context, redisURL string, window time.Duration, next Sink) (*Dedup, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Dedup{next: next, rdb: rdb, window: window}, nil
}

func (d *Dedup) Close() error {
	return d.rdb.Close()
}

func (d *Dedup) Notify(ctx context.Context, n Notification) {
	first, err := d.rdb.SetNX(ctx, dedupKey(n), "1", d.window).Result()
	if err != nil {
		log.Warn("notification dedup unavailable", "error", err)
		d.next.Notify(ctx, n)
		return
	}
	if !first {
		metrics.NotificationsTotal.WithLabelValues("dedup", "suppressed").Inc()
		return
	}
	d.next.Notify(ctx, n)
}

func dedupKey(n Notification) string {
	sum := sha256.Sum256([]byte(string(n.Severity) + "\x00" + n.Title + "\x00" + n.Description))
	return dedupKeyPrefix + hex.EncodeToString(sum[:])
}
