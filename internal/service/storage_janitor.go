package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillhub/skills-dashboard/internal/observability/metrics"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
)

// ExpiredRecordPurger deletes client storage records whose TTL has elapsed.
type ExpiredRecordPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// JanitorHooks groups optional observability dependencies for StorageJanitor.
type JanitorHooks struct {
	Logger  *slog.Logger // Optional: structured logger
	Metrics statsd.Sink  // Optional: metrics sink (StatsD-compatible)
	Backend string       // Optional: backend name used as a metric tag
}

// StorageJanitorOptions groups dependencies for StorageJanitor.
type StorageJanitorOptions struct {
	Purger   ExpiredRecordPurger // Required: storage backend that can sweep expired records
	Interval time.Duration       // Required: sweep interval
	Hooks    JanitorHooks
}

// StorageJanitor periodically removes expired session records from backends
// that do not expire keys on their own (memory and postgres).
type StorageJanitor struct {
	purger   ExpiredRecordPurger
	interval time.Duration
	backend  string
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewStorageJanitor constructs a new StorageJanitor.
func NewStorageJanitor(opts StorageJanitorOptions) (*StorageJanitor, error) {
	if opts.Purger == nil {
		return nil, errors.New("purger is required")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("purge interval must be positive, got %s", opts.Interval)
	}
	logger := opts.Hooks.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StorageJanitor{
		purger:   opts.Purger,
		interval: opts.Interval,
		backend:  opts.Hooks.Backend,
		logger:   logger.With("component", "storage_janitor"),
		metrics:  opts.Hooks.Metrics,
	}, nil
}

// Run sweeps expired records at the configured interval until ctx is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (j *StorageJanitor) Run(ctx context.Context) error {
	j.logger.InfoContext(ctx, "starting storage janitor", "interval", j.interval, "backend", j.backend)

	// Spread sweeps of replicas that start together.
	j.waitWithJitter(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	if _, err := j.Sweep(ctx); err != nil {
		j.logSweepError(ctx, err, "initial sweep")
	}

	for {
		select {
		case <-ctx.Done():
			j.logger.InfoContext(ctx, "storage janitor stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil {
				j.logSweepError(ctx, err, "sweep")
			}
		}
	}
}

// Sweep runs one purge pass and reports how many records were removed.
func (j *StorageJanitor) Sweep(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := j.purger.PurgeExpired(ctx)
	metrics.EmitStoragePurge(j.metrics, metrics.PurgeMetric{
		Backend: j.backend,
		Removed: n,
		Elapsed: time.Since(start),
		Err:     suppressContextCancellation(err),
	})
	if err != nil {
		if isContextCancellation(err) {
			return n, err
		}
		return n, fmt.Errorf("purge expired client storage: %w", err)
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "purged expired client storage", "count", n, "backend", j.backend)
	}
	return n, nil
}

// waitWithJitter sleeps for a random delay up to 10% of the interval.
func (j *StorageJanitor) waitWithJitter(ctx context.Context) {
	maxJitter := int64(j.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		j.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (j *StorageJanitor) logSweepError(ctx context.Context, err error, label string) {
	if isContextCancellation(err) {
		j.logger.DebugContext(ctx, label+" cancelled by context", "error", err)
		return
	}
	j.logger.ErrorContext(ctx, label+" failed", "error", err)
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func suppressContextCancellation(err error) error {
	if isContextCancellation(err) {
		return nil
	}
	return err
}
