package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/datalabs-io/platform-api/config"
	"github.com/datalabs-io/platform-api/internal/observability/statsd"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Reaper  ports.ExpiryReaper  // Required: expired-item sweep
	Config  config.ReaperConfig // Required: interval and batch size
	Logger  *slog.Logger        // Optional: structured logger
	Metrics statsd.Sink         // Optional: metrics sink
}

// ReaperService physically removes expired items from the store. Reads
// already treat expired items as absent, so the sweep is pure garbage
// collection and may lag without affecting correctness.
type ReaperService struct {
	reaper  ports.ExpiryReaper
	config  config.ReaperConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewReaperService constructs a ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Reaper == nil {
		return nil, errors.New("ExpiryReaper is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaperService{
		reaper:  opts.Reaper,
		config:  opts.Config,
		logger:  logger.With("component", "reaper_service"),
		metrics: opts.Metrics,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting reaper service",
		"interval", s.config.Interval,
		"batch_size", s.config.BatchSize,
	)

	// Jitter prevents a thundering herd when multiple instances start together.
	s.waitWithJitter(ctx)

	if err := s.sweep(ctx); err != nil {
		s.logSweepError(err)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reaper service stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logSweepError(err)
			}
		}
	}
}

// sweep deletes expired items in batches until a batch comes back short.
func (s *ReaperService) sweep(ctx context.Context) error {
	start := time.Now()
	var total int64
	for {
		count, err := s.reaper.ReapExpired(ctx, s.config.BatchSize)
		total += count
		if err != nil {
			s.emitSweepMetrics(total, time.Since(start), err)
			return err
		}
		if count < int64(s.config.BatchSize) {
			break
		}
		if ctx.Err() != nil {
			s.emitSweepMetrics(total, time.Since(start), ctx.Err())
			return ctx.Err()
		}
	}

	if total > 0 {
		s.logger.InfoContext(ctx, "swept expired items", "count", total)
	}
	s.emitSweepMetrics(total, time.Since(start), nil)
	return nil
}

func (s *ReaperService) emitSweepMetrics(count int64, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := "success"
	switch {
	case err != nil:
		result = "error"
	case count == 0:
		result = "noop"
	}
	tags := map[string]string{"result": result}

	s.metrics.Count("reaper.sweep", 1, tags)
	s.metrics.Timing("reaper.sweep_duration", elapsed, tags)
	if count > 0 {
		s.metrics.Count("reaper.items_swept", count, nil)
	}
	if err == nil {
		s.metrics.Gauge("reaper.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)))

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func (s *ReaperService) logSweepError(err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Debug("sweep cancelled by context", "error", err)
		return
	}
	s.logger.Error("sweep failed", "error", err)
}
