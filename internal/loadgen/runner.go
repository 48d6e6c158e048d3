package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/types"
	"github.com/okian/careerlens/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type statsResponse struct {
	Analytics types.Analytics `json:"analytics"`
}

// Run submits synthetic assessments to cfg.BaseURL, waits for every accepted
// submission to leave the pending state, and cross-checks the counts.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) {
	applyDefaults(&cfg)
	start := time.Now()
	c := newClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{ByStatus: map[string]int{}}

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("submissions", cfg.Submissions),
		logger.Int("workers", cfg.Workers),
		logger.Float64("duplicateRatio", cfg.DuplicateRatio))

	code, err := c.get(ctx, "/healthz", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnhealthy, code)
	}

	var before statsResponse
	if _, err := c.get(ctx, "/stats", &before); err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}

	subs := Generate(cfg.Submissions, cfg.DuplicateRatio, cfg.Seed)
	stats.Generated = len(subs)
	if cfg.OutputFile != "" {
		if err := save(cfg.OutputFile, subs); err != nil {
			log.Warn(ctx, "failed to save submissions", logger.Error(err))
		}
	}

	accepted := submit(ctx, c, cfg.Workers, subs, stats)
	log.Info(ctx, "submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))

	settleErr := settle(ctx, c, cfg, accepted, stats)

	var after statsResponse
	if _, err := c.get(ctx, "/stats", &after); err != nil {
		return stats, fmt.Errorf("read stats: %w", err)
	}
	stats.Analytics = after.Analytics.TotalAssessments - before.Analytics.TotalAssessments
	stats.Duration = time.Since(start)
	if stats.Duration > 0 {
		stats.Throughput = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	if settleErr != nil {
		return stats, settleErr
	}
	if err := verify(cfg, stats); err != nil {
		return stats, err
	}
	log.Info(ctx, "load run verified",
		logger.Int("settled", stats.Settled),
		logger.Any("byStatus", stats.ByStatus),
		logger.Duration("duration", stats.Duration),
		logger.Float64("submissionsPerSecond", stats.Throughput))
	return stats, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = defaultSettleTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.DuplicateRatio < 0 {
		cfg.DuplicateRatio = 0
	}
	if cfg.DuplicateRatio > 1 {
		cfg.DuplicateRatio = 1
	}
}

// submit fans subs out to workers and returns the accepted submission IDs.
func submit(ctx context.Context, c *client, workers int, subs []Submission, stats *Stats) []string {
	var (
		submitted, acceptedN, duplicate, rejected, failed int64

		mu       sync.Mutex
		accepted = make([]string, 0, len(subs))
		wg       sync.WaitGroup
	)
	ch := make(chan Submission, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range ch {
				atomic.AddInt64(&submitted, 1)
				switch submitOne(ctx, c, sub) {
				case outcomeAccepted:
					atomic.AddInt64(&acceptedN, 1)
					mu.Lock()
					accepted = append(accepted, sub.SubmissionID)
					mu.Unlock()
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case ch <- sub:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted)
	stats.Accepted = int(acceptedN)
	stats.Duplicate = int(duplicate)
	stats.Rejected = int(rejected)
	stats.Failed = int(failed)
	return accepted
}

func submitOne(ctx context.Context, c *client, sub Submission) string {
	var ack Ack
	code, err := c.post(ctx, "/assessments/async", sub, &ack)
	switch {
	case err != nil:
		return outcomeFailed
	case code == http.StatusAccepted:
		return outcomeAccepted
	case code == http.StatusConflict:
		return outcomeDuplicate
	case code >= 400 && code < 500:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}

// settle polls each accepted record until it is no longer pending.
func settle(ctx context.Context, c *client, cfg Config, ids []string, stats *Stats) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.SettleTimeout)
	defer cancel()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, id := range ids {
		g.Go(func() error {
			status, err := poll(gctx, c, id, cfg.PollInterval)
			if err != nil {
				return err
			}
			mu.Lock()
			stats.Settled++
			stats.ByStatus[status]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %d of %d settled", ErrUnsettled, stats.Settled, len(ids))
		}
		return err
	}
	return nil
}

func poll(ctx context.Context, c *client, id string, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		var rec model.AssessmentRecord
		code, err := c.get(ctx, recordPath(id), &rec)
		if err != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		if err == nil && code == http.StatusOK && rec.Status != model.StatusPending {
			return rec.Status, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// verify checks duplicate accounting and that analytics grew by at least the
// number of completed and degraded records.
func verify(cfg Config, stats *Stats) error {
	if stats.Rejected == 0 && stats.Failed == 0 {
		want := int(float64(cfg.Submissions) * cfg.DuplicateRatio)
		if stats.Duplicate != want {
			return fmt.Errorf("%w: %d duplicates, want %d", ErrMismatch, stats.Duplicate, want)
		}
	}
	counted := stats.ByStatus[model.StatusCompleted] + stats.ByStatus[model.StatusDegraded]
	if stats.Analytics < counted {
		return fmt.Errorf("%w: analytics grew by %d, %d records completed", ErrMismatch, stats.Analytics, counted)
	}
	return nil
}

func save(path string, subs []Submission) error {
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal submissions: %w", err)
	}
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
