package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
	"worklog/internal/platform/config"
	"worklog/internal/platform/metrics"
)

const JobRecompute = "totals_recompute"

// Service runs background work on a single worker goroutine. The only
// scheduled job refreshes stored work-day totals so that rate-card edits
// made outside the API (or missed batch recomputes) eventually converge.
type Service struct {
	DB        *pgxpool.Pool
	Cfg       config.Config
	WorkDays  *workday.Store
	Employers *employer.Store
	Metrics   *metrics.Collector
	queue     chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, workDays *workday.Store, employers *employer.Store, collector *metrics.Collector) *Service {
	return &Service{
		DB:        db,
		Cfg:       cfg,
		WorkDays:  workDays,
		Employers: employers,
		Metrics:   collector,
		queue:     make(chan job, 16),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.RecomputeInterval > 0 {
		go s.scheduleRecompute(ctx, s.Cfg.RecomputeInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleRecompute(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobRecompute, s.recomputeTotals)
		}
	}
}

func (s *Service) recomputeTotals(ctx context.Context) (any, error) {
	updated, skipped, err := workday.RecomputeAll(ctx, s.WorkDays, s.Employers)
	if s.Metrics != nil {
		s.Metrics.RecordRecompute(updated)
	}
	return map[string]int{"updated": updated, "skipped": skipped}, err
}
