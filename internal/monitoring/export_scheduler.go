package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/services"
)

// ExportScheduler runs the automatic audit export on a cron schedule,
// writing gzip archives so the nightly files stay small.
type ExportScheduler struct {
	exporter *logview.Exporter
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewExportScheduler creates a scheduler from a standard cron expression.
func NewExportScheduler(exporter *logview.Exporter, eventSvc services.EventServiceProvider, cronExpr string) (*ExportScheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid export cron expression %q: %w", cronExpr, err)
	}
	return &ExportScheduler{
		exporter: exporter,
		eventSvc: eventSvc,
		schedule: schedule,
		nextRun:  schedule.Next(time.Now()),
		done:     make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop. It blocks until Stop is called.
func (s *ExportScheduler) Run() {
	log.Info().Time("next_run", s.nextRun).Msg("Starting export scheduler...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping export scheduler.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRun) {
				s.runExport()
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *ExportScheduler) Stop() {
	s.done <- true
}

func (s *ExportScheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	result, err := s.exporter.ExportRangeArchive(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("Scheduled audit export failed")
		s.eventSvc.CreateEvent("export.schedule.fail", "error", fmt.Sprintf("Scheduled audit export failed: %v", err))
		return
	}

	log.Info().Str("filename", result.Filename).Int("rows", result.Rows).Msg("Scheduled audit export completed")
	s.eventSvc.CreateEvent("export.schedule.success", "info",
		fmt.Sprintf("Scheduled audit export wrote %d rows to %s", result.Rows, result.Filename))
	if err := s.eventSvc.RecordExportRun(result.Filename, result.Rows, start, end, true); err != nil {
		log.Warn().Err(err).Msg("Failed to record export run")
	}
}
