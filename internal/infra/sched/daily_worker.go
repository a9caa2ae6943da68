package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"quran-daily-bot/internal/usecase"
)

// runTimeout bounds one full fan-out run so a hung provider or transport
// cannot leak a run into the next day.
const runTimeout = 30 * time.Minute

// DailyWorker fires the verse fan-out at a fixed local time described by a
// cron expression (default "0 8 * * *"). The per-chat timezone field is not
// consulted; there is one global trigger.
type DailyWorker struct {
	spec     string
	delivery usecase.DeliveryUseCase
	log      *zerolog.Logger
	cron     *cron.Cron
}

func NewDailyWorker(spec string, delivery usecase.DeliveryUseCase, logger *zerolog.Logger) *DailyWorker {
	compLog := logger.With().Str("component", "DailyWorker").Logger()
	return &DailyWorker{
		spec:     spec,
		delivery: delivery,
		log:      &compLog,
	}
}

// Run schedules the daily job and blocks until ctx is canceled.
func (w *DailyWorker) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.runOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", w.spec, err)
	}
	w.cron = c
	c.Start()
	w.log.Info().Str("spec", w.spec).Msg("daily worker started")

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	w.log.Info().Msg("daily worker stopped")
	return ctx.Err()
}

func (w *DailyWorker) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	w.log.Info().Msg("sending daily verses")
	report, err := w.delivery.RunDaily(runCtx)
	if err != nil {
		w.log.Error().Err(err).Msg("daily run failed")
		return
	}
	w.log.Info().Int("attempted", report.Attempted).Int("sent", report.Sent).Int("failed", report.Failed).Msg("daily run complete")
}
