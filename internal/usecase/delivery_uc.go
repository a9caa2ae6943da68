package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
	"quran-daily-bot/internal/domain/ports/repository"
	"quran-daily-bot/internal/infra/metrics"
	"quran-daily-bot/internal/infra/worker"
)

// DeliveryReport summarises one daily fan-out run.
type DeliveryReport struct {
	Attempted int
	Sent      int
	Failed    int
}

// Compile-time check
var _ DeliveryUseCase = (*deliveryUC)(nil)

// DeliveryUseCase drives the once-daily verse fan-out. Each chat is an
// independent attempt: one chat's failure never aborts its siblings.
type DeliveryUseCase interface {
	RunDaily(ctx context.Context) (DeliveryReport, error)
}

type deliveryUC struct {
	prefs   PreferenceUseCase
	content ContentUseCase
	ledger  repository.DeliveryLogRepository
	bot     adapter.TelegramBotAdapter
	workers int
	log     *zerolog.Logger
}

func NewDeliveryUseCase(
	prefs PreferenceUseCase,
	content ContentUseCase,
	ledger repository.DeliveryLogRepository,
	bot adapter.TelegramBotAdapter,
	workers int,
	logger *zerolog.Logger,
) *deliveryUC {
	compLog := logger.With().Str("component", "DeliveryUC").Logger()
	return &deliveryUC{
		prefs:   prefs,
		content: content,
		ledger:  ledger,
		bot:     bot,
		workers: workers,
		log:     &compLog,
	}
}

// RunDaily loads both daily-enabled sets and dispatches one delivery per
// chat through a bounded pool, joining before it returns. Listing failures
// for one kind are logged and do not block the other kind.
func (d *deliveryUC) RunDaily(ctx context.Context) (DeliveryReport, error) {
	start := time.Now()
	var sent, failed atomic.Int64
	attempted := 0

	pool := worker.NewPool(d.workers, d.log)
	pool.Start(ctx)

	for _, kind := range []model.ChatKind{model.KindPrivate, model.KindGroup} {
		chats, err := d.prefs.ListDailyEnabled(ctx, kind)
		if err != nil {
			d.log.Error().Err(err).Str("kind", string(kind)).Msg("failed to load daily-enabled chats")
			continue
		}
		attempted += len(chats)
		for _, pref := range chats {
			kind := kind
			pref := pref
			pool.Submit(func(ctx context.Context) error {
				if err := d.deliverOne(ctx, kind, &pref); err != nil {
					failed.Add(1)
					metrics.IncDelivery(string(kind), "failed")
					d.log.Warn().Err(err).Int64("chat_id", pref.ChatID).Str("kind", string(kind)).Msg("daily delivery failed")
					return err
				}
				sent.Add(1)
				metrics.IncDelivery(string(kind), "sent")
				return nil
			})
		}
	}

	pool.Wait()
	metrics.ObserveDailyRun(time.Since(start).Seconds())

	report := DeliveryReport{
		Attempted: attempted,
		Sent:      int(sent.Load()),
		Failed:    int(failed.Load()),
	}
	d.log.Info().
		Int("attempted", report.Attempted).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Dur("duration", time.Since(start)).
		Msg("daily fan-out finished")
	return report, nil
}

func (d *deliveryUC) deliverOne(ctx context.Context, kind model.ChatKind, pref *model.ChatPreference) error {
	text, verseKey, err := d.content.BuildMessage(ctx, pref)
	if err != nil {
		return err
	}
	if err := d.bot.SendMarkdown(ctx, pref.ChatID, text); err != nil {
		return err
	}
	// The send already happened; a lost audit row is acceptable.
	if err := d.ledger.Record(ctx, repository.NoTX, pref.ChatID, verseKey, time.Now().UTC()); err != nil {
		d.log.Warn().Err(err).Int64("chat_id", pref.ChatID).Str("verse_key", verseKey).Msg("failed to record delivery")
	}
	return nil
}
