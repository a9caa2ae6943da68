package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/repository"
)

var _ repository.DeliveryLogRepository = (*DeliveryLogRepo)(nil)

type DeliveryLogRepo struct {
	pool *pgxpool.Pool
}

func NewDeliveryLogRepo(pool *pgxpool.Pool) *DeliveryLogRepo {
	return &DeliveryLogRepo{pool: pool}
}

func (r *DeliveryLogRepo) Record(ctx context.Context, tx repository.Tx, chatID int64, verseKey string, sentDate time.Time) error {
	// The UNIQUE constraint on (chat_id, verse_key, sent_date) makes the
	// duplicate insert a no-op rather than an error.
	const q = `
INSERT INTO delivery_log (id, chat_id, verse_key, sent_date)
VALUES ($1, $2, $3, $4)
ON CONFLICT (chat_id, verse_key, sent_date) DO NOTHING;`

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, uuid.NewString(), chatID, verseKey, sentDate)
	return err
}

func (r *DeliveryLogRepo) ListByChat(ctx context.Context, tx repository.Tx, chatID int64, from, to time.Time) ([]model.DeliveryRecord, error) {
	const q = `
SELECT id, chat_id, verse_key, sent_date
  FROM delivery_log
 WHERE chat_id=$1 AND sent_date >= $2 AND sent_date <= $3
 ORDER BY sent_date;`

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, chatID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DeliveryRecord
	for rows.Next() {
		var rec model.DeliveryRecord
		if err := rows.Scan(&rec.ID, &rec.ChatID, &rec.VerseKey, &rec.SentDate); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
