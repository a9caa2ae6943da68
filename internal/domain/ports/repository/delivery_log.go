package repository

import (
	"context"
	"time"

	"quran-daily-bot/internal/domain/model"
)

// DeliveryLogRepository records sent verses. The ledger is append-only and
// idempotent per (chat, verse, day); nothing in the delivery flow reads it
// back today, the read path exists for tests and future selection logic.
type DeliveryLogRepository interface {
	Record(ctx context.Context, tx Tx, chatID int64, verseKey string, sentDate time.Time) error
	ListByChat(ctx context.Context, tx Tx, chatID int64, from, to time.Time) ([]model.DeliveryRecord, error)
}
