package repository

import (
	"context"

	"quran-daily-bot/internal/domain/model"
)

// PreferenceRepository persists per-chat configuration. Private chats and
// groups live in disjoint namespaces selected by kind.
type PreferenceRepository interface {
	// Find returns the stored record or domain.ErrNotFound.
	Find(ctx context.Context, tx Tx, kind model.ChatKind, chatID int64) (*model.ChatPreference, error)
	// Save upserts the full record; all fields are overwritten.
	Save(ctx context.Context, tx Tx, kind model.ChatKind, pref *model.ChatPreference) error
	// ListDailyEnabled returns every chat of the given kind with daily
	// delivery turned on. Filtering happens in the query.
	ListDailyEnabled(ctx context.Context, tx Tx, kind model.ChatKind) ([]model.ChatPreference, error)
}
