package adapter

import (
	"context"

	"quran-daily-bot/internal/domain/model"
)

// ContentProvider is the remote verse/translation/tafsir lookup surface.
// Edition ids are provider-specific; the usecase layer owns the code→id maps.
type ContentProvider interface {
	VerseByKey(ctx context.Context, verseKey string) (*model.Verse, error)
	Translation(ctx context.Context, editionID int, verseKey string) (*model.Translation, error)
	Tafsir(ctx context.Context, editionID int, verseKey string) (*model.Tafsir, error)
}
