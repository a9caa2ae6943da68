package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/repository"
)

var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

type PreferenceRepo struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepo(pool *pgxpool.Pool) *PreferenceRepo {
	return &PreferenceRepo{pool: pool}
}

// tableFor selects the storage namespace; table names are fixed constants,
// never user input.
func tableFor(kind model.ChatKind) string {
	if kind == model.KindGroup {
		return "group_preferences"
	}
	return "chat_preferences"
}

func (r *PreferenceRepo) Find(ctx context.Context, tx repository.Tx, kind model.ChatKind, chatID int64) (*model.ChatPreference, error) {
	q := fmt.Sprintf(`
SELECT chat_id, display_name, language, tafsir_source, daily_enabled, timezone
  FROM %s WHERE chat_id=$1;`, tableFor(kind))

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var p model.ChatPreference
	row := ex.QueryRow(ctx, q, chatID)
	if err := row.Scan(&p.ChatID, &p.DisplayName, &p.Language, &p.TafsirSource, &p.DailyEnabled, &p.Timezone); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PreferenceRepo) Save(ctx context.Context, tx repository.Tx, kind model.ChatKind, pref *model.ChatPreference) error {
	q := fmt.Sprintf(`
INSERT INTO %s (chat_id, display_name, language, tafsir_source, daily_enabled, timezone)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (chat_id) DO UPDATE SET
  display_name=$2, language=$3, tafsir_source=$4, daily_enabled=$5, timezone=$6;`, tableFor(kind))

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, pref.ChatID, pref.DisplayName, pref.Language, pref.TafsirSource, pref.DailyEnabled, pref.Timezone)
	return err
}

func (r *PreferenceRepo) ListDailyEnabled(ctx context.Context, tx repository.Tx, kind model.ChatKind) ([]model.ChatPreference, error) {
	q := fmt.Sprintf(`
SELECT chat_id, display_name, language, tafsir_source, daily_enabled, timezone
  FROM %s WHERE daily_enabled;`, tableFor(kind))

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatPreference
	for rows.Next() {
		var p model.ChatPreference
		if err := rows.Scan(&p.ChatID, &p.DisplayName, &p.Language, &p.TafsirSource, &p.DailyEnabled, &p.Timezone); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
