package usecase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/repository"
	"quran-daily-bot/internal/infra/logging"
)

// Compile-time check
var _ PreferenceUseCase = (*preferenceUC)(nil)

// PreferenceUseCase exposes per-chat configuration operations used by the
// bot handlers and the daily fan-out.
type PreferenceUseCase interface {
	// Get returns the stored record or a transient default-valued one.
	// A missing record is never an error; only storage failures are.
	Get(ctx context.Context, kind model.ChatKind, chatID int64) (*model.ChatPreference, error)
	// EnsureDefaults persists a default record for a new chat, keeping any
	// existing settings untouched.
	EnsureDefaults(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (*model.ChatPreference, error)
	SetLanguage(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (*model.ChatPreference, error)
	SetTafsirSource(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (*model.ChatPreference, error)
	// ToggleDaily flips the daily-delivery switch and returns the new state.
	ToggleDaily(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (bool, error)
	ListDailyEnabled(ctx context.Context, kind model.ChatKind) ([]model.ChatPreference, error)
}

type preferenceUC struct {
	prefs repository.PreferenceRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewPreferenceUseCase(prefs repository.PreferenceRepository, tm repository.TransactionManager, logger *zerolog.Logger) *preferenceUC {
	return &preferenceUC{prefs: prefs, tm: tm, log: logger}
}

func (u *preferenceUC) Get(ctx context.Context, kind model.ChatKind, chatID int64) (*model.ChatPreference, error) {
	p, err := u.prefs.Find(ctx, repository.NoTX, kind, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.NewChatPreference(chatID, ""), nil
		}
		return nil, err
	}
	return p, nil
}

func (u *preferenceUC) EnsureDefaults(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (*model.ChatPreference, error) {
	defer logging.TraceDuration(u.log, "PreferenceUC.EnsureDefaults")()

	var out *model.ChatPreference
	err := u.mutate(ctx, kind, chatID, displayName, func(p *model.ChatPreference) {
		out = p
	})
	return out, err
}

func (u *preferenceUC) SetLanguage(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (*model.ChatPreference, error) {
	defer logging.TraceDuration(u.log, "PreferenceUC.SetLanguage")()

	if !model.IsSupportedLanguage(code) {
		return nil, domain.ErrInvalidArgument
	}
	var out *model.ChatPreference
	err := u.mutate(ctx, kind, chatID, displayName, func(p *model.ChatPreference) {
		p.Language = code
		out = p
	})
	return out, err
}

func (u *preferenceUC) SetTafsirSource(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (*model.ChatPreference, error) {
	defer logging.TraceDuration(u.log, "PreferenceUC.SetTafsirSource")()

	if !model.IsSupportedTafsirSource(code) {
		return nil, domain.ErrInvalidArgument
	}
	var out *model.ChatPreference
	err := u.mutate(ctx, kind, chatID, displayName, func(p *model.ChatPreference) {
		p.TafsirSource = code
		out = p
	})
	return out, err
}

func (u *preferenceUC) ToggleDaily(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (bool, error) {
	defer logging.TraceDuration(u.log, "PreferenceUC.ToggleDaily")()

	var enabled bool
	err := u.mutate(ctx, kind, chatID, displayName, func(p *model.ChatPreference) {
		p.DailyEnabled = !p.DailyEnabled
		enabled = p.DailyEnabled
	})
	return enabled, err
}

func (u *preferenceUC) ListDailyEnabled(ctx context.Context, kind model.ChatKind) ([]model.ChatPreference, error) {
	return u.prefs.ListDailyEnabled(ctx, repository.NoTX, kind)
}

// mutate runs a serializable read-modify-write cycle: load the record (or
// defaults), apply fn, save the whole record back. Callers merge in memory;
// the storage layer always writes the full row.
func (u *preferenceUC) mutate(ctx context.Context, kind model.ChatKind, chatID int64, displayName string, fn func(p *model.ChatPreference)) error {
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	return u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.prefs.Find(ctx, tx, kind, chatID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			p = model.NewChatPreference(chatID, displayName)
		}
		if displayName != "" {
			p.DisplayName = displayName
		}
		fn(p)
		if err := u.prefs.Save(ctx, tx, kind, p); err != nil {
			u.log.Error().Err(err).Int64("chat_id", chatID).Str("kind", string(kind)).Msg("failed to save preference")
			return err
		}
		return nil
	})
}
