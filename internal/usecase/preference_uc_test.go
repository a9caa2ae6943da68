package usecase_test

import (
	"context"
	"errors"
	"testing"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/usecase"
)

func TestPreferenceUseCase_Get(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("unknown chat returns defaults without creating a record", func(t *testing.T) {
		// --- Arrange ---
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		// --- Act ---
		pref, err := uc.Get(ctx, model.KindPrivate, 42)

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pref.Language != model.DefaultLanguage {
			t.Errorf("expected default language %q, got %q", model.DefaultLanguage, pref.Language)
		}
		if pref.TafsirSource != model.DefaultTafsirSource {
			t.Errorf("expected default tafsir %q, got %q", model.DefaultTafsirSource, pref.TafsirSource)
		}
		if !pref.DailyEnabled {
			t.Error("expected daily enabled by default")
		}
		if pref.Timezone != model.DefaultTimezone {
			t.Errorf("expected default timezone, got %q", pref.Timezone)
		}
		if repo.count(model.KindPrivate) != 0 {
			t.Error("Get must not persist a record")
		}
	})

	t.Run("storage failure is propagated", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		repo.findErr = errors.New("connection refused")
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		if _, err := uc.Get(ctx, model.KindPrivate, 42); err == nil {
			t.Fatal("expected error on storage failure")
		}
	})

	t.Run("groups and private chats are disjoint namespaces", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		if _, err := uc.SetLanguage(ctx, model.KindGroup, 42, "my group", "ar"); err != nil {
			t.Fatalf("set group language: %v", err)
		}

		// Same id on the private side must still see defaults.
		pref, err := uc.Get(ctx, model.KindPrivate, 42)
		if err != nil {
			t.Fatalf("get private: %v", err)
		}
		if pref.Language != "en" {
			t.Errorf("private namespace leaked group write: language %q", pref.Language)
		}
	})
}

func TestPreferenceUseCase_EnsureDefaults(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("creates record with defaults and round-trips every field", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		created, err := uc.EnsureDefaults(ctx, model.KindPrivate, 7, "alice")
		if err != nil {
			t.Fatalf("ensure defaults: %v", err)
		}
		if repo.count(model.KindPrivate) != 1 {
			t.Fatal("expected one persisted record")
		}

		got, err := uc.Get(ctx, model.KindPrivate, 7)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if *got != *created {
			t.Errorf("round-trip mismatch: saved %+v, loaded %+v", created, got)
		}
		if got.DisplayName != "alice" {
			t.Errorf("expected display name persisted, got %q", got.DisplayName)
		}
	})

	t.Run("keeps existing settings on repeated start", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		if _, err := uc.SetLanguage(ctx, model.KindPrivate, 7, "alice", "fr"); err != nil {
			t.Fatalf("set language: %v", err)
		}
		if _, err := uc.EnsureDefaults(ctx, model.KindPrivate, 7, "alice"); err != nil {
			t.Fatalf("ensure defaults: %v", err)
		}

		got, _ := uc.Get(ctx, model.KindPrivate, 7)
		if got.Language != "fr" {
			t.Errorf("repeated start reset language to %q", got.Language)
		}
	})
}

func TestPreferenceUseCase_SetLanguage(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("overwrites only the language, keeps the rest", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		if _, err := uc.SetTafsirSource(ctx, model.KindPrivate, 9, "bob", "ar.qurtubi"); err != nil {
			t.Fatalf("set tafsir: %v", err)
		}
		if _, err := uc.SetLanguage(ctx, model.KindPrivate, 9, "bob", "ar"); err != nil {
			t.Fatalf("set language: %v", err)
		}

		got, _ := uc.Get(ctx, model.KindPrivate, 9)
		if got.Language != "ar" {
			t.Errorf("expected language ar, got %q", got.Language)
		}
		if got.TafsirSource != "ar.qurtubi" {
			t.Errorf("language write clobbered tafsir: %q", got.TafsirSource)
		}
	})

	t.Run("is idempotent under re-application", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		first, err := uc.SetLanguage(ctx, model.KindPrivate, 9, "bob", "tr")
		if err != nil {
			t.Fatalf("first set: %v", err)
		}
		second, err := uc.SetLanguage(ctx, model.KindPrivate, 9, "bob", "tr")
		if err != nil {
			t.Fatalf("second set: %v", err)
		}
		if *first != *second {
			t.Errorf("re-application changed state: %+v vs %+v", first, second)
		}
	})

	t.Run("rejects unsupported codes", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		if _, err := uc.SetLanguage(ctx, model.KindPrivate, 9, "bob", "xx"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestPreferenceUseCase_ToggleDaily(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("two toggles return to the original state", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		// Default is enabled; first toggle disables.
		enabled, err := uc.ToggleDaily(ctx, model.KindPrivate, 5, "carol")
		if err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		if enabled {
			t.Error("expected first toggle to disable daily delivery")
		}

		enabled, err = uc.ToggleDaily(ctx, model.KindPrivate, 5, "carol")
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}
		if !enabled {
			t.Error("expected second toggle to re-enable daily delivery")
		}

		got, _ := uc.Get(ctx, model.KindPrivate, 5)
		if !got.DailyEnabled {
			t.Error("persisted state should be enabled after two toggles")
		}
	})
}

func TestPreferenceUseCase_ListDailyEnabled(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("excludes disabled chats in the load itself", func(t *testing.T) {
		repo := newMemPreferenceRepo()
		uc := usecase.NewPreferenceUseCase(repo, fakeTxManager{}, testLogger)

		for id := int64(1); id <= 3; id++ {
			if _, err := uc.EnsureDefaults(ctx, model.KindPrivate, id, ""); err != nil {
				t.Fatalf("ensure defaults %d: %v", id, err)
			}
		}
		if _, err := uc.ToggleDaily(ctx, model.KindPrivate, 2, ""); err != nil {
			t.Fatalf("toggle: %v", err)
		}

		chats, err := uc.ListDailyEnabled(ctx, model.KindPrivate)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(chats) != 2 {
			t.Fatalf("expected 2 enabled chats, got %d", len(chats))
		}
		for _, c := range chats {
			if c.ChatID == 2 {
				t.Error("disabled chat 2 must not appear in the load set")
			}
		}
	})
}
