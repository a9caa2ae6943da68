package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
	"quran-daily-bot/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memPreferenceRepo is a small in-memory implementation used by unit tests.
type memPreferenceRepo struct {
	mu      sync.RWMutex
	store   map[model.ChatKind]map[int64]*model.ChatPreference
	findErr error // simulate storage failures
	saveErr error
	listErr error
}

func newMemPreferenceRepo() *memPreferenceRepo {
	return &memPreferenceRepo{store: map[model.ChatKind]map[int64]*model.ChatPreference{
		model.KindPrivate: {},
		model.KindGroup:   {},
	}}
}

func (m *memPreferenceRepo) Find(ctx context.Context, tx repository.Tx, kind model.ChatKind, chatID int64) (*model.ChatPreference, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[kind][chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPreferenceRepo) Save(ctx context.Context, tx repository.Tx, kind model.ChatKind, pref *model.ChatPreference) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pref
	m.store[kind][pref.ChatID] = &cp
	return nil
}

func (m *memPreferenceRepo) ListDailyEnabled(ctx context.Context, tx repository.Tx, kind model.ChatKind) ([]model.ChatPreference, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.ChatPreference
	for _, p := range m.store[kind] {
		if p.DailyEnabled {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPreferenceRepo) count(kind model.ChatKind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store[kind])
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// memDeliveryLog keeps ledger rows keyed by (chat, verse, day).
type memDeliveryLog struct {
	mu        sync.Mutex
	records   map[string]model.DeliveryRecord
	recordErr error
}

func newMemDeliveryLog() *memDeliveryLog {
	return &memDeliveryLog{records: make(map[string]model.DeliveryRecord)}
}

func deliveryKey(chatID int64, verseKey string, sentDate time.Time) string {
	return fmt.Sprintf("%d|%s|%s", chatID, verseKey, sentDate.Format("2006-01-02"))
}

func (m *memDeliveryLog) Record(ctx context.Context, tx repository.Tx, chatID int64, verseKey string, sentDate time.Time) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := deliveryKey(chatID, verseKey, sentDate)
	if _, exists := m.records[key]; exists {
		return nil // duplicate insert is a no-op
	}
	m.records[key] = model.DeliveryRecord{ChatID: chatID, VerseKey: verseKey, SentDate: sentDate}
	return nil
}

func (m *memDeliveryLog) ListByChat(ctx context.Context, tx repository.Tx, chatID int64, from, to time.Time) ([]model.DeliveryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DeliveryRecord
	for _, rec := range m.records {
		if rec.ChatID == chatID && !rec.SentDate.Before(from) && !rec.SentDate.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memDeliveryLog) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// mockContentProvider lets each test script provider responses.
type mockContentProvider struct {
	VerseByKeyFunc  func(ctx context.Context, verseKey string) (*model.Verse, error)
	TranslationFunc func(ctx context.Context, editionID int, verseKey string) (*model.Translation, error)
	TafsirFunc      func(ctx context.Context, editionID int, verseKey string) (*model.Tafsir, error)
}

func (m *mockContentProvider) VerseByKey(ctx context.Context, verseKey string) (*model.Verse, error) {
	if m.VerseByKeyFunc != nil {
		return m.VerseByKeyFunc(ctx, verseKey)
	}
	return &model.Verse{
		VerseKey:          verseKey,
		VerseNumber:       1,
		TextUthmani:       "بِسْمِ اللَّهِ",
		ChapterNameArabic: "الفاتحة",
		ChapterNameSimple: "Al-Fatihah",
	}, nil
}

func (m *mockContentProvider) Translation(ctx context.Context, editionID int, verseKey string) (*model.Translation, error) {
	if m.TranslationFunc != nil {
		return m.TranslationFunc(ctx, editionID, verseKey)
	}
	return &model.Translation{Text: "In the name of Allah"}, nil
}

func (m *mockContentProvider) Tafsir(ctx context.Context, editionID int, verseKey string) (*model.Tafsir, error) {
	if m.TafsirFunc != nil {
		return m.TafsirFunc(ctx, editionID, verseKey)
	}
	return &model.Tafsir{Text: "Commentary text"}, nil
}

type sentMessage struct {
	ChatID int64
	Text   string
}

// mockBot records outbound sends and can fail per chat id.
type mockBot struct {
	mu      sync.Mutex
	Sent    []sentMessage
	FailFor map[int64]error
}

var _ adapter.TelegramBotAdapter = (*mockBot)(nil)

func (m *mockBot) send(chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailFor[chatID]; ok {
		return err
	}
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return m.send(chatID, text)
}

func (m *mockBot) SendMarkdown(ctx context.Context, chatID int64, text string) error {
	return m.send(chatID, text)
}

func (m *mockBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	return m.send(chatID, text)
}

func (m *mockBot) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	return m.send(chatID, text)
}

func (m *mockBot) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	return nil
}

func (m *mockBot) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
