package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
	"quran-daily-bot/internal/usecase"
)

// ErrReply is the generic apology sent when an on-demand command fails.
const ErrReply = "Sorry, an error occurred. Please try again later."

const welcomeMessage = `🕌 *As-salamu alaykum!*

Welcome to the Daily Quran Bot! 📖

*Available Commands:*
• /random - Get a random verse
• /settings - Configure your preferences
• /language - Change translation language
• /tafsir - Change tafsir source
• /daily - Toggle daily verses
• /help - Show this help message

*Features:*
✅ Daily Quran verses with translation
✅ Multiple languages supported
✅ Various tafsir sources available
✅ Works in groups and private chats
✅ Customizable preferences

May Allah bless you! 🤲`

const helpMessage = `🤖 *Quran Daily Bot Help*

*Commands:*
• /start - Initialize the bot
• /random - Get a random Quran verse
• /settings - View current settings
• /language - Change translation language
• /tafsir - Change tafsir commentary source
• /daily - Toggle daily verse notifications
• /help - Show this help message

*Languages Supported:*
English, Arabic, Spanish, French, German, Turkish, Urdu, Persian, Russian, Indonesian, Bengali, Hindi

May Allah guide us all! 🤲`

// BotFacade composes usecases into high-level bot commands. Methods return
// the reply text (plus keyboards where relevant) so the Telegram adapter
// just forwards them to the chat.
type BotFacade struct {
	Prefs   usecase.PreferenceUseCase
	Content usecase.ContentUseCase
	log     *zerolog.Logger
}

func NewBotFacade(prefs usecase.PreferenceUseCase, content usecase.ContentUseCase, logger *zerolog.Logger) *BotFacade {
	compLog := logger.With().Str("component", "BotFacade").Logger()
	return &BotFacade{Prefs: prefs, Content: content, log: &compLog}
}

// HandleStart initializes the chat's preference record with defaults and
// returns the welcome text.
func (b *BotFacade) HandleStart(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (string, error) {
	if _, err := b.Prefs.EnsureDefaults(ctx, kind, chatID, displayName); err != nil {
		return "", fmt.Errorf("init preferences: %w", err)
	}
	return welcomeMessage, nil
}

// HandleRandom assembles one verse message per the chat's preferences.
func (b *BotFacade) HandleRandom(ctx context.Context, kind model.ChatKind, chatID int64) (string, error) {
	pref, err := b.Prefs.Get(ctx, kind, chatID)
	if err != nil {
		return "", fmt.Errorf("read preferences: %w", err)
	}
	text, _, err := b.Content.BuildMessage(ctx, pref)
	if err != nil {
		return "", fmt.Errorf("assemble verse: %w", err)
	}
	return text, nil
}

// HandleSettings renders the chat's current configuration.
func (b *BotFacade) HandleSettings(ctx context.Context, kind model.ChatKind, chatID int64) (string, error) {
	pref, err := b.Prefs.Get(ctx, kind, chatID)
	if err != nil {
		return "", fmt.Errorf("read preferences: %w", err)
	}
	daily := "Disabled"
	if pref.DailyEnabled {
		daily = "Enabled"
	}
	return fmt.Sprintf(`⚙️ *Current Settings:*

📚 *Language:* %s
📖 *Tafsir Source:* %s
🔔 *Daily Verses:* %s

*Commands to change settings:*
• /language - Change translation language
• /tafsir - Change tafsir source
• /daily - Toggle daily verses`,
		model.LanguageName(pref.Language), model.TafsirSourceName(pref.TafsirSource), daily), nil
}

// LanguageKeyboard returns the picker prompt and one button row per language.
func (b *BotFacade) LanguageKeyboard() (string, [][]adapter.InlineButton) {
	rows := make([][]adapter.InlineButton, 0, len(model.LanguageCodes))
	for _, code := range model.LanguageCodes {
		rows = append(rows, []adapter.InlineButton{{Text: model.Languages[code], Data: "lang_" + code}})
	}
	return "🌍 *Choose your preferred language:*", rows
}

// TafsirKeyboard returns the picker prompt and one button row per source.
func (b *BotFacade) TafsirKeyboard() (string, [][]adapter.InlineButton) {
	rows := make([][]adapter.InlineButton, 0, len(model.TafsirSourceCodes))
	for _, code := range model.TafsirSourceCodes {
		rows = append(rows, []adapter.InlineButton{{Text: model.TafsirSources[code], Data: "tafsir_" + code}})
	}
	return "📚 *Choose your preferred tafsir source:*", rows
}

// HandleToggleDaily flips the daily switch and reports the new state.
func (b *BotFacade) HandleToggleDaily(ctx context.Context, kind model.ChatKind, chatID int64, displayName string) (string, error) {
	enabled, err := b.Prefs.ToggleDaily(ctx, kind, chatID, displayName)
	if err != nil {
		return "", fmt.Errorf("toggle daily: %w", err)
	}
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	return fmt.Sprintf("🔔 Daily verses have been *%s*!", status), nil
}

func (b *BotFacade) HandleHelp() string {
	return helpMessage
}

// ApplyLanguage persists a language selection. It returns the callback
// acknowledgement and the text the picker message should be edited to.
func (b *BotFacade) ApplyLanguage(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (ack string, edited string, err error) {
	if _, err := b.Prefs.SetLanguage(ctx, kind, chatID, displayName, code); err != nil {
		return "", "", fmt.Errorf("set language: %w", err)
	}
	name := model.LanguageName(code)
	return "Language changed to " + name, fmt.Sprintf("✅ Language updated to *%s*", name), nil
}

// ApplyTafsir persists a tafsir source selection, same contract as ApplyLanguage.
func (b *BotFacade) ApplyTafsir(ctx context.Context, kind model.ChatKind, chatID int64, displayName, code string) (ack string, edited string, err error) {
	if _, err := b.Prefs.SetTafsirSource(ctx, kind, chatID, displayName, code); err != nil {
		return "", "", fmt.Errorf("set tafsir source: %w", err)
	}
	name := model.TafsirSourceName(code)
	return "Tafsir source changed to " + name, fmt.Sprintf("✅ Tafsir source updated to *%s*", name), nil
}
