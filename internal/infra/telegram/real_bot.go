package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quran-daily-bot/internal/application"
	"quran-daily-bot/internal/config"
	"quran-daily-bot/internal/domain/model"
	"quran-daily-bot/internal/domain/ports/adapter"
	"quran-daily-bot/internal/infra/logging"
	"quran-daily-bot/internal/infra/metrics"
)

// RealBotAdapter implements adapter.TelegramBotAdapter using tgbotapi with
// concurrent polling. Inbound commands and callback selections are routed to
// the facade; outbound sends are used by the daily fan-out.
type RealBotAdapter struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.BotConfig
	facade *application.BotFacade
	log    *zerolog.Logger

	// updateWorkers is how many goroutines will concurrently process updates.
	updateWorkers int
	cancelPolling context.CancelFunc
}

var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

func NewRealBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, logger *zerolog.Logger) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	compLog := logger.With().Str("component", "TelegramBot").Logger()
	return &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		log:           &compLog,
		updateWorkers: workers,
	}, nil
}

// StartPolling begins polling Telegram for updates concurrently.
// It runs until ctx is canceled.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					if err := r.handleUpdate(ctx, update); err != nil {
						r.log.Error().Err(err).Int("worker", workerID).Msg("error handling update")
					}
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// Dispatcher goroutine: feed updates into updateChan
	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// --- outbound transport (adapter.TelegramBotAdapter) ---

func (r *RealBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) SendMarkdown(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		kbRows = append(kbRows, kbRow)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	_, err := r.bot.Send(edit)
	return err
}

func (r *RealBotAdapter) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	_, err := r.bot.Request(cb)
	return err
}

// --- inbound routing ---

func chatKindOf(chat *tgbotapi.Chat) model.ChatKind {
	if chat.IsGroup() || chat.IsSuperGroup() {
		return model.KindGroup
	}
	return model.KindPrivate
}

func displayNameOf(msg *tgbotapi.Message) string {
	if msg.Chat.IsGroup() || msg.Chat.IsSuperGroup() {
		return msg.Chat.Title
	}
	if msg.From != nil {
		return msg.From.UserName
	}
	return ""
}

// callbackNameOf resolves the display name for a keyboard selection. The
// keyboard message itself was authored by the bot, so its From field is the
// bot; the selecting user is query.From.
func callbackNameOf(query *tgbotapi.CallbackQuery) string {
	if query.Message != nil && (query.Message.Chat.IsGroup() || query.Message.Chat.IsSuperGroup()) {
		return query.Message.Chat.Title
	}
	if query.From != nil {
		return query.From.UserName
	}
	return ""
}

func (r *RealBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message != nil {
			ctx = logging.WithChatID(ctx, update.CallbackQuery.Message.Chat.ID)
		}
		return r.handleCallback(ctx, update.CallbackQuery)
	}
	if update.Message == nil || !update.Message.IsCommand() {
		return nil
	}
	ctx = logging.WithChatID(ctx, update.Message.Chat.ID)
	return r.handleCommand(ctx, update.Message)
}

func (r *RealBotAdapter) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	kind := chatKindOf(msg.Chat)
	name := displayNameOf(msg)
	cmd := msg.Command()
	metrics.IncCommand(cmd)

	switch cmd {
	case "start":
		text, err := r.facade.HandleStart(ctx, kind, chatID, name)
		if err != nil {
			return r.replyError(ctx, chatID, err)
		}
		return r.SendMarkdown(ctx, chatID, text)
	case "random":
		text, err := r.facade.HandleRandom(ctx, kind, chatID)
		if err != nil {
			return r.replyError(ctx, chatID, err)
		}
		return r.SendMarkdown(ctx, chatID, text)
	case "settings":
		text, err := r.facade.HandleSettings(ctx, kind, chatID)
		if err != nil {
			return r.replyError(ctx, chatID, err)
		}
		return r.SendMarkdown(ctx, chatID, text)
	case "language":
		text, rows := r.facade.LanguageKeyboard()
		return r.SendButtons(ctx, chatID, text, rows)
	case "tafsir":
		text, rows := r.facade.TafsirKeyboard()
		return r.SendButtons(ctx, chatID, text, rows)
	case "daily":
		text, err := r.facade.HandleToggleDaily(ctx, kind, chatID, name)
		if err != nil {
			return r.replyError(ctx, chatID, err)
		}
		return r.SendMarkdown(ctx, chatID, text)
	case "help":
		return r.SendMarkdown(ctx, chatID, r.facade.HandleHelp())
	default:
		return r.SendMessage(ctx, chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (r *RealBotAdapter) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	kind := chatKindOf(query.Message.Chat)
	name := callbackNameOf(query)
	data := query.Data

	var ack, edited string
	var err error
	switch {
	case strings.HasPrefix(data, "lang_"):
		metrics.IncCommand("lang_select")
		ack, edited, err = r.facade.ApplyLanguage(ctx, kind, chatID, name, strings.TrimPrefix(data, "lang_"))
	case strings.HasPrefix(data, "tafsir_"):
		metrics.IncCommand("tafsir_select")
		ack, edited, err = r.facade.ApplyTafsir(ctx, kind, chatID, name, strings.TrimPrefix(data, "tafsir_"))
	default:
		return r.AnswerCallback(ctx, query.ID, "")
	}
	if err != nil {
		_ = r.AnswerCallback(ctx, query.ID, application.ErrReply)
		return err
	}
	if err := r.AnswerCallback(ctx, query.ID, ack); err != nil {
		r.log.Warn().Err(err).Int64("chat_id", chatID).Msg("answer callback failed")
	}
	return r.EditMessageText(ctx, chatID, query.Message.MessageID, edited)
}

func (r *RealBotAdapter) replyError(ctx context.Context, chatID int64, err error) error {
	logging.With(ctx, r.log).Error().Err(err).Msg("command failed")
	return r.SendMessage(ctx, chatID, application.ErrReply)
}
