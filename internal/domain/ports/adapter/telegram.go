package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
}

// TelegramBotAdapter is the outbound transport surface the core calls into.
// The concrete adapter wraps tgbotapi; tests use an in-memory fake.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	// SendMarkdown sends with Markdown parse mode and the link preview disabled.
	SendMarkdown(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}
