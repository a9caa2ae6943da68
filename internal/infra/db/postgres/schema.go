package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Both preference tables share a shape; chats and groups are disjoint
// namespaces so they stay separate even when Telegram ids collide.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS chat_preferences (
    chat_id       BIGINT PRIMARY KEY,
    display_name  TEXT NOT NULL DEFAULT '',
    language      TEXT NOT NULL DEFAULT 'en',
    tafsir_source TEXT NOT NULL DEFAULT 'en.sahih',
    daily_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    timezone      TEXT NOT NULL DEFAULT 'UTC'
)`,
	`CREATE TABLE IF NOT EXISTS group_preferences (
    chat_id       BIGINT PRIMARY KEY,
    display_name  TEXT NOT NULL DEFAULT '',
    language      TEXT NOT NULL DEFAULT 'en',
    tafsir_source TEXT NOT NULL DEFAULT 'en.sahih',
    daily_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    timezone      TEXT NOT NULL DEFAULT 'UTC'
)`,
	`CREATE TABLE IF NOT EXISTS delivery_log (
    id        TEXT PRIMARY KEY,
    chat_id   BIGINT NOT NULL,
    verse_key TEXT NOT NULL,
    sent_date DATE NOT NULL,
    UNIQUE (chat_id, verse_key, sent_date)
)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
