package model

import "time"

// DeliveryRecord is one row of the append-only delivery ledger: which verse
// went to which chat on which calendar day. Duplicate (chat, verse, day)
// inserts are ignored by the repository.
type DeliveryRecord struct {
	ID       string
	ChatID   int64
	VerseKey string
	SentDate time.Time
}
