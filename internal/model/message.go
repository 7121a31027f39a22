package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users, optionally tied to a
// listing. ItemTitle is a snapshot of the listing title at send time.
// Messages are never edited or deleted; only Read flips false -> true.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Sender    string    `json:"sender" gorm:"size:255;not null;index"`
	Receiver  string    `json:"receiver" gorm:"size:255;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ItemID    string    `json:"itemId" gorm:"size:36;index"`
	ItemTitle string    `json:"itemTitle" gorm:"size:255"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Read      bool      `json:"read" gorm:"default:false"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ConversationSummary is derived per conversation partner and never
// persisted; it is recomputed on every request.
type ConversationSummary struct {
	OtherUser   string    `json:"otherUser"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
	ItemID      string    `json:"itemId"`
	ItemTitle   string    `json:"itemTitle"`
	UnreadCount int64     `json:"unreadCount"`
}
