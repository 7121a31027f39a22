package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemType advises what kind of listing an item is. It is informational
// only and never validated server-side.
type ItemType string

const (
	ItemTypeOffer   ItemType = "offer"
	ItemTypeRequest ItemType = "request"
	ItemTypeLost    ItemType = "lost"
	ItemTypeFound   ItemType = "found"
	ItemTypeRide    ItemType = "ride"
	ItemTypeEvent   ItemType = "event"
)

// Item represents a barter listing. Owner is a display name only;
// OwnerUsername is the controlling identity and the one field that
// mutates after creation (via claim).
type Item struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Owner         string    `json:"owner" gorm:"size:255"`
	OwnerUsername string    `json:"ownerUsername" gorm:"size:255;index"`
	ContactEmail  string    `json:"contactEmail" gorm:"size:255"`
	ContactPhone  string    `json:"contactPhone" gorm:"size:50"`
	Description   string    `json:"description" gorm:"type:text"`
	Tags          []string  `json:"tags" gorm:"serializer:json;type:json"`
	Category      string    `json:"category" gorm:"size:100"` // Academic, Skills, Hardware, ...
	Type          ItemType  `json:"type" gorm:"size:20"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
