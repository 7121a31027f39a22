package repository

import (
	"context"

	"gorm.io/gorm"

	"campusbarter/internal/model"
)

// MessageRepository defines message persistence operations. The three
// query shapes mirror the conversation feature: everything between two
// users, the same scoped to one listing, and everything touching one
// user.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	Update(ctx context.Context, msg *model.Message) error
	FindBetweenUsers(ctx context.Context, user1, user2 string) ([]model.Message, error)
	FindBetweenUsersForItem(ctx context.Context, itemID, user1, user2 string) ([]model.Message, error)
	FindByUser(ctx context.Context, username string) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) Update(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *messageRepository) FindBetweenUsers(ctx context.Context, user1, user2 string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)", user1, user2, user2, user1).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) FindBetweenUsersForItem(ctx context.Context, itemID, user1, user2 string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)", user1, user2, user2, user1).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) FindByUser(ctx context.Context, username string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("sender = ? OR receiver = ?", username, username).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
