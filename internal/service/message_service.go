package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "campusbarter/internal/errors"
	"campusbarter/internal/model"
	"campusbarter/internal/repository"
)

// MessageService handles direct messages and the derived conversation
// view.
type MessageService interface {
	ListBetween(ctx context.Context, user1, user2, itemID string) ([]model.Message, error)
	Send(ctx context.Context, msg *model.Message) (*model.Message, error)
	Conversations(ctx context.Context, username string) ([]model.ConversationSummary, error)
	MarkRead(ctx context.Context, receiver, sender string) error
}

type messageService struct {
	repo repository.MessageRepository
}

// NewMessageService creates a new message service.
func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// ListBetween returns all messages between two users in both directions,
// optionally scoped to one listing, ordered by timestamp ascending. The
// sort happens here so ordering never depends on store iteration order.
func (s *messageService) ListBetween(ctx context.Context, user1, user2, itemID string) ([]model.Message, error) {
	var msgs []model.Message
	var err error
	if itemID != "" {
		msgs, err = s.repo.FindBetweenUsersForItem(ctx, itemID, user1, user2)
	} else {
		msgs, err = s.repo.FindBetweenUsers(ctx, user1, user2)
	}
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}

// Send persists a new message, defaulting read to false and the
// timestamp to now when unset.
func (s *messageService) Send(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if strings.TrimSpace(msg.Sender) == "" || strings.TrimSpace(msg.Receiver) == "" || strings.TrimSpace(msg.Content) == "" {
		return nil, apperrors.ErrInvalidMessage
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, apperrors.ErrInvalidMessage
	}
	return msg, nil
}

// conversationGroup accumulates one partner's messages in a single pass:
// the latest message and the unread count always come from the same
// group members.
type conversationGroup struct {
	latest model.Message
	unread int64
}

// Conversations turns the user's flat message history into one summary
// per conversation partner, most recent first. A self-addressed message
// forms a degenerate conversation with the viewer as partner.
func (s *messageService) Conversations(ctx context.Context, username string) ([]model.ConversationSummary, error) {
	msgs, err := s.repo.FindByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load message history: %w", err)
	}

	groups := make(map[string]*conversationGroup)
	for _, msg := range msgs {
		partner := msg.Sender
		if msg.Sender == username {
			partner = msg.Receiver
		}

		g, ok := groups[partner]
		if !ok {
			g = &conversationGroup{latest: msg}
			groups[partner] = g
		} else if msg.Timestamp.After(g.latest.Timestamp) {
			g.latest = msg
		}
		if msg.Receiver == username && !msg.Read {
			g.unread++
		}
	}

	summaries := make([]model.ConversationSummary, 0, len(groups))
	for partner, g := range groups {
		summaries = append(summaries, model.ConversationSummary{
			OtherUser:   partner,
			LastMessage: g.latest.Content,
			Timestamp:   g.latest.Timestamp,
			ItemID:      g.latest.ItemID,
			ItemTitle:   g.latest.ItemTitle,
			UnreadCount: g.unread,
		})
	}

	// Most recent conversation first; equal timestamps break by partner
	// name so the ordering is deterministic.
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Timestamp.Equal(summaries[j].Timestamp) {
			return summaries[i].OtherUser < summaries[j].OtherUser
		}
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return summaries, nil
}

// MarkRead flips every unread message from sender to receiver to read.
// One read-many then N single-record writes; a crash mid-loop leaves a
// partially updated state that a re-run completes, so the operation is
// idempotent.
func (s *messageService) MarkRead(ctx context.Context, receiver, sender string) error {
	msgs, err := s.repo.FindBetweenUsers(ctx, receiver, sender)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	for i := range msgs {
		if msgs[i].Receiver == receiver && !msgs[i].Read {
			msgs[i].Read = true
			if err := s.repo.Update(ctx, &msgs[i]); err != nil {
				return fmt.Errorf("mark message read: %w", err)
			}
		}
	}
	return nil
}
