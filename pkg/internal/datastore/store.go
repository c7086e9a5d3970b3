package datastore

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// S is the backing store of the reference backend. The original system
// keeps everything in memory; durability is explicitly not a goal here.
var S *Store

func NewStore() error {
	S = &Store{
		messages:  make(map[string][]models.Message),
		receipts:  make(map[string]models.ReadReceipt),
		reactions: make(map[string][]models.Reaction),
		channels:  make(map[string]string),
	}
	return nil
}

type Store struct {
	mu        sync.Mutex
	messages  map[string][]models.Message  // workspace/channel -> chronological history
	receipts  map[string]models.ReadReceipt
	reactions map[string][]models.Reaction // message id -> raw rows
	channels  map[string]string            // message id -> workspace/channel
}

func channelKey(workspaceID string, channelID string) string {
	return workspaceID + "/" + channelID
}

func receiptKey(workspaceID string, userID string, channelID string) string {
	return workspaceID + "/" + userID + "/" + channelID
}

func (s *Store) ListMessages(workspaceID string, channelID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.messages[channelKey(workspaceID, channelID)]
	out := make([]models.Message, len(history))
	copy(out, history)
	return out
}

func (s *Store) GetMessage(id string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.channels[id]
	if !ok {
		return models.Message{}, false
	}
	for _, message := range s.messages[key] {
		if message.ID == id {
			return message, true
		}
	}
	return models.Message{}, false
}

func (s *Store) AppendMessage(message models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := channelKey(message.WorkspaceID, message.ChannelID)
	history := append(s.messages[key], message)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt.Time)
	})
	s.messages[key] = history
	s.channels[message.ID] = key
}

// SaveReceipt keeps the furthest watermark per triple and returns the
// authoritative record, so a slow earlier write can never win.
func (s *Store) SaveReceipt(receipt models.ReadReceipt) models.ReadReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := receiptKey(receipt.WorkspaceID, receipt.UserID, receipt.ChannelID)
	if stored, ok := s.receipts[key]; ok && !receipt.LastReadAt.After(stored.LastReadAt.Time) {
		return stored
	}
	s.receipts[key] = receipt
	return receipt
}

func (s *Store) GetReceipt(workspaceID string, userID string, channelID string) (models.ReadReceipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, ok := s.receipts[receiptKey(workspaceID, userID, channelID)]
	return receipt, ok
}

// AddReaction stores the row unless the (user, emoji) pair is already
// present for the message.
func (s *Store) AddReaction(messageID string, row models.Reaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists := lo.ContainsBy(s.reactions[messageID], func(stored models.Reaction) bool {
		return stored.UserID == row.UserID && stored.Emoji == row.Emoji
	})
	if exists {
		return
	}
	s.reactions[messageID] = append(s.reactions[messageID], row)
}

// RemoveReaction deletes the row if present; removing a missing row is a
// no-op.
func (s *Store) RemoveReaction(messageID string, row models.Reaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reactions[messageID] = lo.Reject(s.reactions[messageID], func(stored models.Reaction, _ int) bool {
		return stored.UserID == row.UserID && stored.Emoji == row.Emoji
	})
}

func (s *Store) Reactions(messageID string) []models.Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.reactions[messageID]
	out := make([]models.Reaction, len(rows))
	copy(out, rows)
	return out
}
