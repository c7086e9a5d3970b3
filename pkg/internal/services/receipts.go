package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

type receiptKey struct {
	workspace string
	user      string
	channel   string
}

// ReceiptTracker owns the read watermarks of one viewer session. Each
// (workspace, user, channel) triple holds a single watermark that only ever
// advances; unread status is always derived from it, never stored.
//
// Local reads apply immediately; the matching server writes accumulate in a
// queue that keeps only the furthest write per triple, so a later mark-read
// can never be overwritten by a slower, earlier one still in flight.
type ReceiptTracker struct {
	mu      sync.Mutex
	anchors map[receiptKey]models.ReadReceipt
	queue   map[receiptKey]models.ReadReceipt
}

func NewReceiptTracker() *ReceiptTracker {
	return &ReceiptTracker{
		anchors: make(map[receiptKey]models.ReadReceipt),
		queue:   make(map[receiptKey]models.ReadReceipt),
	}
}

func (t *ReceiptTracker) Watermark(workspaceID string, userID string, channelID string) (models.ReadReceipt, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	anchor, ok := t.anchors[receiptKey{workspaceID, userID, channelID}]
	return anchor, ok
}

// MarkRead advances the watermark and queues the server write. It is a
// no-op unless the timestamp is strictly after the stored one. Returns
// whether the watermark moved.
func (t *ReceiptTracker) MarkRead(workspaceID string, userID string, channelID string, messageID string, at models.Timestamp) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := receiptKey{workspaceID, userID, channelID}
	if anchor, ok := t.anchors[key]; ok && !at.After(anchor.LastReadAt.Time) {
		return false
	}

	receipt := models.ReadReceipt{
		WorkspaceID:       workspaceID,
		UserID:            userID,
		ChannelID:         channelID,
		LastReadMessageID: messageID,
		LastReadAt:        at,
	}
	t.anchors[key] = receipt
	t.enqueueLocked(key, receipt)
	return true
}

// Apply reconciles a server-confirmed receipt. Last write wins by
// timestamp: the local watermark never regresses to an older confirmation.
func (t *ReceiptTracker) Apply(receipt models.ReadReceipt) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := receiptKey{receipt.WorkspaceID, receipt.UserID, receipt.ChannelID}
	if anchor, ok := t.anchors[key]; ok && !receipt.LastReadAt.After(anchor.LastReadAt.Time) {
		return
	}
	t.anchors[key] = receipt
}

// UnreadStatus reports whether the message counts as unread for the viewer:
// not authored by them, and newer than the watermark (or no watermark yet).
func (t *ReceiptTracker) UnreadStatus(message models.Message, viewerID string) bool {
	if message.UserID == viewerID || message.IsPending {
		return false
	}
	anchor, ok := t.Watermark(message.WorkspaceID, viewerID, message.ChannelID)
	if !ok {
		return true
	}
	return message.CreatedAt.After(anchor.LastReadAt.Time)
}

func (t *ReceiptTracker) UnreadCount(timeline []models.Message, viewerID string) int {
	count := 0
	for _, message := range timeline {
		if t.UnreadStatus(message, viewerID) {
			count++
		}
	}
	return count
}

// FirstUnreadID walks the unfiltered chronological timeline and returns the
// first unread message, independent of any view filter.
func (t *ReceiptTracker) FirstUnreadID(timeline []models.Message, viewerID string) (string, bool) {
	for _, message := range timeline {
		if t.UnreadStatus(message, viewerID) {
			return message.ID, true
		}
	}
	return "", false
}

// Flush drains the queued watermark writes. A failed write stays local and
// is retried on the next run; read state is allowed to run ahead of the
// server, so failures are silent apart from the log.
func (t *ReceiptTracker) Flush(gateway Gateway) {
	t.mu.Lock()
	pending := t.queue
	t.queue = make(map[receiptKey]models.ReadReceipt)
	t.mu.Unlock()

	for key, receipt := range pending {
		confirmed, err := gateway.SaveReadReceipt(receipt)
		if err != nil {
			log.Warn().Err(err).
				Str("channel", key.channel).
				Msg("An error occurred when flushing read receipt...")
			t.mu.Lock()
			t.enqueueLocked(key, receipt)
			t.mu.Unlock()
			continue
		}
		t.Apply(confirmed)
	}
}

func (t *ReceiptTracker) enqueueLocked(key receiptKey, receipt models.ReadReceipt) {
	if queued, ok := t.queue[key]; ok && !receipt.LastReadAt.After(queued.LastReadAt.Time) {
		return
	}
	t.queue[key] = receipt
}
