package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// ViewBinding identifies the channel a view is attached to and who is
// looking at it. An empty ChannelID selects the direct-message context.
type ViewBinding struct {
	WorkspaceID string
	ChannelID   string
	UserID      string
	UserName    string
}

func (b ViewBinding) check() error {
	if len(b.WorkspaceID) == 0 {
		return &ConfigurationError{Field: "workspace"}
	}
	if len(b.UserID) == 0 {
		return &ConfigurationError{Field: "user"}
	}
	return nil
}

// ChannelView owns all mutable state of one channel's timeline: the fetched
// history, the optimistic outbox and the pushed events, plus the viewer's
// read watermarks. Every channel switch constructs a fresh instance; there
// is no ambient shared state between views.
//
// The merged timeline is rebuilt from the three inputs on demand rather
// than patched in place by independent writers.
type ChannelView struct {
	mu      sync.Mutex
	binding ViewBinding
	gateway Gateway
	bridge  Bridge

	receipts *ReceiptTracker

	base   []models.Message
	outbox []models.Message
	pushed []models.Message

	unsubscribe  func()
	closed       bool
	lastAutoRead string
}

func NewChannelView(binding ViewBinding, gateway Gateway, bridge Bridge) *ChannelView {
	return &ChannelView{
		binding:  binding,
		gateway:  gateway,
		bridge:   bridge,
		receipts: NewReceiptTracker(),
	}
}

// Open fetches the base timeline, applies the stored watermark and attaches
// the realtime subscription.
func (v *ChannelView) Open() error {
	if err := v.binding.check(); err != nil {
		return err
	}

	history, err := v.gateway.ListMessages(models.MessageQuery{
		WorkspaceID: v.binding.WorkspaceID,
		UserID:      v.binding.UserID,
		ChannelID:   v.binding.ChannelID,
	})
	if err != nil {
		return &NetworkError{Op: "fetch messages", Err: err}
	}

	v.mu.Lock()
	v.base = history.Messages
	v.mu.Unlock()

	if history.ReadReceipt != nil {
		v.receipts.Apply(*history.ReadReceipt)
	}

	if v.bridge != nil {
		unsubscribe, err := v.bridge.Subscribe(v.binding.ChannelID, v.acceptPushed)
		if err != nil {
			log.Warn().Err(err).
				Str("channel", v.binding.ChannelID).
				Msg("An error occurred when subscribing to channel events...")
		} else {
			v.unsubscribe = unsubscribe
		}
	}

	v.mu.Lock()
	v.maybeAutoReadLocked()
	v.mu.Unlock()

	return nil
}

// Close tears down the channel-scoped subscription and state. An in-flight
// send is not cancelled; its confirmation is discarded when it lands here.
func (v *ChannelView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.closed = true
	v.base = nil
	v.outbox = nil
	v.pushed = nil
}

// Timeline rebuilds the merged, deduplicated, chronological view.
func (v *ChannelView) Timeline() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return MergeTimeline(v.base, v.outbox, v.pushed)
}

func (v *ChannelView) UnreadCount() int {
	return v.receipts.UnreadCount(v.Timeline(), v.binding.UserID)
}

func (v *ChannelView) FirstUnreadID() (string, bool) {
	return v.receipts.FirstUnreadID(v.Timeline(), v.binding.UserID)
}

func (v *ChannelView) Receipts() *ReceiptTracker {
	return v.receipts
}

// FlushReceipts pushes the queued watermark writes to the backend. Wired to
// a cron entry by the caller; safe to invoke at any time.
func (v *ChannelView) FlushReceipts() {
	v.receipts.Flush(v.gateway)
}

// MarkRead advances the watermark to the given message, local-first. The
// unread count reaches zero before the server round-trip completes.
func (v *ChannelView) MarkRead(messageID string, at models.Timestamp) bool {
	return v.receipts.MarkRead(v.binding.WorkspaceID, v.binding.UserID, v.binding.ChannelID, messageID, at)
}

// acceptPushed takes an at-least-once event from the bridge. Duplicates of
// already known messages dissolve in the merge.
func (v *ChannelView) acceptPushed(message models.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.pushed = append(v.pushed, message)
	v.maybeAutoReadLocked()
}

func (v *ChannelView) findMessageLocked(id string) (models.Message, bool) {
	for _, group := range [][]models.Message{v.base, v.outbox, v.pushed} {
		for _, message := range group {
			if message.ID == id {
				return message, true
			}
		}
	}
	return models.Message{}, false
}

// maybeAutoReadLocked fires MarkRead when the latest timeline entry changed
// to a confirmed message newer than the watermark: exactly once per such
// transition, guarded by the last handled id.
func (v *ChannelView) maybeAutoReadLocked() {
	timeline := MergeTimeline(v.base, v.outbox, v.pushed)
	if len(timeline) == 0 {
		return
	}

	latest := timeline[len(timeline)-1]
	if latest.IsPending || latest.ID == v.lastAutoRead {
		return
	}
	if anchor, ok := v.receipts.Watermark(v.binding.WorkspaceID, v.binding.UserID, v.binding.ChannelID); ok {
		if !latest.CreatedAt.After(anchor.LastReadAt.Time) {
			return
		}
	}

	v.lastAutoRead = latest.ID
	v.receipts.MarkRead(v.binding.WorkspaceID, v.binding.UserID, v.binding.ChannelID, latest.ID, latest.CreatedAt)
}
