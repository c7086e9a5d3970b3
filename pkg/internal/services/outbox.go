package services

import (
	"strings"

	"github.com/samber/lo"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// SendMessage runs the optimistic send lifecycle: the pending record enters
// the outbox before the backend call starts, so every timeline rebuild on
// any goroutine sees the send instantly. On confirmation the temporary
// record is replaced wholesale by the authoritative one; on failure it is
// removed and the cause surfaces as a SendFailedError.
//
// Submitting identical content twice produces two distinct messages; only
// the mechanical temp-to-confirmed swap deduplicates, and only by id.
func (v *ChannelView) SendMessage(content string, attachments []models.Attachment) (models.Message, error) {
	if err := v.binding.check(); err != nil {
		return models.Message{}, err
	}

	content = strings.TrimSpace(content)
	if len(content) == 0 {
		if len(attachments) == 0 {
			return models.Message{}, ErrEmptyMessage
		}
		content = models.AttachmentOnlyPlaceholder
	}

	pending := models.Message{
		ID:          models.NewTempID(),
		WorkspaceID: v.binding.WorkspaceID,
		ChannelID:   v.binding.ChannelID,
		UserID:      v.binding.UserID,
		UserName:    v.binding.UserName,
		Content:     content,
		CreatedAt:   models.Now(),
		Reactions:   []models.ReactionAggregate{},
		IsPending:   true,
	}
	// Attachments ride inside the record, owned by the temp id until the
	// server renames them; a rollback therefore drops them atomically.
	pending.Attachments = lo.Map(attachments, func(attachment models.Attachment, _ int) models.Attachment {
		attachment.MessageID = pending.ID
		return attachment
	})

	v.mu.Lock()
	v.outbox = append(v.outbox, pending)
	v.mu.Unlock()

	confirmed, err := v.gateway.CreateMessage(models.MessageDraft{
		WorkspaceID: v.binding.WorkspaceID,
		ChannelID:   v.binding.ChannelID,
		UserID:      v.binding.UserID,
		UserName:    v.binding.UserName,
		Content:     content,
		Attachments: attachments,
	})
	if err != nil {
		v.dropPending(pending.ID)
		return models.Message{}, &SendFailedError{TempID: pending.ID, Err: err}
	}

	v.confirmPending(pending.ID, confirmed)
	return confirmed, nil
}

// confirmPending retires the temporary id in favor of the authoritative
// record. When the temp entry is gone (view reset meanwhile) the confirmed
// record is appended instead; when the view is closed it is discarded.
func (v *ChannelView) confirmPending(tempID string, confirmed models.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	_, index, found := lo.FindIndexOf(v.outbox, func(message models.Message) bool {
		return message.ID == tempID
	})
	if found {
		v.outbox[index] = confirmed
	} else {
		v.base = append(v.base, confirmed)
	}

	v.maybeAutoReadLocked()
}

func (v *ChannelView) dropPending(tempID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.outbox = lo.Reject(v.outbox, func(message models.Message, _ int) bool {
		return message.ID == tempID
	})
}
