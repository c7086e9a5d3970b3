package models

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix is reserved for client-issued identifiers. Server ids never
// carry it, so the confirmation swap can match records unambiguously.
const TempIDPrefix = "temp-"

// AttachmentOnlyPlaceholder fills the content field when a message carries
// attachments but no text.
const AttachmentOnlyPlaceholder = "(attachment)"

func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

type Message struct {
	ID              string              `json:"id"`
	WorkspaceID     string              `json:"workspace_id"`
	ChannelID       string              `json:"channel_id,omitempty"`
	UserID          string              `json:"user_id"`
	UserName        string              `json:"user_name"`
	Content         string              `json:"content"`
	CreatedAt       Timestamp           `json:"created_at"`
	ParentMessageID *string             `json:"parent_message_id,omitempty"`
	EditedAt        *Timestamp          `json:"edited_at,omitempty"`
	DeletedAt       *Timestamp          `json:"deleted_at,omitempty"`
	Attachments     []Attachment        `json:"attachments"`
	Reactions       []ReactionAggregate `json:"reactions"`

	// IsPending marks an unconfirmed optimistic entry. Client-side state
	// only, it never round-trips through the backend.
	IsPending bool `json:"is_pending,omitempty"`
}

// MessageQuery selects one channel's history for one viewer. An empty
// ChannelID selects the direct-message context.
type MessageQuery struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	ChannelID   string `json:"channel_id,omitempty"`
}

// MessageDraft is the submission payload for a new message.
type MessageDraft struct {
	WorkspaceID string       `json:"workspace_id" validate:"required"`
	ChannelID   string       `json:"channel_id"`
	UserID      string       `json:"user_id" validate:"required"`
	UserName    string       `json:"user_name" validate:"required"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
}

// MessageHistory is the fetch response for one channel: the base timeline
// plus the viewer's unread count and read watermark.
type MessageHistory struct {
	Messages    []Message    `json:"messages"`
	UnreadCount int          `json:"unread_count"`
	ReadReceipt *ReadReceipt `json:"read_receipt"`
}
