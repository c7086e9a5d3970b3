package models

// ReadReceipt is the singleton read watermark for one (workspace, user,
// channel) triple. It is not a log of read events: LastReadAt only ever
// advances, a write with an older timestamp must never regress it.
type ReadReceipt struct {
	WorkspaceID       string    `json:"workspace_id" validate:"required"`
	UserID            string    `json:"user_id" validate:"required"`
	ChannelID         string    `json:"channel_id"`
	LastReadMessageID string    `json:"last_read_message_id"`
	LastReadAt        Timestamp `json:"last_read_at"`
}
