package models

// Reaction is one raw (user, emoji) row as stored by the backend. The
// backend keeps them unique per (message, user, emoji).
type Reaction struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}

// ReactionAggregate is the derived per-emoji tally of a message. UserIDs
// holds each reactor at most once; Count always equals len(UserIDs).
// HasReacted is recomputed for the current viewer, it carries no state.
type ReactionAggregate struct {
	Emoji      string   `json:"emoji"`
	Count      int      `json:"count"`
	UserIDs    []string `json:"user_ids"`
	HasReacted bool     `json:"has_reacted"`
}

// ReactionRequest is the payload for adding or removing a single reaction.
type ReactionRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required"`
	ChannelID   string `json:"channel_id"`
	MessageID   string `json:"message_id"`
	UserID      string `json:"user_id" validate:"required"`
	Emoji       string `json:"emoji" validate:"required"`
}
