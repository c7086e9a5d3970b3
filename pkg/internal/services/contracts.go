package services

import "github.com/teamorbit/chatsync/pkg/internal/models"

// Gateway is the consumed REST surface of the messages backend. Shapes
// only; the transport behind it is not this package's business.
type Gateway interface {
	ListMessages(query models.MessageQuery) (models.MessageHistory, error)
	CreateMessage(draft models.MessageDraft) (models.Message, error)
	SaveReadReceipt(receipt models.ReadReceipt) (models.ReadReceipt, error)
	AddReaction(request models.ReactionRequest) ([]models.ReactionAggregate, error)
	RemoveReaction(request models.ReactionRequest) ([]models.ReactionAggregate, error)
}

// Bridge delivers out-of-band message creation events for one channel.
// Delivery is at-least-once; duplicates are absorbed by the timeline merge.
// The returned function tears the subscription down.
type Bridge interface {
	Subscribe(channelID string, fn func(models.Message)) (func(), error)
}
