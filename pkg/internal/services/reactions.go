package services

import (
	"github.com/samber/lo"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// AggregateReactions folds raw reaction rows into per-emoji tallies. The
// backend keeps (user, emoji) rows unique already, but duplicate input rows
// are collapsed here as well so a bad payload can never inflate a count.
// Emojis keep their first-seen order.
func AggregateReactions(rows []models.Reaction, viewerID string) []models.ReactionAggregate {
	var order []string
	reactors := make(map[string][]string)
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		key := row.Emoji + "\x00" + row.UserID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := reactors[row.Emoji]; !ok {
			order = append(order, row.Emoji)
		}
		reactors[row.Emoji] = append(reactors[row.Emoji], row.UserID)
	}

	return lo.Map(order, func(emoji string, _ int) models.ReactionAggregate {
		userIds := reactors[emoji]
		return models.ReactionAggregate{
			Emoji:      emoji,
			Count:      len(userIds),
			UserIDs:    userIds,
			HasReacted: lo.Contains(userIds, viewerID),
		}
	})
}

// MarkViewer recomputes the has_reacted flags of server-issued totals for
// the given viewer. The input is left untouched.
func MarkViewer(aggregates []models.ReactionAggregate, viewerID string) []models.ReactionAggregate {
	return lo.Map(aggregates, func(aggregate models.ReactionAggregate, _ int) models.ReactionAggregate {
		aggregate.HasReacted = lo.Contains(aggregate.UserIDs, viewerID)
		return aggregate
	})
}

// AddReaction toggles the viewer's reaction on. Reacting twice with the
// same emoji is a no-op, the round-trip is skipped entirely. On failure the
// prior aggregate stays untouched.
func (v *ChannelView) AddReaction(messageID string, emoji string) error {
	if err := v.binding.check(); err != nil {
		return err
	}
	if v.viewerReacted(messageID, emoji) {
		return nil
	}

	totals, err := v.gateway.AddReaction(models.ReactionRequest{
		WorkspaceID: v.binding.WorkspaceID,
		ChannelID:   v.binding.ChannelID,
		MessageID:   messageID,
		UserID:      v.binding.UserID,
		Emoji:       emoji,
	})
	if err != nil {
		return &NetworkError{Op: "add reaction", Err: err}
	}

	v.applyReactionTotals(messageID, totals)
	return nil
}

// RemoveReaction toggles the viewer's reaction off. Removing a reaction the
// viewer never made is a no-op, not an error.
func (v *ChannelView) RemoveReaction(messageID string, emoji string) error {
	if err := v.binding.check(); err != nil {
		return err
	}
	if !v.viewerReacted(messageID, emoji) {
		return nil
	}

	totals, err := v.gateway.RemoveReaction(models.ReactionRequest{
		WorkspaceID: v.binding.WorkspaceID,
		ChannelID:   v.binding.ChannelID,
		MessageID:   messageID,
		UserID:      v.binding.UserID,
		Emoji:       emoji,
	})
	if err != nil {
		return &NetworkError{Op: "remove reaction", Err: err}
	}

	v.applyReactionTotals(messageID, totals)
	return nil
}

func (v *ChannelView) viewerReacted(messageID string, emoji string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	message, ok := v.findMessageLocked(messageID)
	if !ok {
		return false
	}
	for _, aggregate := range message.Reactions {
		if aggregate.Emoji == emoji {
			return lo.Contains(aggregate.UserIDs, v.binding.UserID)
		}
	}
	return false
}

// Server totals replace the message's aggregates in full; they are never
// patched incrementally.
func (v *ChannelView) applyReactionTotals(messageID string, totals []models.ReactionAggregate) {
	marked := MarkViewer(totals, v.binding.UserID)

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, group := range []*[]models.Message{&v.base, &v.outbox, &v.pushed} {
		for i := range *group {
			if (*group)[i].ID == messageID {
				(*group)[i].Reactions = marked
			}
		}
	}
}
