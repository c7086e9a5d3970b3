package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

func TestAggregateReactionsGroupsByEmoji(t *testing.T) {
	rows := []models.Reaction{
		{UserID: "u1", Emoji: "👍"},
		{UserID: "u2", Emoji: "👍"},
		{UserID: "u1", Emoji: "🎉"},
	}

	aggregates := AggregateReactions(rows, "u1")
	require.Len(t, aggregates, 2)

	thumbs := aggregates[0]
	assert.Equal(t, "👍", thumbs.Emoji)
	assert.Equal(t, 2, thumbs.Count)
	assert.ElementsMatch(t, []string{"u1", "u2"}, thumbs.UserIDs)
	assert.True(t, thumbs.HasReacted)

	party := aggregates[1]
	assert.Equal(t, 1, party.Count)
	assert.True(t, party.HasReacted)
}

func TestAggregateReactionsViewerNotAmongReactors(t *testing.T) {
	rows := []models.Reaction{
		{UserID: "u1", Emoji: "👍"},
		{UserID: "u2", Emoji: "👍"},
	}

	aggregates := AggregateReactions(rows, "u3")
	require.Len(t, aggregates, 1)
	assert.Equal(t, 2, aggregates[0].Count)
	assert.False(t, aggregates[0].HasReacted)
}

func TestAggregateReactionsDeduplicatesRows(t *testing.T) {
	rows := []models.Reaction{
		{UserID: "u1", Emoji: "👍"},
		{UserID: "u1", Emoji: "👍"},
		{UserID: "u1", Emoji: "👍"},
	}

	aggregates := AggregateReactions(rows, "u1")
	require.Len(t, aggregates, 1)
	assert.Equal(t, 1, aggregates[0].Count)
	assert.Equal(t, []string{"u1"}, aggregates[0].UserIDs)
}

func TestAggregateReactionsEmptyInput(t *testing.T) {
	assert.Empty(t, AggregateReactions(nil, "u1"))
}

func reactionTestView(gw *stubGateway) *ChannelView {
	view := newTestView(gw)
	message := makeMessage("m1", time.Unix(1700000000, 0))
	message.Reactions = []models.ReactionAggregate{}
	view.base = []models.Message{message}
	return view
}

func TestAddReactionIdempotentForViewer(t *testing.T) {
	gw := &stubGateway{
		totals: []models.ReactionAggregate{
			{Emoji: "👍", Count: 1, UserIDs: []string{"viewer"}},
		},
	}
	view := reactionTestView(gw)

	require.NoError(t, view.AddReaction("m1", "👍"))
	require.NoError(t, view.AddReaction("m1", "👍"))

	// The second call is absorbed locally; the end state equals a single
	// reaction and the backend saw exactly one request.
	assert.Equal(t, 1, gw.addCalls)
	timeline := view.Timeline()
	require.Len(t, timeline[0].Reactions, 1)
	assert.Equal(t, 1, timeline[0].Reactions[0].Count)
	assert.True(t, timeline[0].Reactions[0].HasReacted)
}

func TestRemoveReactionNeverMadeIsNoop(t *testing.T) {
	gw := &stubGateway{}
	view := reactionTestView(gw)

	require.NoError(t, view.RemoveReaction("m1", "👍"))
	assert.Zero(t, gw.removeCalls)
}

func TestReactionFailureLeavesAggregateUntouched(t *testing.T) {
	gw := &stubGateway{reactionErr: errors.New("connection reset")}
	view := reactionTestView(gw)
	prior := []models.ReactionAggregate{
		{Emoji: "🎉", Count: 1, UserIDs: []string{"u2"}},
	}
	view.base[0].Reactions = prior

	err := view.AddReaction("m1", "👍")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, prior, view.Timeline()[0].Reactions)
}

func TestReactionTotalsReplaceInFull(t *testing.T) {
	gw := &stubGateway{
		totals: []models.ReactionAggregate{
			{Emoji: "👍", Count: 2, UserIDs: []string{"viewer", "u2"}},
		},
	}
	view := reactionTestView(gw)
	view.base[0].Reactions = []models.ReactionAggregate{
		{Emoji: "🎉", Count: 3, UserIDs: []string{"u2", "u3", "u4"}},
	}

	require.NoError(t, view.AddReaction("m1", "👍"))

	// Server totals are authoritative; stale local aggregates are gone.
	reactions := view.Timeline()[0].Reactions
	require.Len(t, reactions, 1)
	assert.Equal(t, "👍", reactions[0].Emoji)
	assert.Equal(t, 2, reactions[0].Count)
	assert.True(t, reactions[0].HasReacted)
}
