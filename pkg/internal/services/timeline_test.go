package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

func makeMessage(id string, at time.Time) models.Message {
	return models.Message{
		ID:          id,
		WorkspaceID: "ws1",
		ChannelID:   "general",
		UserID:      "u1",
		UserName:    "User One",
		Content:     "content of " + id,
		CreatedAt:   models.At(at),
	}
}

func timelineIds(timeline []models.Message) []string {
	ids := make([]string, 0, len(timeline))
	for _, message := range timeline {
		ids = append(ids, message.ID)
	}
	return ids
}

func TestMergeTimelineSortStability(t *testing.T) {
	base := time.Unix(1700000000, 0)
	input := []models.Message{
		makeMessage("A", base.Add(10*time.Second)),
		makeMessage("B", base.Add(5*time.Second)),
		makeMessage("C", base.Add(10*time.Second)),
	}

	merged := MergeTimeline(input, nil, nil)
	assert.Equal(t, []string{"B", "A", "C"}, timelineIds(merged))
}

func TestMergeTimelineDeterminism(t *testing.T) {
	base := time.Unix(1700000000, 0)
	fetched := []models.Message{
		makeMessage("m1", base.Add(time.Second)),
		makeMessage("m3", base.Add(3*time.Second)),
	}
	optimistic := []models.Message{makeMessage("temp-1", base.Add(4*time.Second))}
	pushed := []models.Message{makeMessage("m2", base.Add(2*time.Second))}

	first := MergeTimeline(fetched, optimistic, pushed)
	second := MergeTimeline(fetched, optimistic, pushed)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"m1", "m2", "m3", "temp-1"}, timelineIds(first))
}

func TestMergeTimelineDeduplicatesById(t *testing.T) {
	base := time.Unix(1700000000, 0)
	fetched := []models.Message{makeMessage("m1", base)}
	duplicate := makeMessage("m1", base)
	duplicate.Content = "pushed copy"

	merged := MergeTimeline(fetched, nil, []models.Message{duplicate})
	require.Len(t, merged, 1)
	// First occurrence wins; the pushed copy dissolves.
	assert.Equal(t, "content of m1", merged[0].Content)
}

func TestMergeTimelineDoesNotMutateInputs(t *testing.T) {
	base := time.Unix(1700000000, 0)
	fetched := []models.Message{
		makeMessage("late", base.Add(time.Hour)),
		makeMessage("early", base),
	}
	snapshot := []string{fetched[0].ID, fetched[1].ID}

	MergeTimeline(fetched, nil, nil)
	assert.Equal(t, snapshot, []string{fetched[0].ID, fetched[1].ID})
}

func TestMergeTimelineMalformedTimestampSortsLast(t *testing.T) {
	base := time.Unix(1700000000, 0)
	broken := makeMessage("broken", time.Time{})

	merged := MergeTimeline([]models.Message{broken, makeMessage("ok", base)}, nil, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, "ok", merged[0].ID)
	assert.Equal(t, "broken", merged[1].ID)
}

func TestMergeTimelineEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeTimeline(nil, nil, nil))
}
