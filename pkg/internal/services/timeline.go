package services

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// MergeTimeline combines fetched history, outbox entries and pushed events
// into one chronological view. Union is by id and the first occurrence in
// (base, optimistic, pushed) order wins; ties on created_at keep their
// insertion order. Inputs are never mutated.
func MergeTimeline(base []models.Message, optimistic []models.Message, pushed []models.Message) []models.Message {
	total := len(base) + len(optimistic) + len(pushed)
	seen := make(map[string]struct{}, total)
	merged := make([]models.Message, 0, total)

	for _, group := range [][]models.Message{base, optimistic, pushed} {
		for _, message := range group {
			if _, ok := seen[message.ID]; ok {
				continue
			}
			seen[message.ID] = struct{}{}
			merged = append(merged, message)
		}
	}

	now := time.Now()
	sort.SliceStable(merged, func(i, j int) bool {
		return sortInstant(merged[i], now).Before(sortInstant(merged[j], now))
	})

	return merged
}

// A message without a usable timestamp still has to render; it sorts as if
// it arrived just now.
func sortInstant(message models.Message, now time.Time) time.Time {
	if message.CreatedAt.IsZero() {
		log.Warn().Str("id", message.ID).Msg("Message has no usable timestamp, sorting it as just arrived...")
		return now
	}
	return message.CreatedAt.Time
}
