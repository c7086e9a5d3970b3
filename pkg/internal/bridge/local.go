package bridge

import (
	"sync"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// Local is an in-process event bridge: handlers keyed by channel, delivery
// on the publisher's goroutine. Used when the backend runs in the same
// process, and by tests.
type Local struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func(models.Message)
}

func NewLocal() *Local {
	return &Local{
		handlers: make(map[string]map[int]func(models.Message)),
	}
}

func (b *Local) Subscribe(channelID string, fn func(models.Message)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[channelID]; !ok {
		b.handlers[channelID] = make(map[int]func(models.Message))
	}
	id := b.nextID
	b.nextID++
	b.handlers[channelID][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[channelID], id)
	}, nil
}

func (b *Local) Publish(channelID string, message models.Message) {
	b.mu.Lock()
	targets := make([]func(models.Message), 0, len(b.handlers[channelID]))
	for _, fn := range b.handlers[channelID] {
		targets = append(targets, fn)
	}
	b.mu.Unlock()

	for _, fn := range targets {
		fn(message)
	}
}
