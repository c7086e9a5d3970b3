package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

func TestLocalDeliversToChannelSubscribers(t *testing.T) {
	local := NewLocal()

	var got []string
	unsubscribe, err := local.Subscribe("general", func(message models.Message) {
		got = append(got, message.ID)
	})
	require.NoError(t, err)
	defer unsubscribe()

	local.Publish("general", models.Message{ID: "m1"})
	local.Publish("random", models.Message{ID: "m2"})

	assert.Equal(t, []string{"m1"}, got)
}

func TestLocalUnsubscribeStopsDelivery(t *testing.T) {
	local := NewLocal()

	count := 0
	unsubscribe, err := local.Subscribe("general", func(models.Message) {
		count++
	})
	require.NoError(t, err)

	local.Publish("general", models.Message{ID: "m1"})
	unsubscribe()
	local.Publish("general", models.Message{ID: "m2"})

	assert.Equal(t, 1, count)
}

func TestLocalMultipleSubscribers(t *testing.T) {
	local := NewLocal()

	first, second := 0, 0
	u1, _ := local.Subscribe("general", func(models.Message) { first++ })
	u2, _ := local.Subscribe("general", func(models.Message) { second++ })
	defer u1()
	defer u2()

	local.Publish("general", models.Message{ID: "m1"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
