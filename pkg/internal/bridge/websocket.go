package bridge

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// Websocket subscribes to the backend's per-channel event stream. Each
// subscription holds its own connection; unsubscribing closes it, which
// stops the reader.
type Websocket struct {
	baseURL string
}

// NewWebsocket takes the backend's ws base, e.g. "ws://localhost:8445".
func NewWebsocket(baseURL string) *Websocket {
	return &Websocket{baseURL: baseURL}
}

func (b *Websocket) Subscribe(channelID string, fn func(models.Message)) (func(), error) {
	endpoint := fmt.Sprintf("%s/ws/channels/%s", b.baseURL, url.PathEscape(channelID))
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, err
	}

	go func() {
		defer conn.Close()
		for {
			_, packet, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var command models.Command
			if err := jsoniter.Unmarshal(packet, &command); err != nil {
				log.Warn().Err(err).Msg("Unable to unmarshal pushed command, skipping...")
				continue
			}
			if command.Action != models.CommandMessageNew {
				continue
			}

			var message models.Message
			models.FitStruct(command.Payload, &message)
			fn(message)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = conn.Close()
		})
	}, nil
}
