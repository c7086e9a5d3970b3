package api

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/teamorbit/chatsync/pkg/internal/models"
)

// channelId -> subscribed connections
var wsConns = make(map[string]map[*websocket.Conn]bool)
var wsLock sync.Mutex

func channelGateway(c *websocket.Conn) {
	channelId := c.Params("channelId")

	clientRegister(channelId, c)
	defer clientUnregister(channelId, c)

	// The stream is push-only; the read loop just watches for the close.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func clientRegister(channelId string, c *websocket.Conn) {
	wsLock.Lock()
	defer wsLock.Unlock()
	if _, ok := wsConns[channelId]; !ok {
		wsConns[channelId] = make(map[*websocket.Conn]bool)
	}
	wsConns[channelId][c] = true
}

func clientUnregister(channelId string, c *websocket.Conn) {
	wsLock.Lock()
	defer wsLock.Unlock()
	delete(wsConns[channelId], c)
}

// PushChannel fans a command out to every subscriber of the channel.
func PushChannel(channelId string, command models.Command) {
	wsLock.Lock()
	targets := make([]*websocket.Conn, 0, len(wsConns[channelId]))
	for conn := range wsConns[channelId] {
		targets = append(targets, conn)
	}
	wsLock.Unlock()

	for _, conn := range targets {
		_ = conn.WriteMessage(websocket.TextMessage, command.Marshal())
	}
}
