package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App) {
	api := app.Group("/api").Name("API")
	{
		messages := api.Group("/messages").Name("Messages API")
		{
			messages.Get("/", listMessages)
			messages.Post("/", createMessage)
			messages.Post("/read-receipts", saveReadReceipt)
			messages.Post("/:messageId/reactions", addReaction)
			messages.Delete("/:messageId/reactions", removeReaction)
		}
	}

	app.Get("/ws/channels/:channelId", websocket.New(channelGateway))
}
