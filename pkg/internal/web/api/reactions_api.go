package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamorbit/chatsync/pkg/internal/datastore"
	"github.com/teamorbit/chatsync/pkg/internal/models"
	"github.com/teamorbit/chatsync/pkg/internal/services"
	"github.com/teamorbit/chatsync/pkg/internal/web/exts"
)

func addReaction(c *fiber.Ctx) error {
	messageId := c.Params("messageId")

	var data models.ReactionRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, ok := datastore.S.GetMessage(messageId); !ok {
		return fiber.NewError(fiber.StatusNotFound, "message not found")
	}

	datastore.S.AddReaction(messageId, models.Reaction{
		UserID: data.UserID,
		Emoji:  data.Emoji,
	})

	return c.JSON(services.AggregateReactions(datastore.S.Reactions(messageId), data.UserID))
}

func removeReaction(c *fiber.Ctx) error {
	messageId := c.Params("messageId")
	userId := c.Query("userId")
	emoji := c.Query("emoji")

	if len(userId) == 0 || len(emoji) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "userId and emoji are required")
	}
	if _, ok := datastore.S.GetMessage(messageId); !ok {
		return fiber.NewError(fiber.StatusNotFound, "message not found")
	}

	datastore.S.RemoveReaction(messageId, models.Reaction{
		UserID: userId,
		Emoji:  emoji,
	})

	return c.JSON(services.AggregateReactions(datastore.S.Reactions(messageId), userId))
}
