package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/teamorbit/chatsync/pkg/internal/datastore"
	"github.com/teamorbit/chatsync/pkg/internal/models"
	"github.com/teamorbit/chatsync/pkg/internal/services"
	"github.com/teamorbit/chatsync/pkg/internal/web/exts"
)

func listMessages(c *fiber.Ctx) error {
	workspaceId := c.Query("workspaceId")
	userId := c.Query("userId")
	channelId := c.Query("channelId")

	if len(workspaceId) == 0 || len(userId) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "workspaceId and userId are required")
	}

	messages := datastore.S.ListMessages(workspaceId, channelId)
	for i := range messages {
		messages[i].Reactions = services.AggregateReactions(datastore.S.Reactions(messages[i].ID), userId)
	}

	receipt, hasReceipt := datastore.S.GetReceipt(workspaceId, userId, channelId)
	unread := lo.CountBy(messages, func(message models.Message) bool {
		if message.UserID == userId {
			return false
		}
		if !hasReceipt {
			return true
		}
		return message.CreatedAt.After(receipt.LastReadAt.Time)
	})

	history := models.MessageHistory{
		Messages:    messages,
		UnreadCount: unread,
	}
	if hasReceipt {
		history.ReadReceipt = &receipt
	}

	return c.JSON(history)
}

func createMessage(c *fiber.Ctx) error {
	var data models.MessageDraft
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	data.Content = strings.TrimSpace(data.Content)
	if len(data.Content) == 0 {
		if len(data.Attachments) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "empty message was not allowed")
		}
		data.Content = models.AttachmentOnlyPlaceholder
	}

	message := models.Message{
		ID:          uuid.NewString(),
		WorkspaceID: data.WorkspaceID,
		ChannelID:   data.ChannelID,
		UserID:      data.UserID,
		UserName:    data.UserName,
		Content:     data.Content,
		CreatedAt:   models.Now(),
		Reactions:   []models.ReactionAggregate{},
	}
	message.Attachments = lo.Map(data.Attachments, func(attachment models.Attachment, _ int) models.Attachment {
		if len(attachment.ID) == 0 {
			attachment.ID = uuid.NewString()
		}
		if attachment.UploadedAt.IsZero() {
			attachment.UploadedAt = models.Now()
		}
		attachment.MessageID = message.ID
		return attachment
	})

	datastore.S.AppendMessage(message)

	PushChannel(message.ChannelID, models.Command{
		Action:  models.CommandMessageNew,
		Payload: message,
	})

	return c.JSON(message)
}
