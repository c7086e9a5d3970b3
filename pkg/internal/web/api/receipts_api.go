package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamorbit/chatsync/pkg/internal/datastore"
	"github.com/teamorbit/chatsync/pkg/internal/models"
	"github.com/teamorbit/chatsync/pkg/internal/web/exts"
)

func saveReadReceipt(c *fiber.Ctx) error {
	var data models.ReadReceipt
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if data.LastReadAt.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "last_read_at is required")
	}

	// The store keeps the furthest watermark, so a delayed older write
	// comes back as the already stored newer one.
	return c.JSON(datastore.S.SaveReceipt(data))
}
