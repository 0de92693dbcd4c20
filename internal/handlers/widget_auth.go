package handlers

import (
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const chatbotLocal = "chatbot"

// WidgetAuth gates the public chat surface. The embed snippet carries the
// bot's widget token; every request from the widget must present it in the
// X-Widget-Token header and it must match the bot named by the slug.
func WidgetAuth(chatService *services.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing chatbot slug",
			})
		}

		bot, err := chatService.GetChatbotBySlug(slug)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Chatbot not found",
			})
		}

		token := c.Get("X-Widget-Token")
		if token == "" || token != bot.WidgetToken {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid widget token",
			})
		}

		c.Locals(chatbotLocal, bot)
		return c.Next()
	}
}

// chatbotFromLocals retrieves the bot stashed by WidgetAuth.
func chatbotFromLocals(c *fiber.Ctx) *models.Chatbot {
	bot, _ := c.Locals(chatbotLocal).(*models.Chatbot)
	return bot
}
