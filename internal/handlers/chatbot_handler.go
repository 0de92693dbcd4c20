package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type ChatbotHandler struct {
	chatbotService *services.ChatbotService
	publicBaseURL  string
}

func NewChatbotHandler(chatbotService *services.ChatbotService, publicBaseURL string) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotService: chatbotService,
		publicBaseURL:  publicBaseURL,
	}
}

// List godoc
// @Summary List the caller's chatbots
// @Tags Chatbot
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Chatbot
// @Router /user/chatbots [get]
func (h *ChatbotHandler) List(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	bots, err := h.chatbotService.ListByUser(userID)
	if err != nil {
		log.Printf("❌ Failed to list chatbots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list chatbots",
		})
	}
	return c.JSON(bots)
}

// Create godoc
// @Summary Register a new chatbot profile
// @Tags Chatbot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateChatbotRequest true "Profile details"
// @Success 201 {object} models.Chatbot
// @Failure 400 {object} map[string]interface{}
// @Router /user/chatbots [post]
func (h *ChatbotHandler) Create(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req services.CreateChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.CompanyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Company name is required",
		})
	}

	bot, err := h.chatbotService.Create(userID, req)
	if err != nil {
		log.Printf("❌ Failed to create chatbot: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(bot)
}

// Update godoc
// @Summary Update a chatbot profile
// @Description Multipart form: a "data" field with the JSON profile patch and an optional "logo" file
// @Tags Chatbot
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chatbot ID"
// @Success 200 {object} models.Chatbot
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /chatbot/{id} [patch]
func (h *ChatbotHandler) Update(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req services.UpdateChatbotRequest
	if data := c.FormValue("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid profile data",
			})
		}
	} else if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	logo, _ := c.FormFile("logo")

	bot, err := h.chatbotService.Update(userID, c.Params("id"), req, logo)
	if err != nil {
		return chatbotError(c, err, "Failed to update chatbot")
	}
	return c.JSON(bot)
}

// QRCode godoc
// @Summary Share QR code for the public chat page
// @Description Renders a PNG QR code pointing at the bot's hosted chat URL
// @Tags Chatbot
// @Produce png
// @Security BearerAuth
// @Param id path string true "Chatbot ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /chatbot/{id}/qr [get]
func (h *ChatbotHandler) QRCode(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	bot, err := h.chatbotService.GetByID(c.Params("id"))
	if err != nil {
		return chatbotError(c, err, "Failed to load chatbot")
	}
	if bot.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Chatbot does not belong to this user",
		})
	}

	chatURL := fmt.Sprintf("%s/chat/%s", h.publicBaseURL, bot.Slug)
	png, err := qrcode.Encode(chatURL, qrcode.Medium, 512)
	if err != nil {
		log.Printf("❌ Failed to render QR code: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render QR code",
		})
	}

	c.Set("Content-Type", "image/png")
	c.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s-qr.png"`, bot.Slug))
	return c.Send(png)
}

// localUserID parses the authenticated user id set by the auth middleware.
func localUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid authentication context")
	}
	return userID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid authentication context",
	})
}

func chatbotError(c *fiber.Ctx, err error, fallbackMsg string) error {
	switch {
	case errors.Is(err, services.ErrChatbotNotOwned):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Chatbot does not belong to this user",
		})
	case services.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chatbot not found",
		})
	default:
		log.Printf("❌ %s: %v", fallbackMsg, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallbackMsg,
		})
	}
}
