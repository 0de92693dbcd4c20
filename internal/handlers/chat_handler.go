package handlers

import (
	"log"

	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Display godoc
// @Summary Widget boot payload
// @Description Returns the bot profile and displayed FAQ entries for the embedded widget
// @Tags Chat
// @Produce json
// @Param slug path string true "Chatbot slug"
// @Param X-Widget-Token header string true "Widget token from the embed snippet"
// @Success 200 {object} services.DisplayPayload
// @Failure 404 {object} map[string]interface{}
// @Router /chat/{slug}/display [get]
func (h *ChatHandler) Display(c *fiber.Ctx) error {
	payload, err := h.chatService.Display(c.Params("slug"))
	if err != nil {
		if services.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Chatbot not found",
			})
		}
		log.Printf("❌ Failed to build display payload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load chatbot",
		})
	}
	return c.JSON(payload)
}

type messageRequest struct {
	Message string `json:"message"`
}

// Message godoc
// @Summary Answer a free-text visitor message
// @Description Matches the message against the bot's Q&A entries and returns the answer or a fallback
// @Tags Chat
// @Accept json
// @Produce json
// @Param slug path string true "Chatbot slug"
// @Param request body messageRequest true "Visitor message"
// @Success 200 {object} services.Reply
// @Failure 400 {object} map[string]interface{}
// @Router /chat/{slug}/message [post]
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	reply, err := h.chatService.Answer(chatbotFromLocals(c), req.Message)
	if err != nil {
		log.Printf("❌ Failed to answer message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}
	return c.JSON(reply)
}

// Query godoc
// @Summary Submit a visitor lead form
// @Description Stores the contact form shown after a fallback and notifies the bot owner
// @Tags Chat
// @Accept json
// @Produce json
// @Param slug path string true "Chatbot slug"
// @Param request body services.LeadRequest true "Visitor details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /chat/{slug}/query [post]
func (h *ChatHandler) Query(c *fiber.Ctx) error {
	var req services.LeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Email == "" || req.Problem == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: name, email, problem",
		})
	}

	visitor, err := h.chatService.SubmitLead(chatbotFromLocals(c), req)
	if err != nil {
		log.Printf("❌ Failed to store visitor query: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit query",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks! The team will get back to you shortly.",
		"id":      visitor.ID,
	})
}

// Transcript godoc
// @Summary Recent widget conversation log
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Chatbot slug"
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {array} models.Conversation
// @Failure 403 {object} map[string]interface{}
// @Router /chat/{slug}/conversations [get]
func (h *ChatHandler) Transcript(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	conversations, err := h.chatService.Transcript(userID, c.Params("slug"), c.QueryInt("limit", 100))
	if err != nil {
		return chatbotError(c, err, "Failed to load conversations")
	}
	return c.JSON(conversations)
}

type faqLogRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LogSelection godoc
// @Summary Record a tapped FAQ suggestion
// @Description The widget answers FAQ taps locally; this call keeps the transcript and counters complete
// @Tags Chat
// @Accept json
// @Produce json
// @Param slug path string true "Chatbot slug"
// @Param request body faqLogRequest true "Selected entry"
// @Success 204
// @Router /chat/{slug}/log [post]
func (h *ChatHandler) LogSelection(c *fiber.Ctx) error {
	var req faqLogRequest
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	if err := h.chatService.LogFAQSelection(chatbotFromLocals(c), req.Question, req.Answer); err != nil {
		log.Printf("⚠️ Failed to log FAQ selection: %v", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
