package handlers

import (
	"log"

	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type QAHandler struct {
	qaService *services.QAService
}

func NewQAHandler(qaService *services.QAService) *QAHandler {
	return &QAHandler{qaService: qaService}
}

// Create godoc
// @Summary Add a Q&A entry
// @Tags QA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.QAEntryRequest true "Entry details"
// @Success 201 {object} services.QAEntryResponse
// @Failure 400 {object} map[string]interface{}
// @Router /user/qa [post]
func (h *QAHandler) Create(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req services.QAEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ChatbotID == "" || req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: chatbotId, question, answer",
		})
	}

	entry, err := h.qaService.Create(userID, req)
	if err != nil {
		return chatbotError(c, err, "Failed to create entry")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Update godoc
// @Summary Edit a Q&A entry
// @Tags QA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body services.QAEntryRequest true "Updated fields"
// @Success 200 {object} services.QAEntryResponse
// @Failure 404 {object} map[string]interface{}
// @Router /user/qa/{id} [put]
func (h *QAHandler) Update(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req services.QAEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.qaService.Update(userID, c.Params("id"), req)
	if err != nil {
		return chatbotError(c, err, "Failed to update entry")
	}
	return c.JSON(entry)
}

// Delete godoc
// @Summary Delete a Q&A entry
// @Tags QA
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/qa/{id} [delete]
func (h *QAHandler) Delete(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.qaService.Delete(userID, c.Params("id")); err != nil {
		return chatbotError(c, err, "Failed to delete entry")
	}

	log.Printf("✅ QA entry %s deleted", c.Params("id"))
	return c.JSON(fiber.Map{
		"message": "Entry deleted",
	})
}

// ListByChatbot godoc
// @Summary List all Q&A entries for a chatbot
// @Tags QA
// @Produce json
// @Security BearerAuth
// @Param chatbotId path string true "Chatbot ID"
// @Success 200 {array} services.QAEntryResponse
// @Failure 403 {object} map[string]interface{}
// @Router /user/get-all-qa/{chatbotId} [get]
func (h *QAHandler) ListByChatbot(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entries, err := h.qaService.ListByChatbot(userID, c.Params("chatbotId"))
	if err != nil {
		return chatbotError(c, err, "Failed to list entries")
	}
	return c.JSON(entries)
}
