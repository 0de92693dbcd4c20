package handlers

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/botdesk/botdesk-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VisitorHandler struct {
	visitorService *services.VisitorService
}

func NewVisitorHandler(visitorService *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorService: visitorService}
}

// List godoc
// @Summary Paginated visitor issue listing
// @Description Supports page, limit, free-text search and a fromDate (YYYY-MM-DD) filter
// @Tags Visitors
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Chatbot slug"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Matches name, mobile or question text"
// @Param fromDate query string false "Only issues on or after this date"
// @Success 200 {object} services.VisitorPage
// @Failure 403 {object} map[string]interface{}
// @Router /chat/{slug}/visitorslist [get]
func (h *VisitorHandler) List(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	query := repositories.VisitorQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}
	if raw := c.Query("fromDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "fromDate must be YYYY-MM-DD",
			})
		}
		query.FromDate = &from
	}

	page, err := h.visitorService.List(userID, c.Params("slug"), query)
	if err != nil {
		return chatbotError(c, err, "Failed to list visitors")
	}
	return c.JSON(page)
}

type statusRequest struct {
	Solved bool `json:"solved"`
}

// UpdateStatus godoc
// @Summary Toggle an issue between solved and pending
// @Tags Visitors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Chatbot slug"
// @Param id path string true "Visitor ID"
// @Param request body statusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /chat/{slug}/visitor/{id}/status [put]
func (h *VisitorHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.visitorService.UpdateStatus(userID, c.Params("slug"), c.Params("id"), req.Solved); err != nil {
		return chatbotError(c, err, "Failed to update status")
	}
	return c.JSON(fiber.Map{
		"message": "Status updated",
		"solved":  req.Solved,
	})
}

// Export godoc
// @Summary Download every visitor issue as a spreadsheet
// @Tags Visitors
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param slug path string true "Chatbot slug"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]interface{}
// @Router /chat/{slug}/visitors/export [get]
func (h *VisitorHandler) Export(c *fiber.Ctx) error {
	userID, err := localUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var buf bytes.Buffer
	filename, err := h.visitorService.Export(userID, c.Params("slug"), &buf)
	if err != nil {
		return chatbotError(c, err, "Failed to export visitors")
	}

	log.Printf("✅ Visitor export generated: %s (%d bytes)", filename, buf.Len())
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
