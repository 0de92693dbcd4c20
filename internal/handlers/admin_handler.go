package handlers

import (
	"bytes"
	"fmt"
	"log"

	"github.com/botdesk/botdesk-backend/internal/core/auth"
	"github.com/botdesk/botdesk-backend/internal/core/billing"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the super-admin user registry and the renewal flow.
type AdminHandler struct {
	userRepo       *auth.Repository
	billingService *billing.Service
}

func NewAdminHandler(userRepo *auth.Repository, billingService *billing.Service) *AdminHandler {
	return &AdminHandler{
		userRepo:       userRepo,
		billingService: billingService,
	}
}

// ListUsers godoc
// @Summary List all registered accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} auth.UserInfo
// @Failure 403 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.ListUsers()
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	infos := make([]auth.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, auth.ToUserInfo(&users[i]))
	}
	return c.JSON(infos)
}

// DeleteUser godoc
// @Summary Remove an account and everything it owns
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/delete-users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if callerID, _ := c.Locals("userID").(string); callerID == id {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot delete your own account",
		})
	}

	if err := h.userRepo.DeleteUser(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	log.Printf("✅ User %s deleted", id)
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// Renew godoc
// @Summary Renew a subscription
// @Description Extends the subscription by the requested number of months. The
// server recomputes the amount and rejects a mismatch; resubmitting the same
// idempotency key replays the original result. A super admin may renew another
// account by passing its user_id; everyone else renews their own.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body billing.RenewRequest true "Renewal details"
// @Success 200 {object} billing.RenewResult
// @Failure 400 {object} map[string]interface{}
// @Router /auth/admin/renew [post]
func (h *AdminHandler) Renew(c *fiber.Ctx) error {
	var req billing.RenewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Only a super admin may renew on behalf of another account; for
	// everyone else the user id always comes from the token.
	callerID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)
	if role != auth.RoleSuperAdmin || req.UserID == "" {
		req.UserID = callerID
	}

	result, err := h.billingService.Renew(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.Replayed {
		log.Printf("🔄 Renewal replayed for user %s (key %s)", req.UserID, req.IdempotencyKey)
	} else {
		log.Printf("✅ Subscription renewed for user %s: %d month(s)", req.UserID, req.Duration)
	}
	return c.JSON(result)
}

// RenewalHistory godoc
// @Summary List the caller's renewals
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Renewal
// @Router /admin/renewals [get]
func (h *AdminHandler) RenewalHistory(c *fiber.Ctx) error {
	callerID, _ := c.Locals("userID").(string)
	renewals, err := h.billingService.History(callerID)
	if err != nil {
		log.Printf("❌ Failed to list renewals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list renewals",
		})
	}
	return c.JSON(renewals)
}

// Invoice godoc
// @Summary Download a renewal invoice as PDF
// @Tags Admin
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Renewal ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /admin/renewals/{id}/invoice [get]
func (h *AdminHandler) Invoice(c *fiber.Ctx) error {
	renewal, err := h.billingService.GetRenewal(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Renewal not found",
		})
	}

	// Only the renewal's owner or a super admin may download the invoice.
	callerID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)
	if renewal.UserID.String() != callerID && role != auth.RoleSuperAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not your invoice",
		})
	}

	user, err := h.userRepo.GetUserByID(renewal.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	var buf bytes.Buffer
	if err := billing.WriteInvoice(renewal, user.Name, user.Email, &buf); err != nil {
		log.Printf("❌ Failed to render invoice: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render invoice",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice_%s.pdf"`, renewal.ID))
	return c.Send(buf.Bytes())
}
