package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/botdesk/botdesk-backend/internal/core/cache"
	"github.com/botdesk/botdesk-backend/internal/core/email"
	"github.com/botdesk/botdesk-backend/internal/middleware"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/botdesk/botdesk-backend/internal/shared/utils"
	"github.com/google/uuid"
)

// The stock reply sent whenever no entry matches a visitor message. The widget
// switches to the lead form after rendering it.
const FallbackReply = "Sorry, I don't have an answer for that yet. Please leave your details and our team will get back to you."

// BotProfile is the public slice of a chatbot shown inside the widget header.
type BotProfile struct {
	Slug           string            `json:"slug"`
	CompanyName    string            `json:"companyName"`
	LogoURL        string            `json:"logoUrl"`
	Description    string            `json:"description"`
	WelcomeMessage string            `json:"welcomeMessage"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

// DisplayPayload is everything the widget needs to boot: the profile plus the
// displayed FAQ entries.
type DisplayPayload struct {
	Profile BotProfile        `json:"profile"`
	Faqs    []models.FaqEntry `json:"faqs"`
}

// Reply is the engine's answer to one visitor message.
type Reply struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}

// LeadRequest is the widget form a visitor fills in when the bot gives up.
type LeadRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Mobile  string `json:"mobile"`
	Problem string `json:"problem" validate:"required"`
}

// OwnerLookup resolves the admin who should be notified about a new lead.
type OwnerLookup interface {
	OwnerContact(userID string) (name, address string, err error)
}

type ChatService struct {
	chatbotRepo      repositories.ChatbotRepo
	qaRepo           repositories.QARepo
	visitorRepo      repositories.VisitorRepo
	conversationRepo repositories.ConversationRepo
	cache            *cache.DisplayCache
	mailer           *email.Service
	owners           OwnerLookup
}

func NewChatService(
	chatbotRepo repositories.ChatbotRepo,
	qaRepo repositories.QARepo,
	visitorRepo repositories.VisitorRepo,
	conversationRepo repositories.ConversationRepo,
	displayCache *cache.DisplayCache,
	mailer *email.Service,
	owners OwnerLookup,
) *ChatService {
	return &ChatService{
		chatbotRepo:      chatbotRepo,
		qaRepo:           qaRepo,
		visitorRepo:      visitorRepo,
		conversationRepo: conversationRepo,
		cache:            displayCache,
		mailer:           mailer,
		owners:           owners,
	}
}

// GetChatbotBySlug is used by the widget-token middleware and handlers.
func (s *ChatService) GetChatbotBySlug(slug string) (*models.Chatbot, error) {
	return s.chatbotRepo.GetBySlug(slug)
}

// Display assembles the widget boot payload, serving from cache when the
// profile and entries have not changed since the last build.
func (s *ChatService) Display(slug string) (*DisplayPayload, error) {
	if cached, ok := s.cache.Get(slug); ok {
		if payload, ok := cached.(*DisplayPayload); ok {
			return payload, nil
		}
	}

	bot, err := s.chatbotRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	entries, err := s.qaRepo.ListDisplayedByChatbot(bot.ID.String())
	if err != nil {
		return nil, err
	}

	faqs := make([]models.FaqEntry, 0, len(entries))
	for _, e := range entries {
		faqs = append(faqs, models.FaqEntry{
			Question: e.Question,
			Answer:   e.Answer,
			Keywords: e.Keywords,
		})
	}

	payload := &DisplayPayload{
		Profile: BotProfile{
			Slug:           bot.Slug,
			CompanyName:    bot.CompanyName,
			LogoURL:        bot.LogoURL,
			Description:    bot.Description,
			WelcomeMessage: bot.WelcomeMessage,
			SocialLinks:    decodeSocialLinks(bot.SocialLinks),
		},
		Faqs: faqs,
	}

	s.cache.Set(slug, payload)
	return payload, nil
}

// Answer classifies one free-text visitor message. Matching is intentionally
// simple: an exact case-insensitive question match wins, then the first entry
// whose keyword appears inside the message, otherwise the stock fallback.
func (s *ChatService) Answer(bot *models.Chatbot, message string) (*Reply, error) {
	entries, err := s.qaRepo.ListByChatbot(bot.ID.String())
	if err != nil {
		return nil, err
	}

	reply := matchEntry(entries, message)

	middleware.RecordChatMessage(reply.Fallback)
	if err := s.conversationRepo.Log(bot.ID, models.SourceFreeText, message, reply.Answer, reply.Fallback); err != nil {
		utils.LogWarn("failed to log conversation", map[string]interface{}{
			"chatbot_id": bot.ID.String(),
			"error":      err.Error(),
		})
	}
	return reply, nil
}

// LogFAQSelection records a visitor tapping one of the suggested questions.
// The widget already holds the answer, so this only feeds the transcript and
// the counters.
func (s *ChatService) LogFAQSelection(bot *models.Chatbot, question, answer string) error {
	middleware.RecordFAQSelection()
	middleware.RecordChatMessage(false)
	return s.conversationRepo.Log(bot.ID, models.SourceFaqClick, question, answer, false)
}

// SubmitLead stores the visitor's contact form and emails the bot owner.
func (s *ChatService) SubmitLead(bot *models.Chatbot, req LeadRequest) (*models.Visitor, error) {
	visitor := &models.Visitor{
		ChatbotID: bot.ID,
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Problem:   req.Problem,
	}
	if err := s.visitorRepo.Create(visitor); err != nil {
		return nil, fmt.Errorf("failed to store visitor query: %w", err)
	}

	middleware.RecordLead()
	s.notifyOwner(bot, visitor)
	return visitor, nil
}

// Transcript returns the latest widget traffic for the caller's chatbot, used
// by the dashboard to review what visitors actually asked.
func (s *ChatService) Transcript(userID uuid.UUID, slug string, limit int) ([]models.Conversation, error) {
	bot, err := s.chatbotRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if bot.UserID != userID {
		return nil, ErrChatbotNotOwned
	}
	return s.conversationRepo.ListByChatbot(bot.ID.String(), limit)
}

func (s *ChatService) notifyOwner(bot *models.Chatbot, visitor *models.Visitor) {
	name, address, err := s.owners.OwnerContact(bot.UserID.String())
	if err != nil || address == "" {
		utils.LogWarn("lead notification skipped, owner unreachable", map[string]interface{}{
			"chatbot_id": bot.ID.String(),
		})
		return
	}

	subject := fmt.Sprintf("New visitor query for %s", bot.CompanyName)
	body := fmt.Sprintf(
		"Hi %s,\n\nA visitor left a question your chatbot could not answer.\n\nName: %s\nEmail: %s\nMobile: %s\nQuestion: %s\n\nYou can follow up from your dashboard.",
		name, visitor.Name, visitor.Email, visitor.Mobile, visitor.Problem,
	)
	if err := s.mailer.SendEmail(address, subject, body); err != nil {
		utils.LogWarn("lead notification email failed", map[string]interface{}{
			"chatbot_id": bot.ID.String(),
			"error":      err.Error(),
		})
	}
}

// matchEntry walks the entries in stored order and returns the first hit.
func matchEntry(entries []models.QAEntry, message string) *Reply {
	normalized := strings.ToLower(strings.TrimSpace(message))

	for i := range entries {
		if strings.ToLower(strings.TrimSpace(entries[i].Question)) == normalized {
			return &Reply{Answer: entries[i].Answer}
		}
	}
	for i := range entries {
		for _, keyword := range entries[i].Keywords {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw != "" && strings.Contains(normalized, kw) {
				return &Reply{Answer: entries[i].Answer}
			}
		}
	}
	return &Reply{Answer: FallbackReply, Fallback: true}
}

func decodeSocialLinks(raw []byte) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	links := map[string]string{}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil
	}
	return links
}
