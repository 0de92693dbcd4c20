package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/botdesk/botdesk-backend/internal/core/cache"
	"github.com/botdesk/botdesk-backend/internal/core/upload"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/botdesk/botdesk-backend/internal/shared/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrChatbotNotOwned = errors.New("chatbot does not belong to this user")

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CreateChatbotRequest is the payload for registering a new bot profile.
type CreateChatbotRequest struct {
	CompanyName    string            `json:"companyName" validate:"required"`
	Description    string            `json:"description"`
	WelcomeMessage string            `json:"welcomeMessage"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

// UpdateChatbotRequest carries the editable profile fields. Nil pointers mean
// "leave unchanged" so a partial PATCH does not wipe the rest of the profile.
type UpdateChatbotRequest struct {
	CompanyName    *string           `json:"companyName"`
	Description    *string           `json:"description"`
	WelcomeMessage *string           `json:"welcomeMessage"`
	SocialLinks    map[string]string `json:"socialLinks"`
}

type ChatbotService struct {
	repo     repositories.ChatbotRepo
	cache    *cache.DisplayCache
	uploader *upload.Service
}

func NewChatbotService(repo repositories.ChatbotRepo, displayCache *cache.DisplayCache, uploader *upload.Service) *ChatbotService {
	return &ChatbotService{
		repo:     repo,
		cache:    displayCache,
		uploader: uploader,
	}
}

func (s *ChatbotService) Create(userID uuid.UUID, req CreateChatbotRequest) (*models.Chatbot, error) {
	slug, err := s.uniqueSlug(req.CompanyName)
	if err != nil {
		return nil, err
	}

	bot := &models.Chatbot{
		UserID:         userID,
		Slug:           slug,
		CompanyName:    req.CompanyName,
		Description:    req.Description,
		WelcomeMessage: req.WelcomeMessage,
	}
	if req.SocialLinks != nil {
		links, err := encodeSocialLinks(req.SocialLinks)
		if err != nil {
			return nil, err
		}
		bot.SocialLinks = links
	}

	if err := s.repo.Create(bot); err != nil {
		return nil, fmt.Errorf("failed to create chatbot: %w", err)
	}

	utils.LogInfo("chatbot created", map[string]interface{}{
		"chatbot_id": bot.ID.String(),
		"slug":       bot.Slug,
	})
	return bot, nil
}

// Update applies a partial profile edit and drops the cached widget display so
// the next public fetch sees the change.
func (s *ChatbotService) Update(userID uuid.UUID, chatbotID string, req UpdateChatbotRequest, logo *multipart.FileHeader) (*models.Chatbot, error) {
	bot, err := s.ownedChatbot(userID, chatbotID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil && *req.CompanyName != "" {
		bot.CompanyName = *req.CompanyName
	}
	if req.Description != nil {
		bot.Description = *req.Description
	}
	if req.WelcomeMessage != nil {
		bot.WelcomeMessage = *req.WelcomeMessage
	}
	if req.SocialLinks != nil {
		links, err := encodeSocialLinks(req.SocialLinks)
		if err != nil {
			return nil, err
		}
		bot.SocialLinks = links
	}

	if logo != nil {
		result, err := s.uploader.UploadLogo(logo)
		if err != nil {
			return nil, fmt.Errorf("logo upload failed: %w", err)
		}
		bot.LogoURL = result.URL
	}

	if err := s.repo.Update(bot); err != nil {
		return nil, fmt.Errorf("failed to update chatbot: %w", err)
	}

	s.cache.Invalidate(bot.Slug)
	return bot, nil
}

func (s *ChatbotService) GetByID(id string) (*models.Chatbot, error) {
	return s.repo.GetByID(id)
}

func (s *ChatbotService) ListByUser(userID uuid.UUID) ([]models.Chatbot, error) {
	return s.repo.ListByUser(userID.String())
}

// ownedChatbot loads a bot and enforces that it belongs to the caller. Admins
// only ever operate on their own bots.
func (s *ChatbotService) ownedChatbot(userID uuid.UUID, chatbotID string) (*models.Chatbot, error) {
	bot, err := s.repo.GetByID(chatbotID)
	if err != nil {
		return nil, err
	}
	if bot.UserID != userID {
		return nil, ErrChatbotNotOwned
	}
	return bot, nil
}

// uniqueSlug derives a URL slug from the company name, appending a short
// suffix when the base form is already taken.
func (s *ChatbotService) uniqueSlug(companyName string) (string, error) {
	base := Slugify(companyName)
	if base == "" {
		base = "chatbot"
	}

	slug := base
	for attempt := 0; attempt < 5; attempt++ {
		exists, err := s.repo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
	}
	return "", errors.New("could not allocate a unique slug")
}

// Slugify lowercases and collapses non-alphanumeric runs into single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func encodeSocialLinks(links map[string]string) (datatypes.JSON, error) {
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("invalid social links: %w", err)
	}
	return datatypes.JSON(data), nil
}

// IsNotFound reports whether err is the storage layer's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
