package services

import (
	"fmt"

	"github.com/botdesk/botdesk-backend/internal/core/cache"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/botdesk/botdesk-backend/internal/shared/utils"
	"github.com/google/uuid"
)

// QAEntryRequest is the dashboard payload for creating or editing an entry.
// Keywords arrive as the form's comma-separated string; on an edit a nil
// Keywords (like a nil IsDisplay) means "leave unchanged" while an empty
// string clears the list.
type QAEntryRequest struct {
	ChatbotID string  `json:"chatbotId" validate:"required"`
	Question  string  `json:"question" validate:"required"`
	Answer    string  `json:"answer" validate:"required"`
	Keywords  *string `json:"keywords"`
	IsDisplay *bool   `json:"isDisplay"`
}

// QAEntryResponse mirrors the edit form: keywords go back out as the same
// comma-separated string they were entered as.
type QAEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	ChatbotID uuid.UUID `json:"chatbotId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Keywords  string    `json:"keywords"`
	IsDisplay bool      `json:"isDisplay"`
}

type QAService struct {
	repo        repositories.QARepo
	chatbotRepo repositories.ChatbotRepo
	cache       *cache.DisplayCache
}

func NewQAService(repo repositories.QARepo, chatbotRepo repositories.ChatbotRepo, displayCache *cache.DisplayCache) *QAService {
	return &QAService{
		repo:        repo,
		chatbotRepo: chatbotRepo,
		cache:       displayCache,
	}
}

func (s *QAService) Create(userID uuid.UUID, req QAEntryRequest) (*QAEntryResponse, error) {
	bot, err := s.ownedChatbot(userID, req.ChatbotID)
	if err != nil {
		return nil, err
	}

	entry := &models.QAEntry{
		ChatbotID: bot.ID,
		Question:  req.Question,
		Answer:    req.Answer,
		IsDisplay: true,
	}
	if req.Keywords != nil {
		entry.Keywords = ParseKeywords(*req.Keywords)
	}
	if req.IsDisplay != nil {
		entry.IsDisplay = *req.IsDisplay
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create qa entry: %w", err)
	}

	s.cache.Invalidate(bot.Slug)
	utils.LogInfo("qa entry created", map[string]interface{}{
		"chatbot_id": bot.ID.String(),
		"entry_id":   entry.ID.String(),
	})
	return toQAResponse(entry), nil
}

func (s *QAService) Update(userID uuid.UUID, entryID string, req QAEntryRequest) (*QAEntryResponse, error) {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	bot, err := s.ownedChatbot(userID, entry.ChatbotID.String())
	if err != nil {
		return nil, err
	}

	if req.Question != "" {
		entry.Question = req.Question
	}
	if req.Answer != "" {
		entry.Answer = req.Answer
	}
	if req.Keywords != nil {
		entry.Keywords = ParseKeywords(*req.Keywords)
	}
	if req.IsDisplay != nil {
		entry.IsDisplay = *req.IsDisplay
	}

	if err := s.repo.Update(entry); err != nil {
		return nil, fmt.Errorf("failed to update qa entry: %w", err)
	}

	s.cache.Invalidate(bot.Slug)
	return toQAResponse(entry), nil
}

func (s *QAService) Delete(userID uuid.UUID, entryID string) error {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return err
	}
	bot, err := s.ownedChatbot(userID, entry.ChatbotID.String())
	if err != nil {
		return err
	}

	if err := s.repo.Delete(entryID); err != nil {
		return err
	}

	s.cache.Invalidate(bot.Slug)
	return nil
}

func (s *QAService) ListByChatbot(userID uuid.UUID, chatbotID string) ([]QAEntryResponse, error) {
	if _, err := s.ownedChatbot(userID, chatbotID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByChatbot(chatbotID)
	if err != nil {
		return nil, err
	}

	responses := make([]QAEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, *toQAResponse(&entries[i]))
	}
	return responses, nil
}

func (s *QAService) ownedChatbot(userID uuid.UUID, chatbotID string) (*models.Chatbot, error) {
	bot, err := s.chatbotRepo.GetByID(chatbotID)
	if err != nil {
		return nil, err
	}
	if bot.UserID != userID {
		return nil, ErrChatbotNotOwned
	}
	return bot, nil
}

func toQAResponse(entry *models.QAEntry) *QAEntryResponse {
	return &QAEntryResponse{
		ID:        entry.ID,
		ChatbotID: entry.ChatbotID,
		Question:  entry.Question,
		Answer:    entry.Answer,
		Keywords:  JoinKeywords(entry.Keywords),
		IsDisplay: entry.IsDisplay,
	}
}
