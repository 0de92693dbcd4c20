package services

import (
	"fmt"
	"io"
	"time"

	"github.com/botdesk/botdesk-backend/internal/core/export"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/google/uuid"
)

// VisitorPage is one page of the dashboard's issue listing.
type VisitorPage struct {
	Visitors []models.Visitor `json:"visitors"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type VisitorService struct {
	repo        repositories.VisitorRepo
	chatbotRepo repositories.ChatbotRepo
}

func NewVisitorService(repo repositories.VisitorRepo, chatbotRepo repositories.ChatbotRepo) *VisitorService {
	return &VisitorService{
		repo:        repo,
		chatbotRepo: chatbotRepo,
	}
}

func (s *VisitorService) List(userID uuid.UUID, slug string, q repositories.VisitorQuery) (*VisitorPage, error) {
	bot, err := s.ownedChatbot(userID, slug)
	if err != nil {
		return nil, err
	}

	visitors, total, err := s.repo.List(bot.ID.String(), q)
	if err != nil {
		return nil, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	return &VisitorPage{
		Visitors: visitors,
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
	}, nil
}

func (s *VisitorService) UpdateStatus(userID uuid.UUID, slug, visitorID string, solved bool) error {
	bot, err := s.ownedChatbot(userID, slug)
	if err != nil {
		return err
	}
	return s.repo.UpdateStatus(bot.ID.String(), visitorID, solved)
}

// Export writes every visitor query for the bot as a spreadsheet.
func (s *VisitorService) Export(userID uuid.UUID, slug string, w io.Writer) (string, error) {
	bot, err := s.ownedChatbot(userID, slug)
	if err != nil {
		return "", err
	}
	visitors, err := s.repo.ListAll(bot.ID.String())
	if err != nil {
		return "", err
	}

	rows := make([][]interface{}, 0, len(visitors))
	for _, v := range visitors {
		status := "Pending"
		if v.Solved {
			status = "Solved"
		}
		rows = append(rows, []interface{}{
			v.CreatedAt.Format("2006-01-02 15:04"),
			v.Name,
			v.Email,
			v.Mobile,
			v.Problem,
			status,
		})
	}

	exporter := export.NewExcelExporter()
	data := &export.Data{
		Title:     fmt.Sprintf("Visitor Queries - %s", bot.CompanyName),
		Subtitle:  fmt.Sprintf("Exported %s", time.Now().Format("2 Jan 2006")),
		CreatedAt: time.Now(),
		Headers:   []string{"Date", "Name", "Email", "Mobile", "Question", "Status"},
		Rows:      rows,
		Style:     export.DefaultStyle(),
	}
	if err := exporter.Export(data, w); err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("visitors_%s_%s%s", bot.Slug, time.Now().Format("20060102"), exporter.FileExtension())
	return filename, nil
}

func (s *VisitorService) ownedChatbot(userID uuid.UUID, slug string) (*models.Chatbot, error) {
	bot, err := s.chatbotRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if bot.UserID != userID {
		return nil, ErrChatbotNotOwned
	}
	return bot, nil
}
