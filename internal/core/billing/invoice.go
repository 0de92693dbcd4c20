package billing

import (
	"fmt"
	"io"
	"time"

	"github.com/botdesk/botdesk-backend/internal/core/export"
	"github.com/botdesk/botdesk-backend/internal/models"
)

// WriteInvoice renders a renewal receipt as PDF.
func WriteInvoice(renewal *models.Renewal, userName, userEmail string, w io.Writer) error {
	data := &export.Data{
		Title:     "Subscription Renewal Invoice",
		Subtitle:  fmt.Sprintf("Invoice %s - %s <%s>", renewal.ID.String()[:8], userName, userEmail),
		CreatedAt: time.Now(),
		Headers:   []string{"Description", "Months", "Unit Price", "Amount", "Valid Until"},
		Rows: [][]interface{}{
			{
				"Chatbot subscription renewal",
				renewal.Months,
				fmt.Sprintf("%.2f", MonthlyPrice),
				fmt.Sprintf("%.2f", renewal.Amount),
				renewal.NewEndDate.Format("2006-01-02"),
			},
		},
		Style: export.DefaultStyle(),
	}
	return export.NewPDFExporter().Export(data, w)
}
