package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter implements PDF export using gofpdf
type PDFExporter struct {
	pageSize string
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{pageSize: "A4"}
}

// Export exports data to PDF
func (p *PDFExporter) Export(data *Data, writer io.Writer) error {
	orientation := "P"
	if data.Style.Orientation == "landscape" {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", p.pageSize, "")
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, data.Title)
		pdf.Ln(10)
	}
	if data.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 7, data.Subtitle)
		pdf.Ln(9)
	}
	if !data.CreatedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, "Generated: "+data.CreatedAt.Format("2006-01-02 15:04"))
		pdf.Ln(9)
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	colW := usable / float64(len(data.Headers))

	pdf.SetFont("Arial", "B", data.Style.FontSize)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for _, header := range data.Headers {
		pdf.CellFormat(colW, 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", data.Style.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range data.Rows {
		fill := data.Style.AlternateRows && i%2 == 1
		pdf.SetFillColor(242, 242, 242)
		for _, value := range row {
			pdf.CellFormat(colW, 7, fmt.Sprintf("%v", value), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(writer)
}

// ContentType returns the PDF MIME type
func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

// FileExtension returns the file extension
func (p *PDFExporter) FileExtension() string {
	return "pdf"
}
