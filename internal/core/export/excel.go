package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Sheet1"}
}

// Export exports data to XLSX
func (e *ExcelExporter) Export(data *Data, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	row := 1
	if data.Title != "" {
		f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", row), data.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14},
		})
		f.SetCellStyle(e.sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
		row++
		if data.Subtitle != "" {
			f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", row), data.Subtitle)
			row++
		}
		row++ // blank separator row
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: data.Style.FontSize},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{data.Style.HeaderBgColor}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	for col, header := range data.Headers {
		cell := columnName(col+1) + strconv.Itoa(row)
		f.SetCellValue(e.sheetName, cell, header)
		f.SetCellStyle(e.sheetName, cell, cell, headerStyle)
		if width, ok := data.Style.ColumnWidths[col]; ok {
			f.SetColWidth(e.sheetName, columnName(col+1), columnName(col+1), width)
		}
	}
	row++

	evenStyle := 0
	if data.Style.AlternateRows {
		evenStyle, _ = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{data.Style.RowBgColor}},
		})
	}

	for i, r := range data.Rows {
		for col, value := range r {
			cell := columnName(col+1) + strconv.Itoa(row)
			f.SetCellValue(e.sheetName, cell, value)
			if data.Style.AlternateRows && i%2 == 1 {
				f.SetCellStyle(e.sheetName, cell, cell, evenStyle)
			}
		}
		row++
	}

	if data.Style.FreezeHeader && len(data.Rows) > 0 {
		f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}

	return f.Write(writer)
}

// ContentType returns the XLSX MIME type
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension
func (e *ExcelExporter) FileExtension() string {
	return "xlsx"
}

// columnName converts a 1-based column number to its Excel name (A, B, ... AA)
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
