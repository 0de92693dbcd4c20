package export

import (
	"io"
	"time"
)

// Exporter is the interface for all export formats
type Exporter interface {
	Export(data *Data, writer io.Writer) error
	ContentType() string
	FileExtension() string
}

// Data is the tabular payload handed to an exporter.
type Data struct {
	Title     string
	Subtitle  string
	CreatedAt time.Time
	Headers   []string
	Rows      [][]interface{}
	Style     Style
}

// Style defines rendering options shared by the exporters.
type Style struct {
	Orientation   string // "portrait" or "landscape"
	HeaderBgColor string // hex
	AlternateRows bool
	RowBgColor    string // hex, even rows
	FontSize      float64
	FreezeHeader  bool
	ColumnWidths  map[int]float64
}

// DefaultStyle returns the house style used by every export surface.
func DefaultStyle() Style {
	return Style{
		Orientation:   "portrait",
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor:    "#F2F2F2",
		FontSize:      10,
		FreezeHeader:  true,
		ColumnWidths:  make(map[int]float64),
	}
}
