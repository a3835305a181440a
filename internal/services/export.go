package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// ExportService renders saved decks and infographics into downloadable
// formats.
type ExportService struct {
	markdown goldmark.Markdown
}

func NewExportService() *ExportService {
	return &ExportService{markdown: goldmark.New()}
}

// ExportFormat describes one rendered download.
type ExportFormat struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (s *ExportService) DeckTXT(deck *models.FlashcardDeck, cards []models.FlashcardCard) *ExportFormat {
	var b strings.Builder
	b.WriteString(deck.Title)
	b.WriteString("\n\n")
	for i, card := range cards {
		fmt.Fprintf(&b, "Card %d:\nQ: %s\nA: %s\n\n", i+1, card.Question, card.Answer)
	}

	return &ExportFormat{
		FileName:    exportFileName(deck.Title, ".txt"),
		ContentType: "text/plain",
		Data:        []byte(b.String()),
	}
}

func (s *ExportService) DeckCSV(deck *models.FlashcardDeck, cards []models.FlashcardCard) *ExportFormat {
	var b strings.Builder
	b.WriteString("question,answer\n")
	for _, card := range cards {
		b.WriteString(csvField(card.Question))
		b.WriteString(",")
		b.WriteString(csvField(card.Answer))
		b.WriteString("\n")
	}

	return &ExportFormat{
		FileName:    exportFileName(deck.Title, ".csv"),
		ContentType: "text/csv",
		Data:        []byte(b.String()),
	}
}

func (s *ExportService) DeckXLSX(deck *models.FlashcardDeck, cards []models.FlashcardCard) (*ExportFormat, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Flashcards"
	f.SetSheetName("Sheet1", sheet)
	f.SetCellValue(sheet, "A1", "Question")
	f.SetCellValue(sheet, "B1", "Answer")

	for i, card := range cards {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), card.Question)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), card.Answer)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	return &ExportFormat{
		FileName:    exportFileName(deck.Title, ".xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func (s *ExportService) InfographicTXT(title string, rec *models.InfographicRecord) *ExportFormat {
	var b strings.Builder
	b.WriteString(rec.Title)
	b.WriteString("\n\n")
	b.WriteString(rec.Summary)
	b.WriteString("\n\nKey Points:\n")
	for _, p := range rec.KeyPoints {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString("\nStatistics:\n")
	for _, st := range rec.Stats {
		fmt.Fprintf(&b, "- %s: %g\n", st.Label, st.Value)
	}

	return &ExportFormat{
		FileName:    exportFileName(title, ".txt"),
		ContentType: "text/plain",
		Data:        []byte(b.String()),
	}
}

// InfographicHTML renders the record as a standalone HTML document, built
// from markdown so lists and headings come out clean.
func (s *ExportService) InfographicHTML(title string, rec *models.InfographicRecord) (*ExportFormat, error) {
	var md strings.Builder
	md.WriteString("# ")
	md.WriteString(rec.Title)
	md.WriteString("\n\n")
	md.WriteString(rec.Summary)
	md.WriteString("\n\n## Key Points\n\n")
	for _, p := range rec.KeyPoints {
		md.WriteString("- ")
		md.WriteString(p)
		md.WriteString("\n")
	}
	md.WriteString("\n## Statistics\n\n")
	for _, st := range rec.Stats {
		fmt.Fprintf(&md, "- **%s**: %g\n", st.Label, st.Value)
	}

	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(md.String()), &body); err != nil {
		return nil, fmt.Errorf("failed to render infographic html: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	doc.WriteString(htmlEscape(rec.Title))
	doc.WriteString("</title>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	return &ExportFormat{
		FileName:    exportFileName(title, ".html"),
		ContentType: "text/html",
		Data:        doc.Bytes(),
	}, nil
}

func exportFileName(title, ext string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "export"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if name == "" {
		name = "export"
	}
	return name + ext
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
