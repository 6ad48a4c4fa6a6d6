package services

import (
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/mock-interview/internal/namefinder"
)

type PDFParserService interface {
	ExtractTextWithMetaData(filepath string) (*PDFContent, error)
	ExtractFirstPage(filepath string) (*PDFPage, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

// PDFPage is the text layer of one page with its words sized by font.
type PDFPage struct {
	Text   string
	Tokens []namefinder.RecognizedToken
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages
			continue
		}

		textBuilder.WriteString(fmt.Sprintf("--- Page %d ---\n", pageIndex))
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// ExtractFirstPage reads the first page's text layer. Malformed content
// streams make the pdf package panic, so those are reported as errors.
func (p *pdfParserService) ExtractFirstPage(filePath string) (result *PDFPage, err error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, fmt.Errorf("malformed PDF content: %v", rec)
		}
	}()

	if r.NumPage() < 1 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("first page is empty")
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read page text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &PDFPage{
		Text:   text,
		Tokens: groupWords(page.Content().Text),
	}, nil
}

// groupWords joins consecutive glyph runs on the same baseline and font size
// into words. Whitespace, a baseline change or a size change ends a word.
func groupWords(runs []pdf.Text) []namefinder.RecognizedToken {
	var (
		tokens  []namefinder.RecognizedToken
		current strings.Builder
		size    float64
		baseY   float64
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, namefinder.RecognizedToken{Text: current.String(), Height: size})
			current.Reset()
		}
	}

	for _, run := range runs {
		if current.Len() > 0 && (math.Abs(run.Y-baseY) > 0.5 || math.Abs(run.FontSize-size) > 0.01) {
			flush()
		}

		for _, r := range run.S {
			if unicode.IsSpace(r) {
				flush()
				continue
			}
			if current.Len() == 0 {
				size = run.FontSize
				baseY = run.Y
			}
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
