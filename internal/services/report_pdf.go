package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"alfredoptarigan/mock-interview/internal/models"
)

const (
	pageHeight   = 792.0 // Letter, points
	topMargin    = 42.0
	bottomMargin = 50.0
	leftColumn   = 100.0
	indentColumn = 120.0
	textWidth    = 612.0 - indentColumn - 60.0
)

type ReportRenderer interface {
	Render(w io.Writer, candidate *models.Candidate, report *models.ReportData, date time.Time) error
}

type reportRenderer struct{}

func NewReportRenderer() ReportRenderer {
	return &reportRenderer{}
}

// Render implements ReportRenderer.
func (r *reportRenderer) Render(w io.Writer, candidate *models.Candidate, report *models.ReportData, date time.Time) error {
	pdf := buildReportPDF(candidate, report, date)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report PDF: %w", err)
	}
	return nil
}

type reportWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (rw *reportWriter) line(x float64, text string, advance float64) {
	rw.y += advance
	if rw.y > pageHeight-bottomMargin {
		rw.pdf.AddPage()
		rw.pdf.SetFont("Helvetica", "", 12)
		rw.y = topMargin
	}
	rw.pdf.Text(x, rw.y, rw.tr(text))
}

// wrapped writes text word by word, starting a new line whenever the next
// word would run past textWidth.
func (rw *reportWriter) wrapped(x float64, text string, advance float64) {
	words := strings.Fields(text)
	if len(words) == 0 {
		rw.line(x, "", advance)
		return
	}

	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if rw.pdf.GetStringWidth(rw.tr(candidate)) > textWidth {
			rw.line(x, current, advance)
			advance = 15
			current = word
			continue
		}
		current = candidate
	}
	rw.line(x, current, advance)
}

func buildReportPDF(candidate *models.Candidate, report *models.ReportData, date time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, bottomMargin)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	rw := &reportWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		y:   topMargin,
	}

	name, company := "Unknown", "Unknown"
	if candidate != nil {
		if candidate.Name != "" {
			name = candidate.Name
		}
		if candidate.Company != "" {
			company = candidate.Company
		}
	}

	rw.line(leftColumn, "Interview Report", 0)
	rw.line(leftColumn, "Name: "+name, 30)
	rw.line(leftColumn, "Company: "+company, 20)
	rw.line(leftColumn, "Date: "+date.Format("2006-01-02"), 20)

	rw.line(leftColumn, "Scores:", 30)
	rw.line(indentColumn, fmt.Sprintf("Communication: %d/10", report.Communication), 20)
	rw.line(indentColumn, fmt.Sprintf("Confidence: %d/10", report.Confidence), 20)
	rw.line(indentColumn, fmt.Sprintf("Domain Knowledge: %d/10", report.DomainKnowledge), 20)
	rw.line(indentColumn, fmt.Sprintf("Overall Score: %d/10", report.OverallScore), 20)

	rw.line(leftColumn, "Strengths:", 30)
	for _, strength := range report.Strengths {
		rw.wrapped(indentColumn, "- "+strength, 20)
	}

	rw.line(leftColumn, "Weaknesses:", 30)
	for _, weakness := range report.Weaknesses {
		rw.wrapped(indentColumn, "- "+weakness, 20)
	}

	rw.line(leftColumn, "Feedback:", 30)
	advance := 20.0
	for _, paragraph := range strings.Split(report.Feedback, "\n") {
		rw.wrapped(indentColumn, paragraph, advance)
		advance = 15
	}

	return pdf
}
