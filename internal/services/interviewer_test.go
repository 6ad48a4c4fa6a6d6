package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", in: "Here you go: {\"a\":{\"b\":2}} thanks", want: `{"a":{"b":2}}`},
		{name: "array", in: "[1, 2]", want: "[1, 2]"},
		{name: "nothing", in: "  no json  ", want: "no json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryResultNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      SummaryResult
		overall int
		scores  [3]int
	}{
		{name: "in range", in: SummaryResult{Communication: 7, Confidence: 6, DomainKnowledge: 8, OverallScore: 7}, overall: 7, scores: [3]int{7, 6, 8}},
		{name: "clamped", in: SummaryResult{Communication: 12, Confidence: -3, DomainKnowledge: 9.6, OverallScore: 42}, overall: 10, scores: [3]int{10, 0, 10}},
		{name: "missing overall uses mean", in: SummaryResult{Communication: 8, Confidence: 7, DomainKnowledge: 9}, overall: 8, scores: [3]int{8, 7, 9}},
		{name: "mean rounds", in: SummaryResult{Communication: 5, Confidence: 5, DomainKnowledge: 6}, overall: 5, scores: [3]int{5, 5, 6}},
		{name: "all zero", in: SummaryResult{}, overall: 0, scores: [3]int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.OverallScore != tt.overall {
				t.Errorf("overall = %d, want %d", got.OverallScore, tt.overall)
			}
			if [3]int{got.Communication, got.Confidence, got.DomainKnowledge} != tt.scores {
				t.Errorf("scores = %d %d %d, want %v", got.Communication, got.Confidence, got.DomainKnowledge, tt.scores)
			}
		})
	}

	got := (&SummaryResult{Strengths: []string{" Clear ", "", "  "}, Feedback: " ok "}).Normalize()
	if len(got.Strengths) != 1 || got.Strengths[0] != "Clear" || got.Feedback != "ok" {
		t.Errorf("unexpected cleanup %+v", got)
	}
}

type interviewFixture struct {
	reports    *fakeReportRepo
	candidates *fakeCandidateRepo
	answers    *fakeAnswerRepo
	reportID   uuid.UUID
}

func newInterviewFixture(answers []models.QuestionAnswer) *interviewFixture {
	candidate := testCandidate()
	candidate.ID = uuid.New()
	set := &models.AnswerSet{ID: uuid.New(), CandidateID: candidate.ID, Answers: answers}
	report := &models.InterviewReport{ID: uuid.New(), CandidateID: candidate.ID, AnswerSetID: set.ID, Status: models.StatusQueued}

	return &interviewFixture{
		reports:    newFakeReportRepo(report),
		candidates: newFakeCandidateRepo(candidate),
		answers:    newFakeAnswerRepo(set),
		reportID:   report.ID,
	}
}

func TestInterviewerServiceGenerateReport(t *testing.T) {
	fx := newInterviewFixture([]models.QuestionAnswer{
		{Question: "1. Why this role?", Answer: "I love building XR apps."},
		{Question: "2. Hardest bug?", Answer: "A race in the render thread."},
	})
	gemini := &fakeGemini{text: "```json\n{\"communication\": 8, \"confidence\": 7, \"domain_knowledge\": 9, \"overall_score\": 0, \"strengths\": [\"Clear examples\"], \"weaknesses\": [\"Short answers\"], \"feedback\": \"Solid interview.\"}\n```"}
	svc := NewInterviewerService(fx.reports, fx.candidates, fx.answers, gemini, &fakeKnowledge{context: "Rubric: depth matters."}, 1)

	if err := svc.GenerateReport(context.Background(), fx.reportID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, _ := fx.reports.FindByID(fx.reportID)
	if report.Status != models.StatusCompleted {
		t.Fatalf("expected completed, got %s", report.Status)
	}
	if *report.OverallScore != 8 || *report.DomainKnowledge != 9 {
		t.Errorf("unexpected scores overall=%d domain=%d", *report.OverallScore, *report.DomainKnowledge)
	}
	if *report.Feedback != "Solid interview." {
		t.Errorf("unexpected feedback %q", *report.Feedback)
	}
	if fx.reports.history[0] != models.StatusProcessing {
		t.Errorf("expected processing first, got %v", fx.reports.history)
	}

	prompt := gemini.lastPrompt()
	for _, want := range []string{"Q1: 1. Why this role?\nA1: I love building XR apps.", "Q2: 2. Hardest bug?", "Rubric: depth matters.", "Jane Smith"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestInterviewerServiceGenerateReportFailures(t *testing.T) {
	answers := []models.QuestionAnswer{{Question: "Q", Answer: "A"}}
	tests := []struct {
		name    string
		answers []models.QuestionAnswer
		gemini  *fakeGemini
		message string
	}{
		{name: "unparseable", answers: answers, gemini: &fakeGemini{text: "I cannot score this."}, message: "Failed to parse summary"},
		{name: "model error", answers: answers, gemini: &fakeGemini{err: errors.New("quota")}, message: "Failed to generate summary"},
		{name: "empty answers", answers: nil, gemini: &fakeGemini{}, message: "Answers are empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newInterviewFixture(tt.answers)
			svc := NewInterviewerService(fx.reports, fx.candidates, fx.answers, tt.gemini, &fakeKnowledge{err: errors.New("down")}, 1)

			if err := svc.GenerateReport(context.Background(), fx.reportID); err == nil {
				t.Fatal("expected error")
			}

			report, _ := fx.reports.FindByID(fx.reportID)
			if report.Status != models.StatusFailed {
				t.Fatalf("expected failed, got %s", report.Status)
			}
			if report.ErrorMessage == nil || !strings.HasPrefix(*report.ErrorMessage, tt.message) {
				t.Errorf("unexpected error message %v", report.ErrorMessage)
			}
		})
	}
}

func TestInterviewerServiceUnknownReport(t *testing.T) {
	fx := newInterviewFixture(nil)
	svc := NewInterviewerService(fx.reports, fx.candidates, fx.answers, &fakeGemini{}, nil, 1)
	if err := svc.GenerateReport(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown report")
	}
}
