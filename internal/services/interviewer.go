package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
)

const (
	minScore = 0
	maxScore = 10
)

type InterviewerService interface {
	GenerateReport(ctx context.Context, reportID uuid.UUID) error
}

type interviewerService struct {
	reportRepo       repositories.ReportRepository
	candidateRepo    repositories.CandidateRepository
	answerRepo       repositories.AnswerRepository
	geminiService    GeminiService
	knowledgeService KnowledgeService
	promptBuilder    *PromptBuilder
	maxRetries       int
}

func NewInterviewerService(
	reportRepo repositories.ReportRepository,
	candidateRepo repositories.CandidateRepository,
	answerRepo repositories.AnswerRepository,
	geminiService GeminiService,
	knowledgeService KnowledgeService,
	maxRetries int,
) InterviewerService {
	return &interviewerService{
		reportRepo:       reportRepo,
		candidateRepo:    candidateRepo,
		answerRepo:       answerRepo,
		geminiService:    geminiService,
		knowledgeService: knowledgeService,
		promptBuilder:    NewPromptBuilder(),
		maxRetries:       maxRetries,
	}
}

// SummaryResult is the model's JSON verdict. Scores arrive as numbers that
// may be fractional and are normalized by Normalize.
type SummaryResult struct {
	Communication   float64  `json:"communication"`
	Confidence      float64  `json:"confidence"`
	DomainKnowledge float64  `json:"domain_knowledge"`
	OverallScore    float64  `json:"overall_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Feedback        string   `json:"feedback"`
}

// Normalize rounds and clamps every score to 0..10. An overall score of zero
// is replaced by the rounded mean of the three dimension scores.
func (s *SummaryResult) Normalize() *repositories.ReportUpdateData {
	communication := clampScore(s.Communication)
	confidence := clampScore(s.Confidence)
	domain := clampScore(s.DomainKnowledge)

	overall := clampScore(s.OverallScore)
	if overall == 0 {
		overall = clampScore(float64(communication+confidence+domain) / 3)
	}

	return &repositories.ReportUpdateData{
		Communication:   communication,
		Confidence:      confidence,
		DomainKnowledge: domain,
		OverallScore:    overall,
		Strengths:       nonEmpty(s.Strengths),
		Weaknesses:      nonEmpty(s.Weaknesses),
		Feedback:        strings.TrimSpace(s.Feedback),
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return minScore
	}
	r := int(math.Round(v))
	if r < minScore {
		return minScore
	}
	if r > maxScore {
		return maxScore
	}
	return r
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GenerateReport implements InterviewerService.
func (s *interviewerService) GenerateReport(ctx context.Context, reportID uuid.UUID) error {
	if err := s.reportRepo.UpdateStatus(reportID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting report generation for job ID: %s\n", reportID)

	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, err.Error())
		return fmt.Errorf("failed to get report: %w", err)
	}

	candidate, err := s.candidateRepo.FindByID(report.CandidateID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Candidate not found: %v", err))
		return fmt.Errorf("failed to get candidate: %w", err)
	}

	answerSet, err := s.answerRepo.FindByID(report.AnswerSetID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Answers not found: %v", err))
		return fmt.Errorf("failed to get answers: %w", err)
	}

	if len(answerSet.Answers) == 0 {
		s.reportRepo.UpdateError(reportID, "Answers are empty")
		return fmt.Errorf("answer set %s is empty", answerSet.ID)
	}

	transcript := s.promptBuilder.BuildTranscript(answerSet.Answers)

	log.Println("🔍 Retrieving company knowledge for the summary...")
	companyContext := ""
	if s.knowledgeService != nil {
		kc, err := s.knowledgeService.CompanyContext(ctx, candidate.JobDescription, candidate.Company,
			DocTypeRoleGuide, DocTypeInterviewRubric)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to retrieve company knowledge: %v\n", err)
		} else {
			companyContext = kc
		}
	}

	log.Println("🤖 Summarizing interview with LLM...")
	prompt := s.promptBuilder.BuildSummaryPrompt(candidate.ResumeText, candidate.JobDescription,
		candidate.CompanyDetails, companyContext, transcript)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to generate summary: %v", err))
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	var summary SummaryResult
	if err := parseJSONResponse(response, &summary); err != nil {
		log.Printf("❌ Failed to parse summary response: %v", err)
		s.reportRepo.UpdateError(reportID, "Failed to parse summary")
		return fmt.Errorf("failed to parse summary: %w", err)
	}

	log.Println("💾 Saving interview report...")
	if err := s.reportRepo.UpdateResult(reportID, summary.Normalize()); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Report completed successfully for job ID: %s\n", reportID)
	return nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON strips markdown fences and returns the outermost JSON object or array.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
