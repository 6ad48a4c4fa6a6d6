package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/models"
)

var numberedLinePattern = regexp.MustCompile(`^\d+\.\s*.+`)

var fallbackQuestions = []string{
	"1. Why are you interested in this role?",
	"2. What are your key strengths for this role?",
	"3. How do you handle tight deadlines?",
	"4. Why do you want to work at our company?",
	"5. Describe a time you worked in a team.",
}

// ParseQuestions keeps the trimmed lines that start with "<number>.".
func ParseQuestions(text string) []string {
	var questions []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && numberedLinePattern.MatchString(line) {
			questions = append(questions, line)
		}
	}
	return questions
}

// FallbackQuestions returns at most n of the fixed generic questions.
func FallbackQuestions(n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(fallbackQuestions) {
		n = len(fallbackQuestions)
	}
	out := make([]string, n)
	copy(out, fallbackQuestions[:n])
	return out
}

type QuestionRequest struct {
	JobDescription string
	PreviousAnswer string
	NumQuestions   int
	IsFollowUp     bool
}

// QuestionSet is the outcome of a generation request. Fallback is set when
// the model output could not be used; Reason then says why.
type QuestionSet struct {
	Questions []string
	Fallback  bool
	Reason    string
}

type QuestionService interface {
	Generate(ctx context.Context, candidate *models.Candidate, req QuestionRequest) *QuestionSet
	Respond(ctx context.Context, prompt string) (string, error)
}

type questionService struct {
	geminiService    GeminiService
	knowledgeService KnowledgeService
	promptBuilder    *PromptBuilder
	maxRetries       int
}

func NewQuestionService(geminiService GeminiService, knowledgeService KnowledgeService, maxRetries int) QuestionService {
	return &questionService{
		geminiService:    geminiService,
		knowledgeService: knowledgeService,
		promptBuilder:    NewPromptBuilder(),
		maxRetries:       maxRetries,
	}
}

// Generate implements QuestionService.
func (s *questionService) Generate(ctx context.Context, candidate *models.Candidate, req QuestionRequest) *QuestionSet {
	companyContext := ""
	if s.knowledgeService != nil {
		kc, err := s.knowledgeService.CompanyContext(ctx, req.JobDescription, candidate.Company,
			DocTypeCompanyProfile, DocTypeRoleGuide)
		if err != nil {
			log.Printf("⚠️  Company knowledge unavailable: %v\n", err)
		} else {
			companyContext = kc
		}
	}

	prompt := s.promptBuilder.BuildQuestionsPrompt(QuestionPromptInput{
		ResumeText:     candidate.ResumeText,
		JobDescription: req.JobDescription,
		CompanyDetails: candidate.CompanyDetails,
		CompanyContext: companyContext,
		PreviousAnswer: req.PreviousAnswer,
		NumQuestions:   req.NumQuestions,
		IsFollowUp:     req.IsFollowUp,
	})

	text, err := s.geminiService.GenerateText(ctx, prompt, 0.9)
	if err != nil {
		return s.fallback(req.NumQuestions, err)
	}

	questions := ParseQuestions(text)
	log.Printf("📝 Parsed %d questions\n", len(questions))

	if len(questions) == 0 || len(questions) < req.NumQuestions {
		return s.fallback(req.NumQuestions, errors.New("gemini returned insufficient or malformed questions"))
	}

	return &QuestionSet{Questions: questions}
}

func (s *questionService) fallback(n int, err error) *QuestionSet {
	log.Printf("⚠️  Fallback due to error: %v\n", err)
	return &QuestionSet{
		Questions: FallbackQuestions(n),
		Fallback:  true,
		Reason:    err.Error(),
	}
}

// Respond implements QuestionService.
func (s *questionService) Respond(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperrors.NewInvalidInputError("Prompt is required")
	}

	text, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return "", apperrors.NewLLMFailedError("generate response", err)
	}

	return text, nil
}
