package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
	"alfredoptarigan/mock-interview/internal/services"
)

type InterviewHandler struct {
	candidateRepo        repositories.CandidateRepository
	answerRepo           repositories.AnswerRepository
	questionService      services.QuestionService
	defaultQuestionCount int
	maxQuestionCount     int
}

func NewInterviewHandler(
	candidateRepo repositories.CandidateRepository,
	answerRepo repositories.AnswerRepository,
	questionService services.QuestionService,
	defaultQuestionCount int,
	maxQuestionCount int,
) *InterviewHandler {
	return &InterviewHandler{
		candidateRepo:        candidateRepo,
		answerRepo:           answerRepo,
		questionService:      questionService,
		defaultQuestionCount: defaultQuestionCount,
		maxQuestionCount:     maxQuestionCount,
	}
}

// HandleQuestions handles POST /candidates/:id/questions
func (h *InterviewHandler) HandleQuestions(c *fiber.Ctx) error {
	id, err := parseID(c, "candidate")
	if err != nil {
		return respondError(c, err)
	}

	var req models.GenerateQuestionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request payload")
		}
	}

	if req.NumQuestions == 0 {
		req.NumQuestions = h.defaultQuestionCount
	}
	if req.NumQuestions < 1 || req.NumQuestions > h.maxQuestionCount {
		return badRequest(c, fmt.Sprintf("num_questions must be between 1 and %d", h.maxQuestionCount))
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return respondError(c, lookupError("Candidate", err))
	}

	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		jobDescription = candidate.JobDescription
	}
	if jobDescription == "" {
		return badRequest(c, "Job description is required")
	}

	if strings.TrimSpace(candidate.ResumeText) == "" {
		return respondError(c, apperrors.NewNotFoundError("Resume text", nil))
	}

	set := h.questionService.Generate(c.UserContext(), candidate, services.QuestionRequest{
		JobDescription: jobDescription,
		PreviousAnswer: strings.TrimSpace(req.PreviousAnswer),
		NumQuestions:   req.NumQuestions,
		IsFollowUp:     req.IsFollowUp,
	})

	response := models.QuestionsResponse{
		Status:    statusSuccess,
		Questions: set.Questions,
	}
	if set.Fallback {
		response.Status = statusFallback
		response.Error = set.Reason
	}

	return c.JSON(response)
}

// HandleGenerate handles POST /generate
func (h *InterviewHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	text, err := h.questionService.Respond(c.UserContext(), req.Prompt)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":   statusSuccess,
		"response": text,
	})
}

// HandleStoreAnswers handles POST /candidates/:id/answers
func (h *InterviewHandler) HandleStoreAnswers(c *fiber.Ctx) error {
	id, err := parseID(c, "candidate")
	if err != nil {
		return respondError(c, err)
	}

	var req models.StoreAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if len(req.Answers) == 0 {
		return badRequest(c, "No answers provided")
	}

	if _, err := h.candidateRepo.FindByID(id); err != nil {
		return respondError(c, lookupError("Candidate", err))
	}

	set := &models.AnswerSet{
		CandidateID: id,
		Answers:     req.Answers,
	}
	if err := h.answerRepo.Create(set); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": statusSuccess,
		"id":     set.ID.String(),
	})
}
