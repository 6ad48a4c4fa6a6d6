package handlers

import (
	"bytes"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
	"alfredoptarigan/mock-interview/internal/services"
)

type ReportHandler struct {
	reportRepo    repositories.ReportRepository
	candidateRepo repositories.CandidateRepository
	answerRepo    repositories.AnswerRepository
	renderer      services.ReportRenderer
	worker        services.Worker
}

func NewReportHandler(
	reportRepo repositories.ReportRepository,
	candidateRepo repositories.CandidateRepository,
	answerRepo repositories.AnswerRepository,
	renderer services.ReportRenderer,
	worker services.Worker,
) *ReportHandler {
	return &ReportHandler{
		reportRepo:    reportRepo,
		candidateRepo: candidateRepo,
		answerRepo:    answerRepo,
		renderer:      renderer,
		worker:        worker,
	}
}

// HandleCreate handles POST /candidates/:id/reports
func (h *ReportHandler) HandleCreate(c *fiber.Ctx) error {
	candidateID, err := parseID(c, "candidate")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return respondError(c, lookupError("Candidate", err))
	}

	answers, err := h.answerRepo.FindLatestByCandidate(candidateID)
	if err != nil {
		return respondError(c, lookupError("Answers", err))
	}
	if len(answers.Answers) == 0 {
		return respondError(c, apperrors.NewNotFoundError("Answers", nil))
	}

	report := &models.InterviewReport{
		CandidateID: candidateID,
		AnswerSetID: answers.ID,
		Status:      models.StatusQueued,
	}
	if err := h.reportRepo.Create(report); err != nil {
		return respondError(c, err)
	}

	h.worker.EnqueueJob(report.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ReportJobResponse{
		ID:     report.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGet handles GET /reports/:id
func (h *ReportHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return respondError(c, lookupError("Report", err))
	}

	response := models.ReportResponse{
		ID:     report.ID.String(),
		Status: string(report.Status),
	}

	if report.Status == models.StatusCompleted {
		response.Report = report.ToReportData()
	}

	if report.Status == models.StatusFailed && report.ErrorMessage != nil {
		response.ErrorMessage = report.ErrorMessage
	}

	return c.JSON(response)
}

// HandleDownload handles GET /reports/:id/pdf
func (h *ReportHandler) HandleDownload(c *fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return respondError(c, lookupError("Report", err))
	}

	if report.Status != models.StatusCompleted {
		return respondError(c, apperrors.NewConflictError("Report is "+string(report.Status)+", not completed"))
	}

	candidate, err := h.candidateRepo.FindByID(report.CandidateID)
	if err != nil {
		log.Printf("⚠️  Candidate for report %s unavailable: %v\n", id, err)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, candidate, report.ToReportData(), time.Now()); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=interview_report.pdf")
	return c.Send(buf.Bytes())
}
