package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/repositories"
	"alfredoptarigan/mock-interview/internal/services"
)

var requiredCandidateFields = []string{"name", "phone", "email", "jobDesc", "company"}

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	resumeService services.ResumeService
	maxFileSize   int64
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	resumeService services.ResumeService,
	maxFileSize int64,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		resumeService: resumeService,
		maxFileSize:   maxFileSize,
	}
}

// HandleSubmit handles POST /candidates
func (h *CandidateHandler) HandleSubmit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Missing required fields")
	}

	resumes, ok := form.File["resume"]
	if !ok || len(resumes) == 0 {
		return badRequest(c, "Missing required fields")
	}
	for _, field := range requiredCandidateFields {
		if values, ok := form.Value[field]; !ok || len(values) == 0 {
			return badRequest(c, "Missing required fields")
		}
	}

	resume := resumes[0]
	if resume.Filename == "" {
		return badRequest(c, "No selected file")
	}
	if h.maxFileSize > 0 && resume.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	candidate, err := h.resumeService.Submit(c.UserContext(), resume, services.CandidateInput{
		Name:           form.Value["name"][0],
		Phone:          form.Value["phone"][0],
		Email:          form.Value["email"][0],
		Company:        form.Value["company"][0],
		JobDescription: form.Value["jobDesc"][0],
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CandidateResponse{
		Status:    statusSuccess,
		Candidate: *candidate,
	})
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": statusSuccess,
		"data":   candidates,
	})
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "candidate")
	if err != nil {
		return respondError(c, err)
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		return respondError(c, lookupError("Candidate", err))
	}

	return c.JSON(models.CandidateResponse{
		Status:    statusSuccess,
		Candidate: *candidate,
	})
}

// HandleConfirm handles PUT /candidates/:id/confirm
func (h *CandidateHandler) HandleConfirm(c *fiber.Ctx) error {
	id, err := parseID(c, "candidate")
	if err != nil {
		return respondError(c, err)
	}

	var req models.ConfirmCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	candidate, err := h.candidateRepo.Confirm(id, &repositories.CandidateConfirmData{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CompanyDetails: req.CompanyDetails,
	})
	if err != nil {
		return respondError(c, lookupError("Candidate", err))
	}

	return c.JSON(models.CandidateResponse{
		Status:    statusSuccess,
		Candidate: *candidate,
	})
}
