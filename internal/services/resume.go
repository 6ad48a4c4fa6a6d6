package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"alfredoptarigan/mock-interview/internal/apperrors"
	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/namefinder"
	"alfredoptarigan/mock-interview/internal/repositories"
)

// CandidateInput holds the applicant fields submitted with a résumé.
type CandidateInput struct {
	Name           string
	Phone          string
	Email          string
	Company        string
	JobDescription string
}

type ResumeService interface {
	Submit(ctx context.Context, file *multipart.FileHeader, input CandidateInput) (*models.Candidate, error)
}

type resumeService struct {
	storage        StorageService
	ocr            OCRService
	candidateRepo  repositories.CandidateRepository
	companyTagline string
}

func NewResumeService(storage StorageService, ocr OCRService, candidateRepo repositories.CandidateRepository, companyTagline string) ResumeService {
	return &resumeService{
		storage:        storage,
		ocr:            ocr,
		candidateRepo:  candidateRepo,
		companyTagline: companyTagline,
	}
}

// CompanyDetails describes the hiring company for prompts.
func CompanyDetails(company, tagline string) string {
	return fmt.Sprintf("%s, %s", company, tagline)
}

// Submit implements ResumeService. The uploaded file is removed on every
// path once it has been written.
func (s *resumeService) Submit(ctx context.Context, file *multipart.FileHeader, input CandidateInput) (*models.Candidate, error) {
	if file == nil || file.Filename == "" {
		return nil, apperrors.NewInvalidInputError("No selected file")
	}
	if !AllowedFile(file.Filename) {
		return nil, apperrors.NewUnsupportedFormatError(file.Filename)
	}

	input = trimInput(input)

	filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, err
	}
	log.Printf("📁 Saved file: %s\n", filepath.Base(filePath))

	defer func() {
		if err := s.storage.DeleteFile(filePath); err != nil {
			log.Printf("⚠️  Failed to remove temporary file: %v\n", err)
		}
	}()

	result, err := s.ocr.Recognize(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	detection := namefinder.Detect(result.Text, result.Tokens)

	finalName := input.Name
	if finalName == "" {
		finalName = detection.Name
	}

	candidate := &models.Candidate{
		Name:             finalName,
		DetectedName:     detection.Name,
		NameSource:       string(detection.Source),
		Phone:            input.Phone,
		Email:            input.Email,
		Company:          input.Company,
		JobDescription:   input.JobDescription,
		CompanyDetails:   CompanyDetails(input.Company, s.companyTagline),
		ResumeText:       CleanText(result.Text),
		OriginalFileName: filepath.Base(file.Filename),
	}

	if err := s.candidateRepo.Create(candidate); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}

	log.Printf("✅ Candidate %s created (name source: %s, ocr: %s)\n", candidate.ID, detection.Source, result.Source)
	return candidate, nil
}

func trimInput(in CandidateInput) CandidateInput {
	return CandidateInput{
		Name:           strings.TrimSpace(in.Name),
		Phone:          strings.TrimSpace(in.Phone),
		Email:          strings.TrimSpace(in.Email),
		Company:        strings.TrimSpace(in.Company),
		JobDescription: strings.TrimSpace(in.JobDescription),
	}
}
