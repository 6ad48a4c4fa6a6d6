package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/mock-interview/internal/models"
)

type ReportRepository interface {
	Create(report *models.InterviewReport) error
	FindByID(id uuid.UUID) (*models.InterviewReport, error)
	UpdateStatus(id uuid.UUID, status models.ReportStatus) error
	UpdateResult(id uuid.UUID, result *ReportUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.InterviewReport, error)
}

type ReportUpdateData struct {
	Communication   int
	Confidence      int
	DomainKnowledge int
	OverallScore    int
	Strengths       []string
	Weaknesses      []string
	Feedback        string
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.InterviewReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uuid.UUID) (*models.InterviewReport, error) {
	var report models.InterviewReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	return r.update(id, map[string]interface{}{
		"status": status,
	})
}

func (r *reportRepository) UpdateResult(id uuid.UUID, data *ReportUpdateData) error {
	// Updates through a struct so the JSON serializer runs for the list columns.
	feedback := data.Feedback
	result := r.db.Model(&models.InterviewReport{ID: id}).
		Select("status", "communication", "confidence", "domain_knowledge", "overall_score",
			"strengths", "weaknesses", "feedback", "updated_at").
		Updates(&models.InterviewReport{
			Status:          models.StatusCompleted,
			Communication:   &data.Communication,
			Confidence:      &data.Confidence,
			DomainKnowledge: &data.DomainKnowledge,
			OverallScore:    &data.OverallScore,
			Strengths:       data.Strengths,
			Weaknesses:      data.Weaknesses,
			Feedback:        &feedback,
			UpdatedAt:       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *reportRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
	})
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.InterviewReport, error) {
	var reports []models.InterviewReport
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.InterviewReport{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}

	return nil
}
