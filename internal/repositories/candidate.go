package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/mock-interview/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindAll() ([]models.Candidate, error)
	Confirm(id uuid.UUID, data *CandidateConfirmData) (*models.Candidate, error)
}

type CandidateConfirmData struct {
	Name           string
	Email          string
	Phone          string
	CompanyDetails string
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// FindAll implements CandidateRepository.
func (r *candidateRepository) FindAll() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// Confirm implements CandidateRepository.
func (r *candidateRepository) Confirm(id uuid.UUID, data *CandidateConfirmData) (*models.Candidate, error) {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":            data.Name,
			"email":           data.Email,
			"phone":           data.Phone,
			"company_details": data.CompanyDetails,
			"confirmed":       true,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to confirm candidate: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}

	return r.FindByID(id)
}
