package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/mock-interview/internal/models"
)

type AnswerRepository interface {
	Create(set *models.AnswerSet) error
	FindByID(id uuid.UUID) (*models.AnswerSet, error)
	FindLatestByCandidate(candidateID uuid.UUID) (*models.AnswerSet, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(set *models.AnswerSet) error {
	if err := r.db.Create(set).Error; err != nil {
		return fmt.Errorf("failed to create answer set: %w", err)
	}
	return nil
}

func (r *answerRepository) FindByID(id uuid.UUID) (*models.AnswerSet, error) {
	var set models.AnswerSet
	if err := r.db.Where("id = ?", id).First(&set).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("answer set %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find answer set: %w", err)
	}
	return &set, nil
}

func (r *answerRepository) FindLatestByCandidate(candidateID uuid.UUID) (*models.AnswerSet, error) {
	var set models.AnswerSet
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("answers for candidate %s: %w", candidateID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find answers: %w", err)
	}
	return &set, nil
}
