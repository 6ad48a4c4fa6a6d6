package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	StatusQueued     ReportStatus = "queued"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

type InterviewReport struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	AnswerSetID     uuid.UUID    `gorm:"type:uuid;not null" json:"answer_set_id"`
	Status          ReportStatus `gorm:"not null;default:'queued'" json:"status"`
	Communication   *int         `json:"communication,omitempty"`
	Confidence      *int         `json:"confidence,omitempty"`
	DomainKnowledge *int         `json:"domain_knowledge,omitempty"`
	OverallScore    *int         `json:"overall_score,omitempty"`
	Strengths       []string     `gorm:"type:jsonb;serializer:json" json:"strengths,omitempty"`
	Weaknesses      []string     `gorm:"type:jsonb;serializer:json" json:"weaknesses,omitempty"`
	Feedback        *string      `gorm:"type:text" json:"feedback,omitempty"`
	ErrorMessage    *string      `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
	AnswerSet AnswerSet `gorm:"foreignKey:AnswerSetID" json:"-"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}
