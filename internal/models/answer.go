package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionAnswer pairs an interview question with the candidate's answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AnswerSet struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID        `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Answers     []QuestionAnswer `gorm:"type:jsonb;serializer:json" json:"answers"`
	CreatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	UpdatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (AnswerSet) TableName() string {
	return "answer_sets"
}
