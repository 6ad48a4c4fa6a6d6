package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"type:text" json:"name"`
	DetectedName     string    `gorm:"type:text" json:"detected_name"`
	NameSource       string    `gorm:"type:text" json:"name_source"`
	Phone            string    `gorm:"type:text" json:"phone"`
	Email            string    `gorm:"type:text" json:"email"`
	Company          string    `gorm:"type:text" json:"company"`
	JobDescription   string    `gorm:"type:text" json:"job_description"`
	CompanyDetails   string    `gorm:"type:text" json:"company_details"`
	ResumeText       string    `gorm:"type:text" json:"resume_text"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	Confirmed        bool      `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
