package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission represents one customer intake record. It is created exactly
// once by the submission endpoint and is never updated or deleted afterwards;
// the admin dashboard only reads it.
type Submission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CarName     *string        `json:"carName"`
	CarColor    *string        `json:"carColor"`
	CarPhoto    datatypes.JSON `json:"carPhoto"` // serialized PhotoMeta, null when no photo was uploaded
	CustomBase  bool           `gorm:"not null" json:"customBase"`
	AcrylicCase bool           `gorm:"not null" json:"acrylicCase"`
	Name        string         `gorm:"not null" json:"name"`
	Phone       string         `gorm:"not null" json:"phone"`
	Email       string         `gorm:"not null;index" json:"email"`
	SubmittedAt time.Time      `gorm:"not null;index" json:"submittedAt"`
}

// TableName specifies the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}

// BeforeCreate hook
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	return nil
}

// PhotoMeta describes a stored car photo. Exactly one of Path or Data is set,
// depending on the configured storage strategy: Path points under the public
// uploads location, Data holds the base64-encoded image bytes.
type PhotoMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	Data string `json:"data,omitempty"`
}

// PhotoMetadata parses the stored photo column. Returns nil when the
// submission has no photo.
func (s *Submission) PhotoMetadata() (*PhotoMeta, error) {
	if len(s.CarPhoto) == 0 {
		return nil, nil
	}
	var meta PhotoMeta
	if err := json.Unmarshal(s.CarPhoto, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
