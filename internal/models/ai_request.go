package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AIRequest logs one generation call against the external model, with the
// token usage the provider reported.
type AIRequest struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Model            string    `gorm:"size:100;not null" json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *AIRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
