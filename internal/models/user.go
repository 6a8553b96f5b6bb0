package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User types. CHEF recipes may be made publicly discoverable, REGULAR
// recipes stay private.
const (
	UserTypeRegular = "REGULAR"
	UserTypeChef    = "CHEF"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UserType     string    `gorm:"size:20;not null;default:'REGULAR'" json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsChef reports whether the user's recipes are eligible for public listing.
func (u *User) IsChef() bool {
	return u.UserType == UserTypeChef
}
