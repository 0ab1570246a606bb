package models

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateIdentity is returned on signup when the username or
	// email already belongs to an existing account.
	ErrDuplicateIdentity = errors.New("username or email already taken")

	// ErrEmergencyEscalation is returned when a patient row was committed
	// but the dependent emergency case insert failed. The patient record
	// survives; callers must report this outcome distinctly.
	ErrEmergencyEscalation = errors.New("patient saved but emergency case insert failed")
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
