package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

type Balance struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	// Бонусы, целые единицы. Ниже нуля не опускается.
	Amount int `gorm:"not null;check:amount >= 0" json:"amount"`

	UpdatedAt time.Time `json:"-"`
}
