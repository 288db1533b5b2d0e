package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Username string    `json:"username"`
	Password string    `gorm:"not null" json:"-"`
	IsStaff  bool      `gorm:"default:false" json:"is_staff"`

	// Баланс создается вместе с пользователем, в одной транзакции
	Balance *Balance `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
