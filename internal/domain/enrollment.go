package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed to this course")
	ErrAlreadyPurchased  = errors.New("course already purchased")
)

// Enrollment — запись о доступе пользователя к курсу.
// Пара (user, course) уникальна.
type Enrollment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"course_id"`
	HasAccess bool      `gorm:"default:false" json:"has_access"`

	CreatedAt time.Time `json:"created_at"`
}

// Subscription — факт покупки. Отдельно от доступа:
// доступ может остаться, даже если подписка закрыта.
type Subscription struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	CourseID  uuid.UUID  `gorm:"type:uuid;index" json:"course_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *Subscription) IsActive() bool {
	return s.EndDate == nil || s.EndDate.After(time.Now())
}
