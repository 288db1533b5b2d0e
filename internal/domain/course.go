package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseUnavailable = errors.New("course is not available")
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Author      string    `json:"author"`
	Title       string    `gorm:"index" json:"title"`
	StartDate   time.Time `json:"start_date"`
	Price       int       `gorm:"not null;check:price >= 0" json:"price"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`
	Groups  []Group  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;index" json:"course_id"`
	Title    string    `json:"title"`
	Link     string    `json:"link"`

	CreatedAt time.Time `json:"-"`
}
