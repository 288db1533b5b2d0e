package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGroupCapacity — вместимость группы по умолчанию. Процент
// заполнения групп всегда считается от этой константы, а не от
// max_students конкретной группы (так исторически сложилось в продукте).
const DefaultGroupCapacity = 30

type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_course_group_number" json:"course_id"`
	GroupNumber int       `gorm:"uniqueIndex:idx_course_group_number" json:"group_number"`
	MaxStudents int       `gorm:"default:30" json:"max_students"`

	Members []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"-"`
}

type GroupMember struct {
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`

	CreatedAt time.Time `json:"-"`
}
