package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons").
		First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCourseNotFound
	}
	return &course, err
}

// ListAvailable — доступные курсы без уже купленных пользователем.
func (r *CourseRepository) ListAvailable(ctx context.Context, excludeUserID uuid.UUID) ([]domain.Course, error) {
	purchased := r.db.Model(&domain.Enrollment{}).
		Select("course_id").
		Where("user_id = ? AND has_access = ?", excludeUserID, true)

	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons").
		Where("is_available = ?", true).
		Where("id NOT IN (?)", purchased).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	result := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"author":       c.Author,
			"title":        c.Title,
			"start_date":   c.StartDate,
			"price":        c.Price,
			"is_available": c.IsAvailable,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Course{}, "id = ?", id).Error
}

func (r *CourseRepository) CreateLesson(ctx context.Context, l *domain.Lesson) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *CourseRepository) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at asc").
		Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) LessonsCount(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CreateGroup(ctx context.Context, g *domain.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *CourseRepository) GroupFill(ctx context.Context, courseID uuid.UUID) ([]usecase.GroupFill, error) {
	return groupFill(r.db.WithContext(ctx), courseID)
}

func (r *CourseRepository) StudentsCount(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("course_id = ? AND has_access = ?", courseID, true).
		Count(&count).Error
	return count, err
}

// groupFill — группы курса с числом участников. Используется и каталогом,
// и транзакцией покупки.
func groupFill(db *gorm.DB, courseID uuid.UUID) ([]usecase.GroupFill, error) {
	var rows []usecase.GroupFill
	err := db.Model(&domain.Group{}).
		Select("groups.id as group_id, groups.group_number, groups.max_students, count(group_members.user_id) as members").
		Joins("LEFT JOIN group_members ON group_members.group_id = groups.id").
		Where("groups.course_id = ?", courseID).
		Group("groups.id, groups.group_number, groups.max_students").
		Order("members asc, groups.group_number asc").
		Scan(&rows).Error
	return rows, err
}
