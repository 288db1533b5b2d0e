package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

// EnrollmentRepository обслуживает транзакцию покупки. Внутри
// InTransaction все методы работают через один *gorm.DB — транзакцию.
type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) InTransaction(ctx context.Context, fn func(tx usecase.EnrollmentStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&EnrollmentRepository{db: tx})
	})
}

func (r *EnrollmentRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCourseNotFound
	}
	return &course, err
}

func (r *EnrollmentRepository) HasActiveSubscription(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Where("end_date IS NULL OR end_date > ?", time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND has_access = ?", userID, courseID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) Withdraw(ctx context.Context, userID uuid.UUID, amount int) (bool, error) {
	var b domain.Balance
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}
	if b.Amount < amount {
		return false, nil
	}
	err := r.db.WithContext(ctx).Model(&domain.Balance{}).
		Where("user_id = ?", userID).
		Update("amount", gorm.Expr("amount - ?", amount)).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) CreateSubscription(ctx context.Context, s *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *EnrollmentRepository) GroupFill(ctx context.Context, courseID uuid.UUID) ([]usecase.GroupFill, error) {
	return groupFill(r.db.WithContext(ctx), courseID)
}

func (r *EnrollmentRepository) AddGroupMember(ctx context.Context, groupID, userID uuid.UUID) error {
	// Блокируем строку группы, чтобы параллельные покупки не
	// переполнили одну и ту же группу.
	var g domain.Group
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&g, "id = ?", groupID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&domain.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}).Error
}
