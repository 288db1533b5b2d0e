package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
)

// Пороги автоназначения в группу. Назначаем только пока самая свободная
// группа еще маленькая (<= 10 человек) и ее лимит больше 30. Числа
// исторические, менять их без продукта нельзя.
const (
	assignMemberLimit   = 10
	assignCapacityFloor = 30
)

type PurchaseResult struct {
	Subscription *domain.Subscription `json:"subscription"`
	// false — студент остался без группы (подходящей не нашлось).
	GroupAssigned bool `json:"group_assigned"`
	GroupNumber   *int `json:"group_number,omitempty"`
}

type EnrollmentUseCase struct {
	store EnrollmentStore
	log   *zap.Logger
}

func NewEnrollmentUseCase(store EnrollmentStore, log *zap.Logger) *EnrollmentUseCase {
	return &EnrollmentUseCase{store: store, log: log}
}

// Purchase — покупка доступа к курсу. Все проверки и записи идут в одной
// транзакции: списание фиксируется только вместе с созданными
// Enrollment/Subscription, отказ на любом шаге не оставляет следов.
func (uc *EnrollmentUseCase) Purchase(ctx context.Context, userID, courseID uuid.UUID) (*PurchaseResult, error) {
	var result PurchaseResult

	err := uc.store.InTransaction(ctx, func(tx EnrollmentStore) error {
		course, err := tx.GetCourse(ctx, courseID)
		if err != nil {
			return err
		}
		if !course.IsAvailable {
			return domain.ErrCourseUnavailable
		}

		subscribed, err := tx.HasActiveSubscription(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if subscribed {
			return domain.ErrAlreadySubscribed
		}

		hasAccess, err := tx.HasAccess(ctx, userID, courseID)
		if err != nil {
			return err
		}
		if hasAccess {
			return domain.ErrAlreadyPurchased
		}

		// Списание строго после всех проверок и строго до создания
		// записей о доступе.
		ok, err := tx.Withdraw(ctx, userID, course.Price)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientFunds
		}

		if err := tx.CreateEnrollment(ctx, &domain.Enrollment{
			UserID:    userID,
			CourseID:  courseID,
			HasAccess: true,
		}); err != nil {
			return err
		}

		sub := &domain.Subscription{
			ID:        uuid.New(),
			UserID:    userID,
			CourseID:  courseID,
			StartDate: time.Now(),
		}
		if err := tx.CreateSubscription(ctx, sub); err != nil {
			return err
		}
		result.Subscription = sub

		// Назначение группы. Если подходящей группы нет (или групп нет
		// вообще) — покупка все равно проходит.
		groups, err := tx.GroupFill(ctx, courseID)
		if err != nil {
			return err
		}
		if g := pickGroup(groups); g != nil {
			if err := tx.AddGroupMember(ctx, g.GroupID, userID); err != nil {
				return err
			}
			n := g.GroupNumber
			result.GroupAssigned = true
			result.GroupNumber = &n
		} else {
			uc.log.Warn("purchase: student left without a group",
				zap.String("user_id", userID.String()),
				zap.String("course_id", courseID.String()),
				zap.Int("groups_total", len(groups)))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("course purchased",
		zap.String("user_id", userID.String()),
		zap.String("course_id", courseID.String()),
		zap.Bool("group_assigned", result.GroupAssigned))

	return &result, nil
}

// pickGroup выбирает самую свободную группу; при равенстве — с меньшим
// номером, чтобы результат не зависел от порядка выдачи хранилища.
// Группа подходит, только если в ней <= 10 человек и max_students > 30.
func pickGroup(groups []GroupFill) *GroupFill {
	if len(groups) == 0 {
		return nil
	}

	sorted := make([]GroupFill, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Members != sorted[j].Members {
			return sorted[i].Members < sorted[j].Members
		}
		return sorted[i].GroupNumber < sorted[j].GroupNumber
	})

	best := sorted[0]
	if best.Members <= assignMemberLimit && best.MaxStudents > assignCapacityFloor {
		return &best
	}
	return nil
}
