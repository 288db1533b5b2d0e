package usecase

import (
	"context"

	"github.com/google/uuid"

	"courseplatform/internal/domain"
)

// Интерфейсы хранилищ. Реализации — gorm-репозитории в
// internal/infrastructure/repository, для тестов — internal/infrastructure/inmem.

type UserStore interface {
	// CreateWithBalance создает пользователя и его баланс в одной транзакции.
	CreateWithBalance(ctx context.Context, user *domain.User, startingBalance int) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	CountNonStaff(ctx context.Context) (int64, error)
}

type BalanceStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Balance, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount int) (int, error)
	// Withdraw возвращает false, если средств не хватает. Баланс при этом не меняется.
	Withdraw(ctx context.Context, userID uuid.UUID, amount int) (bool, error)
}

type CourseStore interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	// ListAvailable отдает доступные курсы, исключая уже купленные пользователем.
	ListAvailable(ctx context.Context, excludeUserID uuid.UUID) ([]domain.Course, error)
	Create(ctx context.Context, c *domain.Course) error
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLesson(ctx context.Context, l *domain.Lesson) error
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error)
	LessonsCount(ctx context.Context, courseID uuid.UUID) (int64, error)

	CreateGroup(ctx context.Context, g *domain.Group) error
	GroupFill(ctx context.Context, courseID uuid.UUID) ([]GroupFill, error)

	// StudentsCount — число записей с доступом (has_access = true).
	StudentsCount(ctx context.Context, courseID uuid.UUID) (int64, error)
}

// EnrollmentStore — операции сценария покупки. InTransaction обязан
// выполнять fn в одной транзакции БД: списание и создание записей
// должны фиксироваться атомарно.
type EnrollmentStore interface {
	InTransaction(ctx context.Context, fn func(tx EnrollmentStore) error) error

	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	HasActiveSubscription(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	// Withdraw блокирует строку баланса (FOR UPDATE) до конца транзакции.
	Withdraw(ctx context.Context, userID uuid.UUID, amount int) (bool, error)
	CreateEnrollment(ctx context.Context, e *domain.Enrollment) error
	CreateSubscription(ctx context.Context, s *domain.Subscription) error
	GroupFill(ctx context.Context, courseID uuid.UUID) ([]GroupFill, error)
	AddGroupMember(ctx context.Context, groupID, userID uuid.UUID) error
}

// GroupFill — группа курса с текущим числом участников.
type GroupFill struct {
	GroupID     uuid.UUID
	GroupNumber int
	MaxStudents int
	Members     int
}

type TokenCache interface {
	SaveRefresh(ctx context.Context, userID string, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}
