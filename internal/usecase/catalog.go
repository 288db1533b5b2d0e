package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
)

// CourseMetrics — производные показатели курса. Считаются по живым
// строкам на каждый запрос, без кеширования.
type CourseMetrics struct {
	LessonsCount  int64 `json:"lessons_count"`
	StudentsCount int64 `json:"students_count"`
	// Среднее число участников по группам курса относительно
	// фиксированной вместимости 30.
	GroupsFilledPercent float64 `json:"groups_filled_percent"`
	// nil, когда в системе нет ни одного студента — делить не на что.
	DemandPercent *float64 `json:"demand_percent"`
}

type CatalogUseCase struct {
	courses CourseStore
	users   UserStore
	log     *zap.Logger
}

func NewCatalogUseCase(courses CourseStore, users UserStore, log *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{courses: courses, users: users, log: log}
}

// ListAvailable — каталог для студента: только доступные курсы,
// без тех, что он уже купил.
func (uc *CatalogUseCase) ListAvailable(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	return uc.courses.ListAvailable(ctx, userID)
}

func (uc *CatalogUseCase) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return uc.courses.GetCourse(ctx, id)
}

func (uc *CatalogUseCase) CreateCourse(ctx context.Context, c *domain.Course) error {
	return uc.courses.Create(ctx, c)
}

func (uc *CatalogUseCase) UpdateCourse(ctx context.Context, c *domain.Course) error {
	return uc.courses.Update(ctx, c)
}

func (uc *CatalogUseCase) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return uc.courses.Delete(ctx, id)
}

func (uc *CatalogUseCase) AddLesson(ctx context.Context, l *domain.Lesson) error {
	if _, err := uc.courses.GetCourse(ctx, l.CourseID); err != nil {
		return err
	}
	return uc.courses.CreateLesson(ctx, l)
}

func (uc *CatalogUseCase) Lessons(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	if _, err := uc.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courses.LessonsByCourse(ctx, courseID)
}

func (uc *CatalogUseCase) AddGroup(ctx context.Context, g *domain.Group) error {
	if _, err := uc.courses.GetCourse(ctx, g.CourseID); err != nil {
		return err
	}
	if g.MaxStudents == 0 {
		g.MaxStudents = domain.DefaultGroupCapacity
	}
	return uc.courses.CreateGroup(ctx, g)
}

func (uc *CatalogUseCase) Groups(ctx context.Context, courseID uuid.UUID) ([]GroupFill, error) {
	if _, err := uc.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courses.GroupFill(ctx, courseID)
}

func (uc *CatalogUseCase) Metrics(ctx context.Context, courseID uuid.UUID) (*CourseMetrics, error) {
	if _, err := uc.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	lessons, err := uc.courses.LessonsCount(ctx, courseID)
	if err != nil {
		return nil, err
	}
	students, err := uc.courses.StudentsCount(ctx, courseID)
	if err != nil {
		return nil, err
	}
	groups, err := uc.courses.GroupFill(ctx, courseID)
	if err != nil {
		return nil, err
	}

	m := &CourseMetrics{
		LessonsCount:        lessons,
		StudentsCount:       students,
		GroupsFilledPercent: groupsFilledPercent(groups),
	}

	totalStudents, err := uc.users.CountNonStaff(ctx)
	if err != nil {
		return nil, err
	}
	if totalStudents == 0 {
		// Раньше тут было деление на ноль. Теперь показатель
		// просто не определен.
		uc.log.Warn("demand percent undefined: no non-staff users",
			zap.String("course_id", courseID.String()))
	} else {
		demand := float64(students) / float64(totalStudents) * 100
		m.DemandPercent = &demand
	}

	return m, nil
}

func groupsFilledPercent(groups []GroupFill) float64 {
	if len(groups) == 0 {
		return 0
	}
	var sum int
	for _, g := range groups {
		sum += g.Members
	}
	avg := float64(sum) / float64(len(groups))
	// Всегда делим на 30, а не на max_students группы.
	return avg / float64(domain.DefaultGroupCapacity) * 100
}
