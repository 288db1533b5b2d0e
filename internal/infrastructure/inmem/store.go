// Package inmem — хранилище в памяти. Реализует те же интерфейсы, что и
// gorm-репозитории; используется в тестах вместо поднятого postgres.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

type Store struct {
	mu sync.Mutex

	users         map[uuid.UUID]domain.User
	balances      map[uuid.UUID]domain.Balance
	courses       map[uuid.UUID]domain.Course
	lessons       map[uuid.UUID]domain.Lesson
	groups        map[uuid.UUID]domain.Group
	members       map[uuid.UUID]map[uuid.UUID]bool
	enrollments   []domain.Enrollment
	subscriptions []domain.Subscription
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		balances: make(map[uuid.UUID]domain.Balance),
		courses:  make(map[uuid.UUID]domain.Course),
		lessons:  make(map[uuid.UUID]domain.Lesson),
		groups:   make(map[uuid.UUID]domain.Group),
		members:  make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

// --- UserStore ---

func (s *Store) CreateWithBalance(_ context.Context, user *domain.User, startingBalance int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	s.balances[user.ID] = domain.Balance{UserID: user.ID, Amount: startingBalance}
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := u
	return &user, nil
}

func (s *Store) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) CountNonStaff(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, u := range s.users {
		if !u.IsStaff {
			count++
		}
	}
	return count, nil
}

// --- BalanceStore ---

func (s *Store) GetByUser(_ context.Context, userID uuid.UUID) (*domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	balance := b
	return &balance, nil
}

func (s *Store) Deposit(_ context.Context, userID uuid.UUID, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	b.Amount += amount
	s.balances[userID] = b
	return b.Amount, nil
}

func (s *Store) Withdraw(_ context.Context, userID uuid.UUID, amount int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if b.Amount < amount {
		return false, nil
	}
	b.Amount -= amount
	s.balances[userID] = b
	return true, nil
}

// --- CourseStore / EnrollmentStore ---

func (s *Store) GetCourse(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCourseLocked(id)
}

func (s *Store) getCourseLocked(id uuid.UUID) (*domain.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	course := c
	for _, l := range s.lessons {
		if l.CourseID == id {
			course.Lessons = append(course.Lessons, l)
		}
	}
	return &course, nil
}

func (s *Store) ListAvailable(_ context.Context, excludeUserID uuid.UUID) ([]domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	purchased := make(map[uuid.UUID]bool)
	for _, e := range s.enrollments {
		if e.UserID == excludeUserID && e.HasAccess {
			purchased[e.CourseID] = true
		}
	}
	var courses []domain.Course
	for _, c := range s.courses {
		if c.IsAvailable && !purchased[c.ID] {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (s *Store) Create(_ context.Context, c *domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	s.courses[c.ID] = *c
	return nil
}

func (s *Store) Update(_ context.Context, c *domain.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	return nil
}

func (s *Store) CreateLesson(_ context.Context, l *domain.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	s.lessons[l.ID] = *l
	return nil
}

func (s *Store) LessonsByCourse(_ context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lessons []domain.Lesson
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	return lessons, nil
}

func (s *Store) LessonsCount(_ context.Context, courseID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateGroup(_ context.Context, g *domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	s.groups[g.ID] = *g
	if s.members[g.ID] == nil {
		s.members[g.ID] = make(map[uuid.UUID]bool)
	}
	return nil
}

func (s *Store) GroupFill(_ context.Context, courseID uuid.UUID) ([]usecase.GroupFill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fill []usecase.GroupFill
	for _, g := range s.groups {
		if g.CourseID != courseID {
			continue
		}
		fill = append(fill, usecase.GroupFill{
			GroupID:     g.ID,
			GroupNumber: g.GroupNumber,
			MaxStudents: g.MaxStudents,
			Members:     len(s.members[g.ID]),
		})
	}
	return fill, nil
}

func (s *Store) StudentsCount(_ context.Context, courseID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.HasAccess {
			count++
		}
	}
	return count, nil
}

// --- EnrollmentStore ---

// InTransaction выполняет fn на самом хранилище. Отката нет: сценарий
// покупки не мутирует ничего до последней проверки, тестам этого хватает.
func (s *Store) InTransaction(_ context.Context, fn func(tx usecase.EnrollmentStore) error) error {
	return fn(s)
}

func (s *Store) HasActiveSubscription(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscriptions {
		if sub.UserID == userID && sub.CourseID == courseID && sub.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HasAccess(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.enrollments {
		if e.UserID == userID && e.CourseID == courseID && e.HasAccess {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateEnrollment(_ context.Context, e *domain.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments = append(s.enrollments, *e)
	return nil
}

func (s *Store) CreateSubscription(_ context.Context, sub *domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = append(s.subscriptions, *sub)
	return nil
}

func (s *Store) AddGroupMember(_ context.Context, groupID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members[groupID] == nil {
		s.members[groupID] = make(map[uuid.UUID]bool)
	}
	s.members[groupID][userID] = true
	return nil
}

// --- вспомогательное для тестов ---

func (s *Store) Enrollments() []domain.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Enrollment, len(s.enrollments))
	copy(out, s.enrollments)
	return out
}

func (s *Store) Subscriptions() []domain.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Subscription, len(s.subscriptions))
	copy(out, s.subscriptions)
	return out
}

func (s *Store) GroupMembers(groupID uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for id := range s.members[groupID] {
		out = append(out, id)
	}
	return out
}
