package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/inmem"
	"courseplatform/internal/usecase"
)

func createStaff(t *testing.T, store *inmem.Store, email string) uuid.UUID {
	t.Helper()
	user := &domain.User{
		Email:    email,
		Username: email,
		Password: "hash",
		IsStaff:  true,
	}
	require.NoError(t, store.CreateWithBalance(context.Background(), user, 0))
	return user.ID
}

func grantAccess(t *testing.T, store *inmem.Store, userID, courseID uuid.UUID) {
	t.Helper()
	require.NoError(t, store.CreateEnrollment(context.Background(), &domain.Enrollment{
		UserID: userID, CourseID: courseID, HasAccess: true,
	}))
}

func TestCourseMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown course", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())

		_, err := uc.Metrics(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("no groups means zero fill", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())
		createUser(t, store, "s@test.io", 0)
		courseID := createCourse(t, store, 100, true)

		m, err := uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		assert.Equal(t, float64(0), m.GroupsFilledPercent)
	})

	t.Run("fill is average over fixed capacity 30", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())
		createUser(t, store, "s@test.io", 0)
		courseID := createCourse(t, store, 100, true)
		createGroup(t, store, courseID, 1, 35, 5)
		createGroup(t, store, courseID, 2, 35, 12)

		m, err := uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		// (5+12)/2 / 30 * 100
		assert.InDelta(t, 28.33, m.GroupsFilledPercent, 0.01)
	})

	t.Run("lessons and students counted", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())
		courseID := createCourse(t, store, 100, true)
		require.NoError(t, store.CreateLesson(ctx, &domain.Lesson{CourseID: courseID, Title: "intro", Link: "https://example.com/1"}))
		require.NoError(t, store.CreateLesson(ctx, &domain.Lesson{CourseID: courseID, Title: "next", Link: "https://example.com/2"}))

		buyer := createUser(t, store, "buyer@test.io", 0)
		createUser(t, store, "idle@test.io", 0)
		grantAccess(t, store, buyer, courseID)

		m, err := uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), m.LessonsCount)
		assert.Equal(t, int64(1), m.StudentsCount)
	})

	t.Run("demand percent over non-staff users", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())
		courseID := createCourse(t, store, 100, true)

		students := []uuid.UUID{
			createUser(t, store, "a@test.io", 0),
			createUser(t, store, "b@test.io", 0),
			createUser(t, store, "c@test.io", 0),
			createUser(t, store, "d@test.io", 0),
		}
		createStaff(t, store, "admin@test.io")

		m, err := uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		require.NotNil(t, m.DemandPercent)
		assert.Equal(t, float64(0), *m.DemandPercent)

		grantAccess(t, store, students[0], courseID)
		grantAccess(t, store, students[1], courseID)

		m, err = uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		require.NotNil(t, m.DemandPercent)
		assert.Equal(t, float64(50), *m.DemandPercent)
	})

	t.Run("demand undefined without students", func(t *testing.T) {
		store := inmem.NewStore()
		uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())
		courseID := createCourse(t, store, 100, true)
		createStaff(t, store, "admin@test.io")

		m, err := uc.Metrics(ctx, courseID)
		require.NoError(t, err)
		assert.Nil(t, m.DemandPercent)
	})
}

func TestListAvailable(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	uc := usecase.NewCatalogUseCase(store, store, zap.NewNop())

	userID := createUser(t, store, "s@test.io", 0)
	visible := createCourse(t, store, 100, true)
	hidden := createCourse(t, store, 100, false)
	bought := createCourse(t, store, 100, true)
	grantAccess(t, store, userID, bought)

	courses, err := uc.ListAvailable(ctx, userID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, visible, courses[0].ID)

	for _, c := range courses {
		assert.NotEqual(t, hidden, c.ID)
		assert.NotEqual(t, bought, c.ID)
	}
}
