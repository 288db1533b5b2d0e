package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courseplatform/internal/infrastructure/inmem"
	"courseplatform/internal/usecase"
)

func newCourseRouter(store *inmem.Store, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	catalog := usecase.NewCatalogUseCase(store, store, zap.NewNop())
	h := NewCourseHandler(catalog)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID.String())
	})
	r.GET("/courses", h.List)
	r.GET("/courses/:id", h.GetOne)
	r.GET("/courses/:id/metrics", h.Metrics)
	r.POST("/courses", h.Create)
	r.POST("/courses/:id/lessons", h.CreateLesson)
	r.GET("/courses/:id/lessons", h.ListLessons)
	return r
}

func TestCourseCRUDEndpoints(t *testing.T) {
	store := inmem.NewStore()
	userID, _ := seedUserAndCourse(t, store, 0, 100, true)
	r := newCourseRouter(store, userID)

	// Создание курса
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"author": "Иван", "title": "Go с нуля", "start_date": "2026-10-01T10:00:00Z", "price": 1500}`)
	req := httptest.NewRequest(http.MethodPost, "/courses", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID          uuid.UUID `json:"id"`
		IsAvailable bool      `json:"is_available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsAvailable)

	// Валидация: без title — 400
	w = httptest.NewRecorder()
	body = bytes.NewBufferString(`{"author": "Иван", "start_date": "2026-10-01T10:00:00Z"}`)
	req = httptest.NewRequest(http.MethodPost, "/courses", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Урок с некорректной ссылкой — 400
	w = httptest.NewRecorder()
	body = bytes.NewBufferString(`{"title": "Введение", "link": "not a url"}`)
	req = httptest.NewRequest(http.MethodPost, "/courses/"+created.ID.String()+"/lessons", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Нормальный урок — 201, и он виден в списке
	w = httptest.NewRecorder()
	body = bytes.NewBufferString(`{"title": "Введение", "link": "https://video.example.com/1"}`)
	req = httptest.NewRequest(http.MethodPost, "/courses/"+created.ID.String()+"/lessons", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/"+created.ID.String()+"/lessons", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var lessons []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lessons))
	assert.Len(t, lessons, 1)
}

func TestMetricsEndpoint(t *testing.T) {
	store := inmem.NewStore()
	userID, courseID := seedUserAndCourse(t, store, 0, 100, true)
	r := newCourseRouter(store, userID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/"+courseID.String()+"/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var m usecase.CourseMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, int64(0), m.LessonsCount)
	assert.Equal(t, float64(0), m.GroupsFilledPercent)
	// Один обычный пользователь, доступов нет
	require.NotNil(t, m.DemandPercent)
	assert.Equal(t, float64(0), *m.DemandPercent)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/"+uuid.NewString()+"/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
