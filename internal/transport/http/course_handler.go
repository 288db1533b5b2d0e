package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

type CourseHandler struct {
	catalog *usecase.CatalogUseCase
}

func NewCourseHandler(catalog *usecase.CatalogUseCase) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

func courseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *CourseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courses, err := h.catalog.ListAvailable(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetOne(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.catalog.GetCourse(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Metrics(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	metrics, err := h.catalog.Metrics(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

type courseReq struct {
	Author      string    `json:"author" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	Price       int       `json:"price" binding:"min=0"`
	IsAvailable *bool     `json:"is_available"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := domain.Course{
		Author:      req.Author,
		Title:       req.Title,
		StartDate:   req.StartDate,
		Price:       req.Price,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		course.IsAvailable = *req.IsAvailable
	}

	if err := h.catalog.CreateCourse(c, &course); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := domain.Course{
		ID:          id,
		Author:      req.Author,
		Title:       req.Title,
		StartDate:   req.StartDate,
		Price:       req.Price,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		course.IsAvailable = *req.IsAvailable
	}

	if err := h.catalog.UpdateCourse(c, &course); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCourse(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

type lessonReq struct {
	Title string `json:"title" binding:"required"`
	Link  string `json:"link" binding:"required,url"`
}

func (h *CourseHandler) CreateLesson(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	var req lessonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := domain.Lesson{
		CourseID: id,
		Title:    req.Title,
		Link:     req.Link,
	}

	if err := h.catalog.AddLesson(c, &lesson); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *CourseHandler) ListLessons(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	lessons, err := h.catalog.Lessons(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lessons)
}

type groupReq struct {
	GroupNumber int `json:"group_number" binding:"required"`
	MaxStudents int `json:"max_students"`
}

func (h *CourseHandler) CreateGroup(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := domain.Group{
		CourseID:    id,
		GroupNumber: req.GroupNumber,
		MaxStudents: req.MaxStudents,
	}

	if err := h.catalog.AddGroup(c, &group); err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *CourseHandler) ListGroups(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	groups, err := h.catalog.Groups(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, groups)
}
