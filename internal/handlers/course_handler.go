package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// CreateCourse creates a new course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body validator.CourseCreateRequest true "Course data"
// @Success 201 {object} models.CourseResponse
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req validator.CourseCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourse returns a single course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Param include query string false "Set to 'students' to embed the roster"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{code} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	var (
		course interface{}
		err    error
	)
	if c.Query("include") == "students" {
		course, err = h.service.GetCourseWithStudents(c.Request.Context(), c.Param("code"))
	} else {
		course, err = h.service.GetCourse(c.Request.Context(), c.Param("code"))
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetAllCourses returns the full catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.CourseResponse
// @Router /courses [get]
func (h *CourseHandler) GetAllCourses(c *gin.Context) {
	courses, err := h.service.GetAllCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCoursesPaged returns a page of the catalog
// @Summary List courses paged
// @Tags courses
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param sort_by query string false "Sort by: code, title"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.PagedCoursesResponse
// @Router /courses/paged [get]
func (h *CourseHandler) GetCoursesPaged(c *gin.Context) {
	page := parsePageRequest(c, "code")

	resp, err := h.service.GetCoursesPaged(c.Request.Context(), page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchCourses matches the query against code and title
// @Summary Search courses
// @Tags courses
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.CourseResponse
// @Router /courses/search [get]
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	courses, err := h.service.SearchCourses(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// UpdateCourse updates title and description
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param request body validator.CourseUpdateRequest true "Fields to update"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{code} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req validator.CourseUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse deletes a course and strips it from every enrolled student
// @Summary Delete course
// @Tags courses
// @Param code path string true "Course code"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{code} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	code := c.Param("code")
	h.LogRequest(c, "Deleting course", "code", code)

	if err := h.service.DeleteCourse(c.Request.Context(), code); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== RELATIONSHIP ENDPOINTS =====

// GetCourseStudents returns the course roster
// @Summary Get course students
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {array} models.StudentResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{code}/students [get]
func (h *CourseHandler) GetCourseStudents(c *gin.Context) {
	students, err := h.service.GetCourseStudents(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetCoursesByStudent returns the student's course set
// @Summary Get courses by student
// @Tags courses
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} models.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/students/{studentId} [get]
func (h *CourseHandler) GetCoursesByStudent(c *gin.Context) {
	id, ok := h.pathStudentID(c)
	if !ok {
		return
	}

	courses, err := h.service.GetCoursesByStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCoursesNotTaken returns every course the student is not enrolled in
// @Summary Get courses not taken
// @Tags courses
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} models.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/not-taken/{studentId} [get]
func (h *CourseHandler) GetCoursesNotTaken(c *gin.Context) {
	id, ok := h.pathStudentID(c)
	if !ok {
		return
	}

	courses, err := h.service.GetCoursesNotTaken(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) pathStudentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid student id",
			Details: "studentId must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
