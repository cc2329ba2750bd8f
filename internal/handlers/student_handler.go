package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// CreateStudent creates a new student
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param request body validator.StudentCreateRequest true "Student data"
// @Success 201 {object} models.StudentResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	h.LogRequest(c, "Creating student")

	var req validator.StudentCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.service.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent returns a single student with its course set
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.StudentResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	student, err := h.service.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// GetAllStudents returns the full student list
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} models.StudentResponse
// @Router /students [get]
func (h *StudentHandler) GetAllStudents(c *gin.Context) {
	students, err := h.service.GetAllStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetStudentsPaged returns a page of students
// @Summary List students paged
// @Tags students
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param sort_by query string false "Sort by: last_name, first_name, email, id"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.PagedStudentsResponse
// @Router /students/paged [get]
func (h *StudentHandler) GetStudentsPaged(c *gin.Context) {
	page := parsePageRequest(c, "last_name")

	resp, err := h.service.GetStudentsPaged(c.Request.Context(), page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchStudents matches the query against name and email
// @Summary Search students
// @Tags students
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.StudentResponse
// @Router /students/search [get]
func (h *StudentHandler) SearchStudents(c *gin.Context) {
	students, err := h.service.SearchStudents(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// UpdateStudent updates a student's fields
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body validator.StudentUpdateRequest true "Fields to update"
// @Success 200 {object} models.StudentResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	var req validator.StudentUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.service.UpdateStudent(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent deletes a student and its enrollments
// @Summary Delete student
// @Tags students
// @Param id path int true "Student ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.service.DeleteStudent(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== ENROLLMENT ENDPOINTS =====

// GetStudentCourses returns the student's course set
// @Summary Get student courses
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {array} models.CourseResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /students/{id}/courses [get]
func (h *StudentHandler) GetStudentCourses(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	courses, err := h.service.GetStudentCourses(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// AssignCourses enrolls the student in a batch of courses
// @Summary Assign courses
// @Description All or nothing: any unknown course code fails the whole batch
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body validator.AssignCoursesRequest true "Course codes"
// @Success 200 {object} models.StudentResponse
// @Failure 404 {object} ErrorResponse "Student or course not found"
// @Router /students/{id}/courses [post]
func (h *StudentHandler) AssignCourses(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	var req validator.AssignCoursesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Assigning courses", "student_id", id, "codes", req.CourseCodes)

	student, err := h.service.AssignCourses(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// RemoveCourse drops one enrollment
// @Summary Remove course from student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Param code path string true "Course code"
// @Success 200 {object} models.StudentResponse
// @Failure 404 {object} ErrorResponse "Student or enrollment not found"
// @Router /students/{id}/courses/{code} [delete]
func (h *StudentHandler) RemoveCourse(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	student, err := h.service.RemoveCourse(c.Request.Context(), id, c.Param("code"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ===== HELPERS =====

func (h *StudentHandler) studentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid student id",
			Details: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func parsePageRequest(c *gin.Context, defaultSort string) services.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(services.DefaultPageSize)))
	if err != nil || size < 1 {
		size = services.DefaultPageSize
	}

	return services.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    c.DefaultQuery("sort_by", defaultSort),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}
}
