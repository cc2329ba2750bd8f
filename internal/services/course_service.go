package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.CourseResponse, error) {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	exists, err := s.repo.Course().ExistsByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to check course", "error", err, "code", req.Code)
		return nil, fmt.Errorf("%w: check course", ErrUnexpected)
	}
	if exists {
		return nil, fmt.Errorf("%w: course %s", ErrConflict, req.Code)
	}

	course := &models.Course{
		Code:        req.Code,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		s.logger.Error("Failed to create course", "error", err, "code", req.Code)
		return nil, fmt.Errorf("%w: create course", ErrUnexpected)
	}

	s.logger.Info("Course created", "code", course.Code)
	return models.NewCourseResponse(course), nil
}

func (s *courseService) GetCourse(ctx context.Context, code string) (*models.CourseResponse, error) {
	course, err := s.getCourse(ctx, code)
	if err != nil {
		return nil, err
	}
	return models.NewCourseResponse(course), nil
}

// GetCourseWithStudents returns the course together with its full roster.
func (s *courseService) GetCourseWithStudents(ctx context.Context, code string) (*models.CourseResponse, error) {
	course, err := s.getCourse(ctx, code)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student().GetByCourseCode(ctx, course.Code)
	if err != nil {
		s.logger.Error("Failed to get course students", "error", err, "code", code)
		return nil, fmt.Errorf("%w: get course students", ErrUnexpected)
	}

	course.Students = students
	return models.NewCourseResponseWithStudents(course), nil
}

func (s *courseService) GetAllCourses(ctx context.Context) ([]*models.CourseResponse, error) {
	courses, err := s.repo.Course().GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list courses", "error", err)
		return nil, fmt.Errorf("%w: list courses", ErrUnexpected)
	}
	return models.NewCourseResponses(courses), nil
}

func (s *courseService) GetCoursesPaged(ctx context.Context, page PageRequest) (*PagedCoursesResponse, error) {
	page.Normalize()

	courses, total, err := s.repo.Course().GetPaged(ctx, repositories.PageFilters{
		Limit:     page.Size,
		Offset:    page.Offset(),
		SortBy:    page.SortBy,
		SortOrder: page.SortOrder,
	})
	if err != nil {
		s.logger.Error("Failed to page courses", "error", err)
		return nil, fmt.Errorf("%w: page courses", ErrUnexpected)
	}

	return &PagedCoursesResponse{
		Courses:    models.NewCourseResponses(courses),
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

func (s *courseService) SearchCourses(ctx context.Context, query string) ([]*models.CourseResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetAllCourses(ctx)
	}

	courses, err := s.repo.Course().Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search courses", "error", err, "query", query)
		return nil, fmt.Errorf("%w: search courses", ErrUnexpected)
	}
	return models.NewCourseResponses(courses), nil
}

// UpdateCourse changes title and description only; the code is immutable.
func (s *courseService) UpdateCourse(ctx context.Context, code string, req *validator.CourseUpdateRequest) (*models.CourseResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	course, err := s.getCourse(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		s.logger.Error("Failed to update course", "error", err, "code", code)
		return nil, fmt.Errorf("%w: update course", ErrUnexpected)
	}

	s.logger.Info("Course updated", "code", code)
	return models.NewCourseResponse(course), nil
}

// DeleteCourse removes the course after stripping it from every enrolled
// student, so deletion never leaves a dangling edge on the student side.
func (s *courseService) DeleteCourse(ctx context.Context, code string) error {
	course, err := s.getCourse(ctx, code)
	if err != nil {
		return err
	}

	students, err := s.repo.Student().GetByCourseCode(ctx, course.Code)
	if err != nil {
		s.logger.Error("Failed to get course students", "error", err, "code", code)
		return fmt.Errorf("%w: get course students", ErrUnexpected)
	}

	if err := s.repo.Course().Delete(ctx, course.Code); err != nil {
		s.logger.Error("Failed to delete course", "error", err, "code", code)
		return fmt.Errorf("%w: delete course", ErrUnexpected)
	}

	studentIDs := make([]uint, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	s.publish(ctx, events.NewEvent(events.EventCourseDeleted, map[string]interface{}{
		"course_code": course.Code,
		"student_ids": studentIDs,
	}))

	s.logger.Info("Course deleted", "code", code, "affected_students", len(students))
	return nil
}

func (s *courseService) GetCourseStudents(ctx context.Context, code string) ([]*models.StudentResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := s.requireCourse(ctx, code); err != nil {
		return nil, err
	}

	students, err := s.repo.Student().GetByCourseCode(ctx, code)
	if err != nil {
		s.logger.Error("Failed to get course students", "error", err, "code", code)
		return nil, fmt.Errorf("%w: get course students", ErrUnexpected)
	}
	return models.NewStudentResponses(students), nil
}

func (s *courseService) GetCoursesByStudent(ctx context.Context, studentID uint) ([]*models.CourseResponse, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	courses, err := s.repo.Course().GetByStudentID(ctx, studentID)
	if err != nil {
		s.logger.Error("Failed to get courses by student", "error", err, "student_id", studentID)
		return nil, fmt.Errorf("%w: get courses by student", ErrUnexpected)
	}
	return models.NewCourseResponses(courses), nil
}

// GetCoursesNotTaken returns the complement of the student's course set.
func (s *courseService) GetCoursesNotTaken(ctx context.Context, studentID uint) ([]*models.CourseResponse, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	courses, err := s.repo.Course().GetNotTakenByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("Failed to get courses not taken", "error", err, "student_id", studentID)
		return nil, fmt.Errorf("%w: get courses not taken", ErrUnexpected)
	}
	return models.NewCourseResponses(courses), nil
}

// ===== HELPERS =====

func (s *courseService) getCourse(ctx context.Context, code string) (*models.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if errs := s.validator.ValidateCourseCode(code); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	course, err := s.repo.Course().GetByCode(ctx, code)
	if err != nil {
		s.logger.Error("Failed to get course", "error", err, "code", code)
		return nil, fmt.Errorf("%w: get course", ErrUnexpected)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course %s", ErrNotFound, code)
	}
	return course, nil
}

func (s *courseService) requireCourse(ctx context.Context, code string) error {
	exists, err := s.repo.Course().ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("Failed to check course", "error", err, "code", code)
		return fmt.Errorf("%w: check course", ErrUnexpected)
	}
	if !exists {
		return fmt.Errorf("%w: course %s", ErrNotFound, code)
	}
	return nil
}

func (s *courseService) requireStudent(ctx context.Context, id uint) error {
	exists, err := s.repo.Student().ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to check student", "error", err, "student_id", id)
		return fmt.Errorf("%w: check student", ErrUnexpected)
	}
	if !exists {
		return fmt.Errorf("%w: student %d", ErrNotFound, id)
	}
	return nil
}

func (s *courseService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "error", err, "event_type", event.Type)
	}
}
