package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewStudentService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req *validator.StudentCreateRequest) (*models.StudentResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	student := &models.Student{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		s.logger.Error("Failed to create student", "error", err)
		return nil, fmt.Errorf("%w: create student", ErrUnexpected)
	}

	s.logger.Info("Student created", "student_id", student.ID)
	return models.NewStudentResponse(student), nil
}

func (s *studentService) GetStudent(ctx context.Context, id uint) (*models.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewStudentResponseWithCourses(student), nil
}

func (s *studentService) GetAllStudents(ctx context.Context) ([]*models.StudentResponse, error) {
	students, err := s.repo.Student().GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list students", "error", err)
		return nil, fmt.Errorf("%w: list students", ErrUnexpected)
	}
	return models.NewStudentResponses(students), nil
}

func (s *studentService) GetStudentsPaged(ctx context.Context, page PageRequest) (*PagedStudentsResponse, error) {
	page.Normalize()

	students, total, err := s.repo.Student().GetPaged(ctx, repositories.PageFilters{
		Limit:     page.Size,
		Offset:    page.Offset(),
		SortBy:    page.SortBy,
		SortOrder: page.SortOrder,
	})
	if err != nil {
		s.logger.Error("Failed to page students", "error", err)
		return nil, fmt.Errorf("%w: page students", ErrUnexpected)
	}

	return &PagedStudentsResponse{
		Students:   models.NewStudentResponses(students),
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages(total, page.Size),
	}, nil
}

func (s *studentService) SearchStudents(ctx context.Context, query string) ([]*models.StudentResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetAllStudents(ctx)
	}

	students, err := s.repo.Student().Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search students", "error", err, "query", query)
		return nil, fmt.Errorf("%w: search students", ErrUnexpected)
	}
	return models.NewStudentResponses(students), nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id uint, req *validator.StudentUpdateRequest) (*models.StudentResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		student.Email = strings.TrimSpace(*req.Email)
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		s.logger.Error("Failed to update student", "error", err, "student_id", id)
		return nil, fmt.Errorf("%w: update student", ErrUnexpected)
	}

	s.logger.Info("Student updated", "student_id", id)
	return models.NewStudentResponseWithCourses(student), nil
}

// DeleteStudent removes the student and every enrollment edge referencing it,
// so no course keeps a dangling member.
func (s *studentService) DeleteStudent(ctx context.Context, id uint) error {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete student", "error", err, "student_id", id)
		return fmt.Errorf("%w: delete student", ErrUnexpected)
	}

	s.publish(ctx, events.NewEvent(events.EventStudentDeleted, map[string]interface{}{
		"student_id":   student.ID,
		"email":        student.Email,
		"course_codes": courseCodes(student.Courses),
	}))

	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

func (s *studentService) GetStudentCourses(ctx context.Context, id uint) ([]*models.CourseResponse, error) {
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	courses, err := s.repo.Course().GetByStudentID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get student courses", "error", err, "student_id", id)
		return nil, fmt.Errorf("%w: get student courses", ErrUnexpected)
	}
	return models.NewCourseResponses(courses), nil
}

// AssignCourses enrolls the student in every given course code at once.
// The operation is all or nothing: if any code does not resolve to an
// existing course, no enrollment is touched and the missing codes are
// reported. Codes the student already has are skipped silently.
func (s *studentService) AssignCourses(ctx context.Context, id uint, req *validator.AssignCoursesRequest) (*models.StudentResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	codes := dedupeCodes(req.CourseCodes)

	courses, err := s.repo.Course().GetByCodes(ctx, codes)
	if err != nil {
		s.logger.Error("Failed to resolve course codes", "error", err)
		return nil, fmt.Errorf("%w: resolve course codes", ErrUnexpected)
	}

	if missing := missingCodes(codes, courses); len(missing) > 0 {
		return nil, fmt.Errorf("%w: courses not found: %s", ErrNotFound, strings.Join(missing, ", "))
	}

	added := make([]string, 0, len(courses))
	for _, course := range courses {
		if student.HasCourse(course.Code) {
			continue
		}
		student.AddCourse(course)
		added = append(added, course.Code)
	}

	if len(added) > 0 {
		if err := s.repo.Student().ReplaceCourses(ctx, student); err != nil {
			s.logger.Error("Failed to persist enrollments", "error", err, "student_id", id)
			return nil, fmt.Errorf("%w: assign courses", ErrUnexpected)
		}

		s.publish(ctx, events.NewEvent(events.EventCoursesAssigned, map[string]interface{}{
			"student_id":   student.ID,
			"course_codes": added,
		}))
	}

	s.logger.Info("Courses assigned", "student_id", id, "added", added)
	return models.NewStudentResponseWithCourses(student), nil
}

// RemoveCourse drops a single enrollment edge. Removing a course the student
// never had is a not found error.
func (s *studentService) RemoveCourse(ctx context.Context, id uint, code string) (*models.StudentResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if errs := s.validator.ValidateCourseCode(code); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if !student.HasCourse(code) {
		return nil, fmt.Errorf("%w: student %d is not enrolled in %s", ErrNotFound, id, code)
	}

	student.RemoveCourse(&models.Course{Code: code})

	if err := s.repo.Student().ReplaceCourses(ctx, student); err != nil {
		s.logger.Error("Failed to persist enrollments", "error", err, "student_id", id)
		return nil, fmt.Errorf("%w: remove course", ErrUnexpected)
	}

	s.publish(ctx, events.NewEvent(events.EventCourseRemoved, map[string]interface{}{
		"student_id":  student.ID,
		"course_code": code,
	}))

	s.logger.Info("Course removed", "student_id", id, "course_code", code)
	return models.NewStudentResponseWithCourses(student), nil
}

// ===== HELPERS =====

func (s *studentService) getStudent(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get student", "error", err, "student_id", id)
		return nil, fmt.Errorf("%w: get student", ErrUnexpected)
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %d", ErrNotFound, id)
	}
	return student, nil
}

func (s *studentService) requireStudent(ctx context.Context, id uint) error {
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

func (s *studentService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Events are best effort; a broker outage never fails the request.
		s.logger.Warn("Failed to publish event", "error", err, "event_type", event.Type)
	}
}

func dedupeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func missingCodes(requested []string, found []*models.Course) []string {
	resolved := make(map[string]struct{}, len(found))
	for _, c := range found {
		resolved[c.Code] = struct{}{}
	}

	var missing []string
	for _, code := range requested {
		if _, ok := resolved[code]; !ok {
			missing = append(missing, code)
		}
	}
	sort.Strings(missing)
	return missing
}

func courseCodes(courses []*models.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Code)
	}
	return out
}
