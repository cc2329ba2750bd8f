package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

// fakeRepository is an in-memory Repository. Enrollment edges live in a
// single set, so both relationship directions are always views of the same
// state, exactly like the join table in postgres.
type fakeRepository struct {
	students map[uint]*models.Student
	courses  map[string]*models.Course
	edges    map[uint]map[string]bool
	nextID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		students: make(map[uint]*models.Student),
		courses:  make(map[string]*models.Course),
		edges:    make(map[uint]map[string]bool),
	}
}

func (f *fakeRepository) Student() repositories.StudentRepository { return &fakeStudentRepo{f} }
func (f *fakeRepository) Course() repositories.CourseRepository   { return &fakeCourseRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

func (f *fakeRepository) studentCodes(id uint) []string {
	var codes []string
	for code := range f.edges[id] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ===== STUDENT SIDE =====

type fakeStudentRepo struct{ f *fakeRepository }

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	stored, ok := r.f.students[id]
	if !ok {
		return nil, nil
	}

	out := *stored
	out.Courses = nil
	for _, code := range r.f.studentCodes(id) {
		course := *r.f.courses[code]
		course.Students = nil
		out.Courses = append(out.Courses, &course)
	}
	return &out, nil
}

func (r *fakeStudentRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.f.students[id]
	return ok, nil
}

func (r *fakeStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	var ids []uint
	for id := range r.f.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		s := *r.f.students[id]
		s.Courses = nil
		out = append(out, &s)
	}
	return out, nil
}

func (r *fakeStudentRepo) GetPaged(ctx context.Context, filters repositories.PageFilters) ([]*models.Student, int64, error) {
	all, _ := r.GetAll(ctx)
	total := int64(len(all))

	start := filters.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + filters.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeStudentRepo) Search(ctx context.Context, query string) ([]*models.Student, error) {
	q := strings.ToLower(query)
	all, _ := r.GetAll(ctx)

	var out []*models.Student
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.FirstName), q) ||
			strings.Contains(strings.ToLower(s.LastName), q) ||
			strings.Contains(strings.ToLower(s.Email), q) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) GetByCourseCode(ctx context.Context, code string) ([]*models.Student, error) {
	var ids []uint
	for id, codes := range r.f.edges {
		if codes[code] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		s := *r.f.students[id]
		s.Courses = nil
		out = append(out, &s)
	}
	return out, nil
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.f.nextID++
	student.ID = r.f.nextID

	stored := *student
	stored.Courses = nil
	r.f.students[student.ID] = &stored
	r.f.edges[student.ID] = make(map[string]bool)
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := r.f.students[student.ID]; !ok {
		return fmt.Errorf("student %d not found", student.ID)
	}
	stored := *student
	stored.Courses = nil
	r.f.students[student.ID] = &stored
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uint) error {
	delete(r.f.students, id)
	delete(r.f.edges, id)
	return nil
}

func (r *fakeStudentRepo) ReplaceCourses(ctx context.Context, student *models.Student) error {
	set := make(map[string]bool, len(student.Courses))
	for _, c := range student.Courses {
		if _, ok := r.f.courses[c.Code]; !ok {
			return fmt.Errorf("course %s not found", c.Code)
		}
		set[c.Code] = true
	}
	r.f.edges[student.ID] = set
	return nil
}

// ===== COURSE SIDE =====

type fakeCourseRepo struct{ f *fakeRepository }

func (r *fakeCourseRepo) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	stored, ok := r.f.courses[code]
	if !ok {
		return nil, nil
	}
	out := *stored
	out.Students = nil
	return &out, nil
}

func (r *fakeCourseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, ok := r.f.courses[code]
	return ok, nil
}

func (r *fakeCourseRepo) GetByCodes(ctx context.Context, codes []string) ([]*models.Course, error) {
	var out []*models.Course
	for _, code := range codes {
		if c, ok := r.f.courses[code]; ok {
			copied := *c
			copied.Students = nil
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) GetAll(ctx context.Context) ([]*models.Course, error) {
	var codes []string
	for code := range r.f.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]*models.Course, 0, len(codes))
	for _, code := range codes {
		c := *r.f.courses[code]
		c.Students = nil
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetPaged(ctx context.Context, filters repositories.PageFilters) ([]*models.Course, int64, error) {
	all, _ := r.GetAll(ctx)
	total := int64(len(all))

	start := filters.Offset
	if start > len(all) {
		start = len(all)
	}
	end := start + filters.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeCourseRepo) Search(ctx context.Context, query string) ([]*models.Course, error) {
	q := strings.ToLower(query)
	all, _ := r.GetAll(ctx)

	var out []*models.Course
	for _, c := range all {
		description := ""
		if c.Description != nil {
			description = strings.ToLower(*c.Description)
		}
		if strings.Contains(strings.ToLower(c.Code), q) ||
			strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(description, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByStudentID(ctx context.Context, studentID uint) ([]*models.Course, error) {
	out := make([]*models.Course, 0)
	for _, code := range r.f.studentCodes(studentID) {
		c := *r.f.courses[code]
		c.Students = nil
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetNotTakenByStudent(ctx context.Context, studentID uint) ([]*models.Course, error) {
	taken := r.f.edges[studentID]
	all, _ := r.GetAll(ctx)

	out := make([]*models.Course, 0)
	for _, c := range all {
		if !taken[c.Code] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if _, ok := r.f.courses[course.Code]; ok {
		return fmt.Errorf("course %s already exists", course.Code)
	}
	stored := *course
	stored.Students = nil
	r.f.courses[course.Code] = &stored
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.f.courses[course.Code]; !ok {
		return fmt.Errorf("course %s not found", course.Code)
	}
	stored := *course
	stored.Students = nil
	r.f.courses[course.Code] = &stored
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, code string) error {
	delete(r.f.courses, code)
	for _, set := range r.f.edges {
		delete(set, code)
	}
	return nil
}

// ===== FIXTURE =====

type fixture struct {
	repo      *fakeRepository
	publisher *events.MockEventPublisher
	students  StudentService
	courses   CourseService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newFixture() *fixture {
	logger := utils.NewSlogLogger(discardLogger())
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(nil)
	v := validator.New()

	return &fixture{
		repo:      repo,
		publisher: publisher,
		students:  NewStudentService(repo, v, publisher, logger),
		courses:   NewCourseService(repo, v, publisher, logger),
	}
}

func (fx *fixture) seedCourse(code, title string) {
	fx.repo.courses[code] = &models.Course{Code: code, Title: title}
}

func (fx *fixture) seedCourseWithDescription(code, title, description string) {
	fx.repo.courses[code] = &models.Course{Code: code, Title: title, Description: &description}
}

func (fx *fixture) seedStudent(firstName, lastName, email string) uint {
	fx.repo.nextID++
	id := fx.repo.nextID
	fx.repo.students[id] = &models.Student{ID: id, FirstName: firstName, LastName: lastName, Email: email}
	fx.repo.edges[id] = make(map[string]bool)
	return id
}

func (fx *fixture) enroll(id uint, codes ...string) {
	for _, code := range codes {
		fx.repo.edges[id][code] = true
	}
}
