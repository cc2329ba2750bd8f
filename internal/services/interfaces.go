package services

import (
	"context"

	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

// ===== PAGINATION =====

// Pages are 1-based on the API surface.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageRequest struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// Normalize clamps the request to sane bounds.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// Offset converts the 1-based page to a row offset.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

type PagedStudentsResponse struct {
	Students   []*models.StudentResponse `json:"students"`
	Page       int                       `json:"page"`
	Size       int                       `json:"size"`
	TotalItems int64                     `json:"total_items"`
	TotalPages int                       `json:"total_pages"`
}

type PagedCoursesResponse struct {
	Courses    []*models.CourseResponse `json:"courses"`
	Page       int                      `json:"page"`
	Size       int                      `json:"size"`
	TotalItems int64                    `json:"total_items"`
	TotalPages int                      `json:"total_pages"`
}

func totalPages(totalItems int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(totalItems) / size
	if int(totalItems)%size != 0 {
		pages++
	}
	return pages
}

// ===== SERVICE INTERFACES =====

// StudentService owns the student aggregate and the enrollment edges. Every
// operation that mutates the edges keeps both directions of the relationship
// consistent.
type StudentService interface {
	CreateStudent(ctx context.Context, req *validator.StudentCreateRequest) (*models.StudentResponse, error)
	GetStudent(ctx context.Context, id uint) (*models.StudentResponse, error)
	GetAllStudents(ctx context.Context) ([]*models.StudentResponse, error)
	GetStudentsPaged(ctx context.Context, page PageRequest) (*PagedStudentsResponse, error)
	SearchStudents(ctx context.Context, query string) ([]*models.StudentResponse, error)
	UpdateStudent(ctx context.Context, id uint, req *validator.StudentUpdateRequest) (*models.StudentResponse, error)
	DeleteStudent(ctx context.Context, id uint) error

	// Enrollment operations
	GetStudentCourses(ctx context.Context, id uint) ([]*models.CourseResponse, error)
	AssignCourses(ctx context.Context, id uint, req *validator.AssignCoursesRequest) (*models.StudentResponse, error)
	RemoveCourse(ctx context.Context, id uint, code string) (*models.StudentResponse, error)
}

// CourseService owns the course aggregate and its relationship views.
type CourseService interface {
	CreateCourse(ctx context.Context, req *validator.CourseCreateRequest) (*models.CourseResponse, error)
	GetCourse(ctx context.Context, code string) (*models.CourseResponse, error)
	GetCourseWithStudents(ctx context.Context, code string) (*models.CourseResponse, error)
	GetAllCourses(ctx context.Context) ([]*models.CourseResponse, error)
	GetCoursesPaged(ctx context.Context, page PageRequest) (*PagedCoursesResponse, error)
	SearchCourses(ctx context.Context, query string) ([]*models.CourseResponse, error)
	UpdateCourse(ctx context.Context, code string, req *validator.CourseUpdateRequest) (*models.CourseResponse, error)
	DeleteCourse(ctx context.Context, code string) error

	// Relationship views
	GetCourseStudents(ctx context.Context, code string) ([]*models.StudentResponse, error)
	GetCoursesByStudent(ctx context.Context, studentID uint) ([]*models.CourseResponse, error)
	GetCoursesNotTaken(ctx context.Context, studentID uint) ([]*models.CourseResponse, error)
}

// ExportService renders rosters as spreadsheets.
type ExportService interface {
	ExportStudents(ctx context.Context) ([]byte, error)
	ExportCourses(ctx context.Context) ([]byte, error)
}

// SeedService loads sample data for non-production environments.
type SeedService interface {
	LoadSampleData(ctx context.Context) error
}

// ServiceManager wires the services and owns their lifecycle.
type ServiceManager interface {
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error

	GetStudentService() StudentService
	GetCourseService() CourseService
	GetExportService() ExportService
	GetSeedService() SeedService
}
