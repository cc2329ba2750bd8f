package repositories

import (
	"context"

	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type PageFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // students: "last_name", "first_name", "email"; courses: "code", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

// StudentRepository is the persistence capability for the Student aggregate.
// Relationship edges are loaded with the aggregate; mutations that touch the
// edges go through ReplaceCourses so both directions stay consistent.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)

	GetAll(ctx context.Context) ([]*models.Student, error)
	GetPaged(ctx context.Context, filters PageFilters) ([]*models.Student, int64, error)
	Search(ctx context.Context, query string) ([]*models.Student, error)
	GetByCourseCode(ctx context.Context, code string) ([]*models.Student, error)

	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error

	// ReplaceCourses persists the student's course set exactly as given,
	// adding and removing join rows as needed.
	ReplaceCourses(ctx context.Context, student *models.Student) error
}

// CourseRepository is the persistence capability for the Course aggregate.
type CourseRepository interface {
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// GetByCodes resolves a batch of codes in one lookup; missing codes are
	// simply absent from the result, the caller decides what that means.
	GetByCodes(ctx context.Context, codes []string) ([]*models.Course, error)

	GetAll(ctx context.Context) ([]*models.Course, error)
	GetPaged(ctx context.Context, filters PageFilters) ([]*models.Course, int64, error)
	Search(ctx context.Context, query string) ([]*models.Course, error)
	GetByStudentID(ctx context.Context, studentID uint) ([]*models.Course, error)
	GetNotTakenByStudent(ctx context.Context, studentID uint) ([]*models.Course, error)

	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, code string) error
}
