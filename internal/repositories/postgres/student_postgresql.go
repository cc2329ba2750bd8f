package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goldenglowitsolutions/scheduling-service/internal/cache"
	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// GetByID retrieves a student with its course set. Returns (nil, nil) when
// the id is unknown.
func (r *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var cached models.Student
	if err := r.cacheManager.Student.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("Courses").
		First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	// Cache failures never fail the read path.
	cache.SafeSet(ctx, r.cacheManager.Student, cacheKey, &student, cache.StudentCacheConfig.TTL)

	return &student, nil
}

func (r *StudentPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	cacheKey := fmt.Sprintf("student:%d", id)
	var cached bool
	if err := r.cacheManager.Exists.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}

	cache.SafeSet(ctx, r.cacheManager.Exists, cacheKey, count > 0, cache.ExistsCacheConfig.TTL)
	return count > 0, nil
}

// GetAll retrieves the full student list with caching.
func (r *StudentPostgreSQL) GetAll(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student

	err := r.cacheManager.Student.CacheOrExecute(ctx, "list", &students, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		var dbStudents []*models.Student
		if err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&dbStudents).Error; err != nil {
			return nil, fmt.Errorf("failed to list students: %w", err)
		}
		return dbStudents, nil
	})

	return students, err
}

var studentSortColumns = map[string]string{
	"last_name":  "last_name",
	"first_name": "first_name",
	"email":      "email",
	"id":         "id",
}

func (r *StudentPostgreSQL) GetPaged(ctx context.Context, filters repositories.PageFilters) ([]*models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	column, ok := studentSortColumns[filters.SortBy]
	if !ok {
		column = "last_name"
	}
	order := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		order = "DESC"
	}

	var students []*models.Student
	err := query.
		Order(fmt.Sprintf("%s %s", column, order)).
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&students).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get paged students: %w", err)
	}

	return students, total, nil
}

// Search matches the query case-insensitively against first name, last name
// and email.
func (r *StudentPostgreSQL) Search(ctx context.Context, query string) ([]*models.Student, error) {
	pattern := likePattern(query)

	var students []*models.Student
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern).
		Order("last_name ASC, first_name ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}

	return students, nil
}

// GetByCourseCode retrieves the course's student set with caching.
func (r *StudentPostgreSQL) GetByCourseCode(ctx context.Context, code string) ([]*models.Student, error) {
	cacheKey := fmt.Sprintf("course:%s:students", code)
	var students []*models.Student

	err := r.cacheManager.Relation.CacheOrExecute(ctx, cacheKey, &students, cache.RelationCacheConfig.TTL, func() (interface{}, error) {
		var dbStudents []*models.Student
		err := r.db.WithContext(ctx).
			Joins("JOIN student_courses ON student_courses.student_id = students.id").
			Where("student_courses.course_code = ?", code).
			Order("students.last_name ASC").
			Find(&dbStudents).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get students by course: %w", err)
		}
		return dbStudents, nil
	})

	return students, err
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	cache.InvalidateStudent(ctx, r.cacheManager, student.ID, false)
	return nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	cache.InvalidateStudent(ctx, r.cacheManager, student.ID, false)
	return nil
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	student := models.Student{ID: id}

	// Detach enrollment edges first so no join row survives the delete.
	if err := r.db.WithContext(ctx).Model(&student).Association("Courses").Clear(); err != nil {
		return fmt.Errorf("failed to clear enrollments: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&student).Error; err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	cache.InvalidateStudent(ctx, r.cacheManager, id, true)
	return nil
}

// ReplaceCourses persists the student's current in-memory course set as the
// authoritative enrollment state.
func (r *StudentPostgreSQL) ReplaceCourses(ctx context.Context, student *models.Student) error {
	err := r.db.WithContext(ctx).
		Model(student).
		Association("Courses").
		Replace(student.Courses)
	if err != nil {
		return fmt.Errorf("failed to replace enrollments: %w", err)
	}

	cache.InvalidateStudent(ctx, r.cacheManager, student.ID, true)
	return nil
}
