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

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// GetByCode retrieves a course by its code. Returns (nil, nil) when the code
// is unknown.
func (r *CoursePostgreSQL) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("code:%s", code)
	var cached models.Course
	if err := r.cacheManager.Course.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	var course models.Course
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	cache.SafeSet(ctx, r.cacheManager.Course, cacheKey, &course, cache.CourseCacheConfig.TTL)

	return &course, nil
}

func (r *CoursePostgreSQL) ExistsByCode(ctx context.Context, code string) (bool, error) {
	cacheKey := fmt.Sprintf("course:%s", code)
	var cached bool
	if err := r.cacheManager.Exists.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	cache.SafeSet(ctx, r.cacheManager.Exists, cacheKey, count > 0, cache.ExistsCacheConfig.TTL)
	return count > 0, nil
}

// GetByCodes retrieves every course matching the given codes in one query.
// Codes with no matching course are simply absent from the result.
func (r *CoursePostgreSQL) GetByCodes(ctx context.Context, codes []string) ([]*models.Course, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get courses by codes: %w", err)
	}

	return courses, nil
}

func (r *CoursePostgreSQL) GetAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course

	err := r.cacheManager.Course.CacheOrExecute(ctx, "list", &courses, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		if err := r.db.WithContext(ctx).Order("code ASC").Find(&dbCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		return dbCourses, nil
	})

	return courses, err
}

var courseSortColumns = map[string]string{
	"code":  "code",
	"title": "title",
}

func (r *CoursePostgreSQL) GetPaged(ctx context.Context, filters repositories.PageFilters) ([]*models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	column, ok := courseSortColumns[filters.SortBy]
	if !ok {
		column = "code"
	}
	order := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		order = "DESC"
	}

	var courses []*models.Course
	err := query.
		Order(fmt.Sprintf("%s %s", column, order)).
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get paged courses: %w", err)
	}

	return courses, total, nil
}

// Search matches the query case-insensitively against code, title and
// description.
func (r *CoursePostgreSQL) Search(ctx context.Context, query string) ([]*models.Course, error) {
	pattern := likePattern(query)

	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Where("LOWER(code) LIKE ? OR LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern, pattern).
		Order("code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	return courses, nil
}

// GetByStudentID retrieves the student's course set with caching.
func (r *CoursePostgreSQL) GetByStudentID(ctx context.Context, studentID uint) ([]*models.Course, error) {
	cacheKey := fmt.Sprintf("student:%d:courses", studentID)
	var courses []*models.Course

	err := r.cacheManager.Relation.CacheOrExecute(ctx, cacheKey, &courses, cache.RelationCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		err := r.db.WithContext(ctx).
			Joins("JOIN student_courses ON student_courses.course_code = courses.code").
			Where("student_courses.student_id = ?", studentID).
			Order("courses.code ASC").
			Find(&dbCourses).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get courses by student: %w", err)
		}
		return dbCourses, nil
	})

	return courses, err
}

// GetNotTakenByStudent retrieves every course the student is not enrolled in.
func (r *CoursePostgreSQL) GetNotTakenByStudent(ctx context.Context, studentID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Where("code NOT IN (?)", r.db.
			Table("student_courses").
			Select("course_code").
			Where("student_id = ?", studentID)).
		Order("code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get courses not taken: %w", err)
	}

	return courses, nil
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	cache.InvalidateCourse(ctx, r.cacheManager, course.Code, false)
	return nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	cache.InvalidateCourse(ctx, r.cacheManager, course.Code, false)
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, code string) error {
	course := models.Course{Code: code}

	// Detach enrollment edges first so no join row survives the delete.
	if err := r.db.WithContext(ctx).Model(&course).Association("Students").Clear(); err != nil {
		return fmt.Errorf("failed to clear enrollments: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&course).Error; err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	cache.InvalidateCourse(ctx, r.cacheManager, code, true)
	return nil
}
