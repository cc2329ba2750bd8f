package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
)

// PostgreSQLRepository aggregates the per-entity repositories over a shared
// gorm handle and redis client.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	student repositories.StudentRepository
	course  repositories.CourseRepository
}

func NewPostgreSQLRepository(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepository {
	return &PostgreSQLRepository{
		db:          db,
		redisClient: redisClient,
		student:     NewStudentPostgreSQL(db, redisClient),
		course:      NewCoursePostgreSQL(db, redisClient),
	}
}

func (r *PostgreSQLRepository) Student() repositories.StudentRepository {
	return r.student
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

// WithTransaction runs fn against a repository bound to a database
// transaction. Any error from fn rolls the transaction back.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgreSQLRepository(tx, r.redisClient))
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// likeEscaper neutralizes LIKE metacharacters so user input always matches
// literally. Backslash is the postgres default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive contains pattern from raw user input.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// PostgreSQLRepositoryManager owns the repository lifecycle.
type PostgreSQLRepositoryManager struct {
	mu          sync.RWMutex
	db          *gorm.DB
	redisClient *redis.Client
	repository  *PostgreSQLRepository
	initialized bool
}

func NewPostgreSQLRepositoryManager(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepositoryManager {
	return &PostgreSQLRepositoryManager{
		db:          db,
		redisClient: redisClient,
	}
}

func (m *PostgreSQLRepositoryManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	repo := NewPostgreSQLRepository(m.db, m.redisClient)
	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	m.repository = repo
	m.initialized = true
	return nil
}

func (m *PostgreSQLRepositoryManager) GetRepository() repositories.Repository {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.repository
}

func (m *PostgreSQLRepositoryManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("repository manager not initialized")
	}
	return m.repository.Ping(ctx)
}

func (m *PostgreSQLRepositoryManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	m.initialized = false
	return m.repository.Close()
}
