package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

// DefaultServiceManager wires concrete services over a repository manager.
type DefaultServiceManager struct {
	mu sync.RWMutex

	repoManager repositories.RepositoryManager
	validator   *validator.Validator
	publisher   events.EventPublisher
	logger      utils.Logger

	studentService StudentService
	courseService  CourseService
	exportService  ExportService
	seedService    SeedService

	initialized bool
}

func NewServiceManager(repoManager repositories.RepositoryManager, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) *DefaultServiceManager {
	return &DefaultServiceManager{
		repoManager: repoManager,
		validator:   v,
		publisher:   publisher,
		logger:      logger,
	}
}

func (m *DefaultServiceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.repoManager.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	repo := m.repoManager.GetRepository()

	m.studentService = NewStudentService(repo, m.validator, m.publisher, m.logger)
	m.courseService = NewCourseService(repo, m.validator, m.publisher, m.logger)
	m.exportService = NewExportService(repo, m.logger)
	m.seedService = NewSeedService(repo, m.logger)

	m.initialized = true
	m.logger.Info("Services initialized")
	return nil
}

func (m *DefaultServiceManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	return m.repoManager.HealthCheck(ctx)
}

func (m *DefaultServiceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			m.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	m.initialized = false
	return m.repoManager.Shutdown(ctx)
}

func (m *DefaultServiceManager) GetStudentService() StudentService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.studentService
}

func (m *DefaultServiceManager) GetCourseService() CourseService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.courseService
}

func (m *DefaultServiceManager) GetExportService() ExportService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exportService
}

func (m *DefaultServiceManager) GetSeedService() SeedService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seedService
}
