package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/goldenglowitsolutions/scheduling-service/internal/models"
	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

type seedService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewSeedService(repo repositories.Repository, logger utils.Logger) SeedService {
	return &seedService{
		repo:   repo,
		logger: logger,
	}
}

func strPtr(s string) *string { return &s }

var sampleCourses = []*models.Course{
	{Code: "CS101", Title: "Introduction to Computer Science", Description: strPtr("Fundamental concepts of programming and computer science")},
	{Code: "CS201", Title: "Data Structures and Algorithms", Description: strPtr("Core data structures and algorithmic problem solving")},
	{Code: "MATH201", Title: "Calculus II", Description: strPtr("Integration techniques, sequences and series")},
	{Code: "PHYS101", Title: "General Physics I", Description: strPtr("Mechanics, waves and thermodynamics")},
	{Code: "ENG102", Title: "Academic Writing", Description: strPtr("Essay structure, argumentation and research writing")},
	{Code: "HIST150", Title: "World History", Description: strPtr("Survey of world history from antiquity to the present")},
	{Code: "BIO110", Title: "Introduction to Biology", Description: strPtr("Cell biology, genetics and evolution")},
	{Code: "CHEM101", Title: "General Chemistry", Description: strPtr("Atomic structure, bonding and reactions")},
}

var sampleFirstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Jane",
	"Daniel", "Nancy", "Matthew", "Lisa",
}

var sampleLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

// LoadSampleData seeds the catalog and a roster of fifty students with random
// enrollments. Idempotent: a non-empty student table means an already seeded
// (or live) database and the seeder backs off.
func (s *seedService) LoadSampleData(ctx context.Context) error {
	existing, err := s.repo.Student().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect student table: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("Sample data skipped, students already present", "count", len(existing))
		return nil
	}

	courses := make([]*models.Course, 0, len(sampleCourses))
	for _, template := range sampleCourses {
		course := *template
		exists, err := s.repo.Course().ExistsByCode(ctx, course.Code)
		if err != nil {
			return fmt.Errorf("failed to check course %s: %w", course.Code, err)
		}
		if !exists {
			if err := s.repo.Course().Create(ctx, &course); err != nil {
				return fmt.Errorf("failed to seed course %s: %w", course.Code, err)
			}
		}
		courses = append(courses, &course)
	}

	// Deterministic roster so repeated fresh seeds produce the same data.
	rng := rand.New(rand.NewSource(42))

	const studentCount = 50
	for i := 0; i < studentCount; i++ {
		firstName := sampleFirstNames[i%len(sampleFirstNames)]
		lastName := sampleLastNames[i%len(sampleLastNames)]
		student := &models.Student{
			FirstName: firstName,
			LastName:  lastName,
			Email: fmt.Sprintf("%s.%s%d@university.edu",
				strings.ToLower(firstName), strings.ToLower(lastName), i+1),
		}

		if err := s.repo.Student().Create(ctx, student); err != nil {
			return fmt.Errorf("failed to seed student %s %s: %w", firstName, lastName, err)
		}

		// Between three and seven distinct courses per student.
		enrollments := 3 + rng.Intn(5)
		for _, idx := range rng.Perm(len(courses))[:enrollments] {
			student.AddCourse(courses[idx])
		}
		if err := s.repo.Student().ReplaceCourses(ctx, student); err != nil {
			return fmt.Errorf("failed to seed enrollments for student %d: %w", student.ID, err)
		}
	}

	s.logger.Info("Sample data loaded", "courses", len(courses), "students", studentCount)
	return nil
}
