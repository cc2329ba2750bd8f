package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goldenglowitsolutions/scheduling-service/internal/events"
	"github.com/goldenglowitsolutions/scheduling-service/internal/validator"
)

func TestStudentService_CreateStudent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	t.Run("creates with trimmed fields", func(t *testing.T) {
		resp, err := fx.students.CreateStudent(ctx, &validator.StudentCreateRequest{
			FirstName: "  Jane ",
			LastName:  "Smith",
			Email:     "jane.smith@university.edu",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ID == 0 {
			t.Error("expected assigned id")
		}
		if resp.FirstName != "Jane" {
			t.Errorf("expected trimmed first name, got %q", resp.FirstName)
		}
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := fx.students.CreateStudent(ctx, &validator.StudentCreateRequest{
			FirstName: "Jane",
			LastName:  "Smith",
			Email:     "not-an-email",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := fx.students.CreateStudent(ctx, &validator.StudentCreateRequest{Email: "a@b.co"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestStudentService_GetStudent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	fx.seedCourse("CS101", "Introduction to Computer Science")
	id := fx.seedStudent("Jane", "Smith", "jane@university.edu")
	fx.enroll(id, "CS101")

	t.Run("returns student with courses", func(t *testing.T) {
		resp, err := fx.students.GetStudent(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Courses) != 1 || resp.Courses[0].Code != "CS101" {
			t.Errorf("expected CS101 enrollment, got %+v", resp.Courses)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := fx.students.GetStudent(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStudentService_AssignCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns multiple courses at once", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		fx.seedCourse("MATH201", "Calculus II")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		resp, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101", "MATH201"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Courses) != 2 {
			t.Fatalf("expected 2 enrollments, got %d", len(resp.Courses))
		}

		// The relationship must be visible from the course side too.
		students, err := fx.courses.GetCourseStudents(ctx, "CS101")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(students) != 1 || students[0].ID != id {
			t.Errorf("expected student %d on course side, got %+v", id, students)
		}
	})

	t.Run("any unknown code fails the whole batch", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		_, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101", "NOPE99"},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "NOPE99") {
			t.Errorf("expected missing code in error, got %q", err.Error())
		}

		// No partial enrollment.
		courses, err := fx.students.GetStudentCourses(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(courses) != 0 {
			t.Errorf("expected no enrollments after failed batch, got %d", len(courses))
		}
	})

	t.Run("already enrolled codes are skipped", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		fx.seedCourse("MATH201", "Calculus II")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")
		fx.enroll(id, "CS101")

		resp, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101", "MATH201"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Courses) != 2 {
			t.Errorf("expected 2 enrollments, got %d", len(resp.Courses))
		}
	})

	t.Run("duplicate codes in one request count once", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		resp, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101", "CS101"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Courses) != 1 {
			t.Errorf("expected 1 enrollment, got %d", len(resp.Courses))
		}
	})

	t.Run("publishes courses assigned event", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		if _, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		published := fx.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventCoursesAssigned {
			t.Errorf("expected one %s event, got %+v", events.EventCoursesAssigned, published)
		}
	})

	t.Run("unknown student is not found", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")

		_, err := fx.students.AssignCourses(ctx, 42, &validator.AssignCoursesRequest{
			CourseCodes: []string{"CS101"},
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty code list fails validation", func(t *testing.T) {
		fx := newFixture()
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		_, err := fx.students.AssignCourses(ctx, id, &validator.AssignCoursesRequest{})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestStudentService_RemoveCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a single enrollment", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		fx.seedCourse("MATH201", "Calculus II")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")
		fx.enroll(id, "CS101", "MATH201")

		resp, err := fx.students.RemoveCourse(ctx, id, "CS101")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Courses) != 1 || resp.Courses[0].Code != "MATH201" {
			t.Errorf("expected only MATH201 left, got %+v", resp.Courses)
		}

		// The course side no longer lists the student.
		students, err := fx.courses.GetCourseStudents(ctx, "CS101")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(students) != 0 {
			t.Errorf("expected empty roster, got %+v", students)
		}
	})

	t.Run("removing an enrollment the student never had is not found", func(t *testing.T) {
		fx := newFixture()
		fx.seedCourse("CS101", "Intro CS")
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		_, err := fx.students.RemoveCourse(ctx, id, "CS101")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("malformed code fails validation", func(t *testing.T) {
		fx := newFixture()
		id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

		_, err := fx.students.RemoveCourse(ctx, id, "bad code!")
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestStudentService_DeleteStudent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	fx.seedCourse("CS101", "Intro CS")
	id := fx.seedStudent("Jane", "Smith", "jane@university.edu")
	fx.enroll(id, "CS101")

	if err := fx.students.DeleteStudent(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := fx.students.GetStudent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// No dangling edge on the course side.
	students, err := fx.courses.GetCourseStudents(ctx, "CS101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("expected empty roster after student delete, got %+v", students)
	}

	published := fx.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentDeleted {
		t.Errorf("expected one %s event, got %+v", events.EventStudentDeleted, published)
	}
}

func TestStudentService_SearchStudents(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	fx.seedStudent("Jane", "Smith", "jane.smith@university.edu")
	fx.seedStudent("John", "Doe", "john.doe@university.edu")

	t.Run("matches case insensitively", func(t *testing.T) {
		results, err := fx.students.SearchStudents(ctx, "JANE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].FirstName != "Jane" {
			t.Errorf("expected Jane, got %+v", results)
		}
	})

	t.Run("blank query returns everyone", func(t *testing.T) {
		results, err := fx.students.SearchStudents(ctx, "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected 2 students, got %d", len(results))
		}
	})
}

func TestStudentService_GetStudentsPaged(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		fx.seedStudent("Student", "Number", "student@university.edu")
	}

	t.Run("first page", func(t *testing.T) {
		resp, err := fx.students.GetStudentsPaged(ctx, PageRequest{Page: 1, Size: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Students) != 10 {
			t.Errorf("expected 10 students, got %d", len(resp.Students))
		}
		if resp.TotalItems != 25 {
			t.Errorf("expected 25 total, got %d", resp.TotalItems)
		}
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		resp, err := fx.students.GetStudentsPaged(ctx, PageRequest{Page: 3, Size: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Students) != 5 {
			t.Errorf("expected 5 students on last page, got %d", len(resp.Students))
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp, err := fx.students.GetStudentsPaged(ctx, PageRequest{Page: 9, Size: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Students) != 0 {
			t.Errorf("expected empty page, got %d", len(resp.Students))
		}
	})

	t.Run("out of range values are normalized", func(t *testing.T) {
		resp, err := fx.students.GetStudentsPaged(ctx, PageRequest{Page: -1, Size: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Page != 1 {
			t.Errorf("expected page 1, got %d", resp.Page)
		}
		if resp.Size != MaxPageSize {
			t.Errorf("expected size clamped to %d, got %d", MaxPageSize, resp.Size)
		}
	})
}

func TestStudentService_UpdateStudent(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	id := fx.seedStudent("Jane", "Smith", "jane@university.edu")

	newEmail := "jane.smith@university.edu"
	resp, err := fx.students.UpdateStudent(ctx, id, &validator.StudentUpdateRequest{Email: &newEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Email != newEmail {
		t.Errorf("expected updated email, got %q", resp.Email)
	}
	if resp.FirstName != "Jane" {
		t.Errorf("untouched fields must survive, got %q", resp.FirstName)
	}
}
