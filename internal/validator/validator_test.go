package validator

import (
	"strings"
	"testing"
)

func TestValidateCourseCode(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"typical code", "CS101", true},
		{"letters only", "MATH", true},
		{"digits only", "101", true},
		{"minimum length", "AB", true},
		{"maximum length", "ABCDE12345", true},
		{"too short", "A", false},
		{"too long", "ABCDE123456", false},
		{"lowercase", "cs101", false},
		{"embedded space", "CS 101", false},
		{"punctuation", "CS-101", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateCourseCode(tt.code)
			if tt.valid && errs.HasErrors() {
				t.Errorf("expected %q to be valid, got %v", tt.code, errs)
			}
			if !tt.valid && !errs.HasErrors() {
				t.Errorf("expected %q to be rejected", tt.code)
			}
		})
	}
}

func TestValidate_StudentCreateRequest(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		errs := v.Validate(&StudentCreateRequest{
			FirstName: "Jane",
			LastName:  "Smith",
			Email:     "jane.smith@university.edu",
		})
		if errs.HasErrors() {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("missing everything reports each field", func(t *testing.T) {
		errs := v.Validate(&StudentCreateRequest{})
		if len(errs) != 3 {
			t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
		}
	})

	t.Run("bad email", func(t *testing.T) {
		errs := v.Validate(&StudentCreateRequest{
			FirstName: "Jane",
			LastName:  "Smith",
			Email:     "not-an-email",
		})
		if len(errs) != 1 || errs[0].Rule != "email" {
			t.Errorf("expected one email error, got %v", errs)
		}
	})

	t.Run("overlong name", func(t *testing.T) {
		errs := v.Validate(&StudentCreateRequest{
			FirstName: strings.Repeat("x", 101),
			LastName:  "Smith",
			Email:     "jane@university.edu",
		})
		if len(errs) != 1 || errs[0].Rule != "max" {
			t.Errorf("expected one max error, got %v", errs)
		}
	})
}

func TestValidate_CourseCreateRequest(t *testing.T) {
	v := New()

	t.Run("valid request", func(t *testing.T) {
		errs := v.Validate(&CourseCreateRequest{
			Code:  "CS101",
			Title: "Introduction to Computer Science",
		})
		if errs.HasErrors() {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("malformed code", func(t *testing.T) {
		errs := v.Validate(&CourseCreateRequest{
			Code:  "cs-101",
			Title: "Introduction to Computer Science",
		})
		if !errs.HasErrors() {
			t.Error("expected code to be rejected")
		}
	})
}

func TestValidate_AssignCoursesRequest(t *testing.T) {
	v := New()

	t.Run("valid batch", func(t *testing.T) {
		errs := v.Validate(&AssignCoursesRequest{CourseCodes: []string{"CS101", "MATH201"}})
		if errs.HasErrors() {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		errs := v.Validate(&AssignCoursesRequest{CourseCodes: []string{}})
		if !errs.HasErrors() {
			t.Error("expected empty batch to be rejected")
		}
	})

	t.Run("one bad code rejects the batch", func(t *testing.T) {
		errs := v.Validate(&AssignCoursesRequest{CourseCodes: []string{"CS101", "bad!"}})
		if !errs.HasErrors() {
			t.Error("expected malformed code to be rejected")
		}
	})
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "code", Message: "is required"},
	}
	got := errs.Error()
	if !strings.Contains(got, "email") || !strings.Contains(got, "code") {
		t.Errorf("expected both fields in message, got %q", got)
	}

	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("empty errors must render empty, got %q", empty.Error())
	}
	if empty.HasErrors() {
		t.Error("empty errors must report no errors")
	}
}
