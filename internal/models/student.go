package models

import (
	"time"
)

type Student struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email     string `json:"email" gorm:"not null;size:255;index" validate:"required,email,max=255"`

	// Enrollment relationship. Neither side owns it exclusively; both sides are
	// kept in sync by the student service, never by mutating one collection alone.
	Courses []*Course `json:"courses,omitempty" gorm:"many2many:student_courses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// HasCourse reports whether the student is enrolled in the given course code.
func (s *Student) HasCourse(code string) bool {
	for _, c := range s.Courses {
		if c.Code == code {
			return true
		}
	}
	return false
}

// AddCourse links both sides of the enrollment. Idempotent.
func (s *Student) AddCourse(course *Course) {
	if s.HasCourse(course.Code) {
		return
	}
	s.Courses = append(s.Courses, course)
	course.addStudent(s)
}

// RemoveCourse unlinks both sides of the enrollment.
func (s *Student) RemoveCourse(course *Course) {
	for i, c := range s.Courses {
		if c.Code == course.Code {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			break
		}
	}
	course.removeStudent(s.ID)
}
