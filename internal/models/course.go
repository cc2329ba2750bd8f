package models

import (
	"time"
)

type Course struct {
	// Natural key: short uppercase alphanumeric code, immutable after creation.
	Code        string  `json:"code" gorm:"primaryKey;size:10" validate:"required,course_code"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`

	Students []*Student `json:"students,omitempty" gorm:"many2many:student_courses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) hasStudent(id uint) bool {
	for _, s := range c.Students {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (c *Course) addStudent(student *Student) {
	if c.hasStudent(student.ID) {
		return
	}
	c.Students = append(c.Students, student)
}

func (c *Course) removeStudent(id uint) {
	for i, s := range c.Students {
		if s.ID == id {
			c.Students = append(c.Students[:i], c.Students[i+1:]...)
			return
		}
	}
}
