package models

// ===== RESPONSE DTOs =====

// StudentResponse is the external view of a student. The course set is only
// populated on endpoints that expose the relationship.
type StudentResponse struct {
	ID        uint              `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Courses   []*CourseResponse `json:"courses,omitempty"`
}

type CourseResponse struct {
	Code        string             `json:"code"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Students    []*StudentResponse `json:"students,omitempty"`
}

func NewStudentResponse(s *Student) *StudentResponse {
	return &StudentResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
	}
}

// NewStudentResponseWithCourses includes the student's full course set.
func NewStudentResponseWithCourses(s *Student) *StudentResponse {
	resp := NewStudentResponse(s)
	resp.Courses = make([]*CourseResponse, 0, len(s.Courses))
	for _, c := range s.Courses {
		resp.Courses = append(resp.Courses, NewCourseResponse(c))
	}
	return resp
}

func NewCourseResponse(c *Course) *CourseResponse {
	return &CourseResponse{
		Code:        c.Code,
		Title:       c.Title,
		Description: c.Description,
	}
}

// NewCourseResponseWithStudents includes the course's full student set.
func NewCourseResponseWithStudents(c *Course) *CourseResponse {
	resp := NewCourseResponse(c)
	resp.Students = make([]*StudentResponse, 0, len(c.Students))
	for _, s := range c.Students {
		resp.Students = append(resp.Students, NewStudentResponse(s))
	}
	return resp
}

func NewStudentResponses(students []*Student) []*StudentResponse {
	out := make([]*StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

func NewCourseResponses(courses []*Course) []*CourseResponse {
	out := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
