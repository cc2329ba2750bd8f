package validator

// StudentCreateRequest represents the request structure for creating students
type StudentCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// StudentUpdateRequest represents the request structure for updating students
type StudentUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

// CourseCreateRequest represents the request structure for creating courses
type CourseCreateRequest struct {
	Code        string  `json:"code" validate:"required,course_code"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CourseUpdateRequest updates title/description only. The code is the natural
// key and immutable after creation.
type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// AssignCoursesRequest assigns a batch of course codes to a student
type AssignCoursesRequest struct {
	CourseCodes []string `json:"course_codes" validate:"required,min=1,dive,course_code"`
}
