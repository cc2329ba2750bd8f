package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goldenglowitsolutions/scheduling-service/internal/repositories"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportStudents renders the student roster as an xlsx workbook, one row per
// student with the enrolled course codes joined in the last column.
func (s *exportService) ExportStudents(ctx context.Context) ([]byte, error) {
	students, err := s.repo.Student().GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load students for export", "error", err)
		return nil, fmt.Errorf("%w: export students", ErrUnexpected)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "First Name", "Last Name", "Email", "Courses"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, student := range students {
		courses, err := s.repo.Course().GetByStudentID(ctx, student.ID)
		if err != nil {
			s.logger.Error("Failed to load enrollments for export", "error", err, "student_id", student.ID)
			return nil, fmt.Errorf("%w: export students", ErrUnexpected)
		}

		row := rowIdx + 2
		values := []interface{}{
			student.ID,
			student.FirstName,
			student.LastName,
			student.Email,
			strings.Join(courseCodes(courses), ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to write workbook", "error", err)
		return nil, fmt.Errorf("%w: export students", ErrUnexpected)
	}

	s.logger.Info("Student roster exported", "rows", len(students))
	return buf.Bytes(), nil
}

// ExportCourses renders the course catalog as an xlsx workbook with the
// enrolled student count per course.
func (s *exportService) ExportCourses(ctx context.Context) ([]byte, error) {
	courses, err := s.repo.Course().GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load courses for export", "error", err)
		return nil, fmt.Errorf("%w: export courses", ErrUnexpected)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Courses"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Code", "Title", "Description", "Enrolled Students"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, course := range courses {
		students, err := s.repo.Student().GetByCourseCode(ctx, course.Code)
		if err != nil {
			s.logger.Error("Failed to load roster for export", "error", err, "code", course.Code)
			return nil, fmt.Errorf("%w: export courses", ErrUnexpected)
		}

		description := ""
		if course.Description != nil {
			description = *course.Description
		}

		row := rowIdx + 2
		values := []interface{}{
			course.Code,
			course.Title,
			description,
			len(students),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to write workbook", "error", err)
		return nil, fmt.Errorf("%w: export courses", ErrUnexpected)
	}

	s.logger.Info("Course catalog exported", "rows", len(courses))
	return buf.Bytes(), nil
}
