package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrCourseNumberExists  = errors.New("course_number_exists")
	ErrDuplicateEnrollment = errors.New("duplicate_enrollment")
	ErrInvalidGrade        = errors.New("invalid_grade")
	ErrStudentNotFound     = errors.New("student_not_found")
	ErrCourseNotFound      = errors.New("course_not_found")
	ErrInstructorNotFound  = errors.New("instructor_not_found")
	ErrEnrollmentNotFound  = errors.New("enrollment_not_found")
	ErrDepartmentNotFound  = errors.New("department_not_found")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError carries structured failure info from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
