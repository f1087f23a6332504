package models

import (
	"time"

	"github.com/google/uuid"
)

type GradeType string

const (
	GradeA GradeType = "A"
	GradeB GradeType = "B"
	GradeC GradeType = "C"
	GradeD GradeType = "D"
	GradeF GradeType = "F"
)

// ValidGrade reports whether g is one of the letter grades.
func ValidGrade(g GradeType) bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	default:
		return false
	}
}

// Enrollment links a student to a course. Grade stays nil until the
// course is graded.
type Enrollment struct {
	ID        uuid.UUID  `json:"id"`
	CourseID  uuid.UUID  `json:"course_id"`
	StudentID uuid.UUID  `json:"student_id"`
	Grade     *GradeType `json:"grade,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
