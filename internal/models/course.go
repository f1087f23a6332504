package models

import (
	"time"

	"github.com/google/uuid"
)

// Course.CourseNumber is the human-facing catalog number (e.g. 1045)
// and must be unique; ID stays the storage identity.
type Course struct {
	ID           uuid.UUID `json:"id"`
	CourseNumber int32     `json:"course_number"`
	Title        string    `json:"title"`
	Credits      int16     `json:"credits"`
	DepartmentID uuid.UUID `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
