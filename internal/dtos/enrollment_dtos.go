package dtos

import "github.com/google/uuid"

type EnrollRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
}

type SetGradeRequest struct {
	Grade string `json:"grade" validate:"required,oneof=A B C D F"`
}
