package dtos

import (
	"github.com/google/uuid"

	"github.com/campuskit/registrar-service/internal/repositories"
)

type CourseFields struct {
	CourseNumber int32     `json:"course_number" validate:"required,gte=1000,lte=9999"`
	Title        string    `json:"title" validate:"required,max=120"`
	Credits      int16     `json:"credits" validate:"gte=0,lte=5"`
	DepartmentID uuid.UUID `json:"department_id" validate:"required"`
}

type CreateCourseRequest struct {
	CourseFields
}

type UpdateCourseRequest struct {
	CourseFields
}

type CourseListResponse struct {
	Courses []*repositories.CourseWithDepartment `json:"courses"`
}
