package dtos

import (
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/repositories"
)

type StudentFields struct {
	FirstName      string `json:"first_name" validate:"required,max=60"`
	LastName       string `json:"last_name" validate:"required,max=60"`
	EnrollmentDate string `json:"enrollment_date" validate:"required,datetime=2006-01-02"`
}

type CreateStudentRequest struct {
	StudentFields
}

type UpdateStudentRequest struct {
	StudentFields
}

// StudentListQuery is the normalized form of the list query string.
type StudentListQuery struct {
	Search string
	SortBy string
	Order  string
	Limit  int
	Offset int
}

type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type StudentDetailResponse struct {
	Student     *models.Student                      `json:"student"`
	Enrollments []*repositories.EnrollmentWithCourse `json:"enrollments"`
}
