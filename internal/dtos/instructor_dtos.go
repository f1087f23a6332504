package dtos

import "github.com/campuskit/registrar-service/internal/models"

type InstructorFields struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
	HireDate  string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

type CreateInstructorRequest struct {
	InstructorFields
}

type UpdateInstructorRequest struct {
	InstructorFields
}

type InstructorListResponse struct {
	Instructors []*models.Instructor `json:"instructors"`
}
