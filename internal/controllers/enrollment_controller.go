package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

type EnrollmentController struct {
	svc services.EnrollmentService
}

func NewEnrollmentController(s services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{svc: s}
}

var enrollmentValidate = validator.New()

// POST /api/v1/enrollments
func (c *EnrollmentController) EnrollHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, enrollmentValidate, req) {
		return
	}

	enrollment, err := c.svc.Enroll(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrStudentNotFound):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Student does not exist", nil, err)
		case errors.Is(err, utils.ErrCourseNotFound):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Course does not exist", nil, err)
		case errors.Is(err, utils.ErrDuplicateEnrollment):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Student is already enrolled in this course", nil, err)
		default:
			respondStoreError(w, "Could not enroll student", err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, enrollment)
}

// PUT /api/v1/enrollments/{id}/grade
func (c *EnrollmentController) SetGradeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.SetGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, enrollmentValidate, req) {
		return
	}

	if err := c.svc.SetGrade(r.Context(), id, models.GradeType(req.Grade)); err != nil {
		switch {
		case errors.Is(err, utils.ErrEnrollmentNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Enrollment not found", nil, nil)
		case errors.Is(err, utils.ErrInvalidGrade):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid grade", nil, err)
		default:
			respondStoreError(w, "Could not set grade", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/enrollments/{id}
func (c *EnrollmentController) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Withdraw(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrEnrollmentNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Enrollment not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not withdraw enrollment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
