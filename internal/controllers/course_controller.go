package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

type CourseController struct {
	svc services.CourseService
}

func NewCourseController(s services.CourseService) *CourseController {
	return &CourseController{svc: s}
}

var courseValidate = validator.New()

// GET /api/v1/courses
func (c *CourseController) ListHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.List(r.Context())
	if err != nil {
		respondStoreError(w, "Failed to list courses", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/courses/{id}
func (c *CourseController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	course, err := c.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrCourseNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Course not found", nil, nil)
			return
		}
		respondStoreError(w, "Failed to load course", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, course)
}

// POST /api/v1/courses
func (c *CourseController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, courseValidate, req) {
		return
	}

	course, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.respondCourseWriteError(w, err, "Could not create course")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, course)
}

// PUT /api/v1/courses/{id}
func (c *CourseController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, courseValidate, req) {
		return
	}

	course, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.respondCourseWriteError(w, err, "Could not update course")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, course)
}

// DELETE /api/v1/courses/{id}
func (c *CourseController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrCourseNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Course not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not delete course", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CourseController) respondCourseWriteError(w http.ResponseWriter, err error, publicMessage string) {
	switch {
	case errors.Is(err, utils.ErrCourseNumberExists):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Course number already in use", nil, err)
	case errors.Is(err, utils.ErrCourseNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Course not found", nil, nil)
	case errors.Is(err, utils.ErrDepartmentNotFound):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Department does not exist", nil, err)
	default:
		respondStoreError(w, publicMessage, err)
	}
}
