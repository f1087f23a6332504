package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

type StudentController struct {
	svc services.StudentService
}

func NewStudentController(s services.StudentService) *StudentController {
	return &StudentController{svc: s}
}

var studentValidate = validator.New()

// ----------------------------------------------------------------
// GET /api/v1/students?search=&sort=&order=&limit=&offset=
// ----------------------------------------------------------------
func (c *StudentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := parseStudentListQuery(r)

	resp, err := c.svc.List(r.Context(), q)
	if err != nil {
		respondStoreError(w, "Failed to list students", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/students/{id}
// ----------------------------------------------------------------
func (c *StudentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := c.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrStudentNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Student not found", nil, nil)
			return
		}
		respondStoreError(w, "Failed to load student", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// ----------------------------------------------------------------
// POST /api/v1/students
// ----------------------------------------------------------------
func (c *StudentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, studentValidate, req) {
		return
	}

	student, err := c.svc.Create(r.Context(), req)
	if err != nil {
		respondStoreError(w, "Could not create student", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, student)
}

// ----------------------------------------------------------------
// PUT /api/v1/students/{id}
// ----------------------------------------------------------------
func (c *StudentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, studentValidate, req) {
		return
	}

	student, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, utils.ErrStudentNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Student not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not update student", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, student)
}

// ----------------------------------------------------------------
// DELETE /api/v1/students/{id}
// ----------------------------------------------------------------
func (c *StudentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrStudentNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Student not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not delete student", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseStudentListQuery(r *http.Request) dtos.StudentListQuery {
	q := dtos.StudentListQuery{
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort"),
		Order:  r.URL.Query().Get("order"),
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		q.Offset = v
	}
	return q
}
