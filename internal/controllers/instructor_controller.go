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

type InstructorController struct {
	svc services.InstructorService
}

func NewInstructorController(s services.InstructorService) *InstructorController {
	return &InstructorController{svc: s}
}

var instructorValidate = validator.New()

// GET /api/v1/instructors
func (c *InstructorController) ListHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.List(r.Context())
	if err != nil {
		respondStoreError(w, "Failed to list instructors", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/instructors/{id}
func (c *InstructorController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	instructor, err := c.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrInstructorNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Instructor not found", nil, nil)
			return
		}
		respondStoreError(w, "Failed to load instructor", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, instructor)
}

// POST /api/v1/instructors
func (c *InstructorController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateInstructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, instructorValidate, req) {
		return
	}

	instructor, err := c.svc.Create(r.Context(), req)
	if err != nil {
		respondStoreError(w, "Could not create instructor", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, instructor)
}

// PUT /api/v1/instructors/{id}
func (c *InstructorController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateInstructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, instructorValidate, req) {
		return
	}

	instructor, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, utils.ErrInstructorNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Instructor not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not update instructor", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, instructor)
}

// DELETE /api/v1/instructors/{id}
func (c *InstructorController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, utils.ErrInstructorNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Instructor not found", nil, nil)
			return
		}
		respondStoreError(w, "Could not delete instructor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
