package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

type DepartmentController struct {
	svc services.DepartmentService
}

func NewDepartmentController(s services.DepartmentService) *DepartmentController {
	return &DepartmentController{svc: s}
}

var deptValidate = validator.New()

// ----------------------------------------------------------------
// GET /api/v1/departments
// ----------------------------------------------------------------
func (c *DepartmentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	departments, err := c.svc.List(r.Context())
	if err != nil {
		respondStoreError(w, "Failed to list departments", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DepartmentListResponse{Departments: departments})
}

// ----------------------------------------------------------------
// GET /api/v1/departments/{id}
// ----------------------------------------------------------------
func (c *DepartmentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := c.svc.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, "Failed to load department", err)
		return
	}
	if detail == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Department not found", nil, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// ----------------------------------------------------------------
// POST /api/v1/departments
// ----------------------------------------------------------------
func (c *DepartmentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, deptValidate, req) {
		return
	}

	res, err := c.svc.Create(r.Context(), req)
	if err != nil {
		respondStoreError(w, "Could not create department", err)
		return
	}
	if res.Outcome == services.OutcomeValidationConflict {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeConflict,
			"Instructor already administers another department",
			res.Validation, nil,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, res.Department)
}

// ----------------------------------------------------------------
// PUT /api/v1/departments/{id}
//
// The body carries the full row plus the row_version the client last
// saw; the response tells the client exactly what happened to its
// submission.
// ----------------------------------------------------------------
func (c *DepartmentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, deptValidate, req) {
		return
	}

	res, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		respondStoreError(w, "Could not update department", err)
		return
	}

	switch res.Outcome {
	case services.OutcomeApplied:
		utils.RespondWithJSON(w, http.StatusOK, res.Department)

	case services.OutcomeRecordGone:
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound,
			"Department was deleted by another user",
			nil, nil,
		)

	case services.OutcomeValidationConflict:
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeConflict,
			"Instructor already administers another department",
			res.Validation, nil,
		)

	case services.OutcomeVersionConflict:
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			"Department was changed by another user; review current values and resubmit",
			dtos.VersionConflictDetails{Conflicts: res.Conflicts, Current: res.Department},
			nil,
		)

	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Unknown update outcome", nil, nil)
	}
}

// ----------------------------------------------------------------
// DELETE /api/v1/departments/{id}
// ----------------------------------------------------------------
func (c *DepartmentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.DeleteDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if !validateRequest(w, r, deptValidate, req) {
		return
	}

	res, err := c.svc.Delete(r.Context(), id, req.RowVersion)
	if err != nil {
		respondStoreError(w, "Could not delete department", err)
		return
	}

	switch res.Outcome {
	case services.OutcomeApplied:
		w.WriteHeader(http.StatusNoContent)

	case services.OutcomeRecordGone:
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound,
			"Department was already deleted",
			nil, nil,
		)

	default: // version conflict
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			"Department was changed by another user; reload before deleting",
			nil, nil,
		)
	}
}

/* ------------------------------------------------------------------
   shared helpers
------------------------------------------------------------------ */

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func validateRequest(w http.ResponseWriter, r *http.Request, v *validator.Validate, req any) bool {
	if err := v.StructCtx(r.Context(), req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return false
	}
	return true
}

// respondStoreError maps service errors: AppErrors keep their own
// status; anything else is treated as a transient store failure the
// client may retry.
func respondStoreError(w http.ResponseWriter, publicMessage string, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeStoreUnavailable, publicMessage, nil, err)
}
