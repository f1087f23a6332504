package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

// stubDepartmentService returns canned results so the handler's
// outcome-to-status mapping can be checked in isolation.
type stubDepartmentService struct {
	writeResult  *services.DepartmentWriteResult
	deleteResult *services.DepartmentDeleteResult
	err          error
}

func (s *stubDepartmentService) List(ctx context.Context) ([]*models.Department, error) {
	return nil, s.err
}

func (s *stubDepartmentService) Get(ctx context.Context, id uuid.UUID) (*dtos.DepartmentDetailResponse, error) {
	return nil, s.err
}

func (s *stubDepartmentService) Create(ctx context.Context, req dtos.CreateDepartmentRequest) (*services.DepartmentWriteResult, error) {
	return s.writeResult, s.err
}

func (s *stubDepartmentService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateDepartmentRequest) (*services.DepartmentWriteResult, error) {
	return s.writeResult, s.err
}

func (s *stubDepartmentService) Delete(ctx context.Context, id uuid.UUID, rowVersion int64) (*services.DepartmentDeleteResult, error) {
	return s.deleteResult, s.err
}

func newDeptRouter(svc services.DepartmentService) *mux.Router {
	c := NewDepartmentController(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/departments", c.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/departments/{id}", c.UpdateHandler).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/departments/{id}", c.DeleteHandler).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/departments/{id}", c.GetHandler).Methods(http.MethodGet)
	return r
}

func validUpdateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"name":        "English",
		"budget":      350000,
		"start_date":  "2007-09-01",
		"row_version": 1,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func doUpdate(t *testing.T, svc services.DepartmentService, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/departments/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()
	newDeptRouter(svc).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestUpdateHandlerApplied(t *testing.T) {
	dept := &models.Department{
		ID:        uuid.New(),
		Name:      "English",
		Budget:    350000,
		StartDate: time.Date(2007, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
	dept.RowVersion = 2

	svc := &stubDepartmentService{
		writeResult: &services.DepartmentWriteResult{Outcome: services.OutcomeApplied, Department: dept},
	}
	rec := doUpdate(t, svc, validUpdateBody(t))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Department
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(2), got.RowVersion)
}

func TestUpdateHandlerRecordGone(t *testing.T) {
	svc := &stubDepartmentService{
		writeResult: &services.DepartmentWriteResult{Outcome: services.OutcomeRecordGone},
	}
	rec := doUpdate(t, svc, validUpdateBody(t))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestUpdateHandlerVersionConflict(t *testing.T) {
	current := &models.Department{ID: uuid.New(), Name: "English", Budget: 0}
	current.RowVersion = 2

	svc := &stubDepartmentService{
		writeResult: &services.DepartmentWriteResult{
			Outcome:    services.OutcomeVersionConflict,
			Department: current,
			Conflicts: []dtos.FieldConflict{
				{Field: "budget", Proposed: int64(350000), Current: int64(0)},
			},
		},
	}
	rec := doUpdate(t, svc, validUpdateBody(t))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, utils.ErrCodeRowVersionConflict, resp.Code)

	// Details carry the field diff and the current stored row.
	raw, err := json.Marshal(resp.Details)
	require.NoError(t, err)
	var details dtos.VersionConflictDetails
	require.NoError(t, json.Unmarshal(raw, &details))
	require.Len(t, details.Conflicts, 1)
	assert.Equal(t, "budget", details.Conflicts[0].Field)
	require.NotNil(t, details.Current)
	assert.Equal(t, int64(2), details.Current.RowVersion)
}

func TestUpdateHandlerValidationConflict(t *testing.T) {
	svc := &stubDepartmentService{
		writeResult: &services.DepartmentWriteResult{
			Outcome: services.OutcomeValidationConflict,
			Validation: &dtos.AdministratorConflictDetails{
				Field:                   "administrator_id",
				CollidingDepartmentID:   uuid.New(),
				CollidingDepartmentName: "Mathematics",
			},
		},
	}
	rec := doUpdate(t, svc, validUpdateBody(t))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, utils.ErrCodeConflict, resp.Code)

	raw, err := json.Marshal(resp.Details)
	require.NoError(t, err)
	var details dtos.AdministratorConflictDetails
	require.NoError(t, json.Unmarshal(raw, &details))
	assert.Equal(t, "Mathematics", details.CollidingDepartmentName)
}

func TestUpdateHandlerStoreFailure(t *testing.T) {
	svc := &stubDepartmentService{err: errors.New("connection refused")}
	rec := doUpdate(t, svc, validUpdateBody(t))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, utils.ErrCodeStoreUnavailable, decodeError(t, rec).Code)
}

func TestUpdateHandlerRejectsBadInput(t *testing.T) {
	svc := &stubDepartmentService{}

	// Malformed path id never reaches the service.
	req := httptest.NewRequest(http.MethodPut, "/api/v1/departments/not-a-uuid", validUpdateBody(t))
	rec := httptest.NewRecorder()
	newDeptRouter(svc).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decodeError(t, rec).Code)

	// Missing required fields fail validation.
	body, err := json.Marshal(map[string]any{"row_version": 1})
	require.NoError(t, err)
	rec = doUpdate(t, svc, bytes.NewBuffer(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)

	// row_version below 1 is rejected before any store call.
	body, err = json.Marshal(map[string]any{
		"name": "English", "budget": 1, "start_date": "2007-09-01", "row_version": 0,
	})
	require.NoError(t, err)
	rec = doUpdate(t, svc, bytes.NewBuffer(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandlerOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		outcome    services.Outcome
		wantStatus int
		wantCode   string
	}{
		{"applied", services.OutcomeApplied, http.StatusNoContent, ""},
		{"record gone", services.OutcomeRecordGone, http.StatusNotFound, utils.ErrCodeNotFound},
		{"version conflict", services.OutcomeVersionConflict, http.StatusConflict, utils.ErrCodeRowVersionConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubDepartmentService{
				deleteResult: &services.DepartmentDeleteResult{Outcome: tc.outcome},
			}
			body, err := json.Marshal(map[string]any{"row_version": 1})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/departments/"+uuid.NewString(), bytes.NewBuffer(body))
			rec := httptest.NewRecorder()
			newDeptRouter(svc).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeError(t, rec).Code)
			}
		})
	}
}

func TestGetHandlerNotFound(t *testing.T) {
	svc := &stubDepartmentService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newDeptRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, utils.ErrCodeNotFound, decodeError(t, rec).Code)
}
