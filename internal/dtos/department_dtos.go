package dtos

import (
	"github.com/google/uuid"

	"github.com/campuskit/registrar-service/internal/models"
)

// DepartmentFields is the full-row payload: every tracked field must be
// supplied on create and update (no partial patches).
type DepartmentFields struct {
	Name            string     `json:"name" validate:"required,max=120"`
	Budget          int64      `json:"budget" validate:"gte=0"`
	StartDate       string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	AdministratorID *uuid.UUID `json:"administrator_id"`
}

type CreateDepartmentRequest struct {
	DepartmentFields
}

// UpdateDepartmentRequest carries the row_version the client last saw —
// the JSON analogue of the hidden form field on an edit page.
type UpdateDepartmentRequest struct {
	DepartmentFields
	RowVersion int64 `json:"row_version" validate:"gte=1"`
}

type DeleteDepartmentRequest struct {
	RowVersion int64 `json:"row_version" validate:"gte=1"`
}

// FieldConflict is one line of a version-conflict diff: the value the
// client proposed next to the value currently stored.
type FieldConflict struct {
	Field    string `json:"field"`
	Proposed any    `json:"proposed"`
	Current  any    `json:"current"`
}

// VersionConflictDetails is attached to a 409 so the client can
// re-render its form with per-field "current value" annotations.
type VersionConflictDetails struct {
	Conflicts []FieldConflict    `json:"conflicts"`
	Current   *models.Department `json:"current"`
}

// AdministratorConflictDetails names the department that already has
// the proposed administrator.
type AdministratorConflictDetails struct {
	Field                   string    `json:"field"`
	CollidingDepartmentID   uuid.UUID `json:"colliding_department_id"`
	CollidingDepartmentName string    `json:"colliding_department_name"`
}

type DepartmentDetailResponse struct {
	Department        *models.Department `json:"department"`
	AdministratorName *string            `json:"administrator_name,omitempty"`
	Courses           []*models.Course   `json:"courses"`
}

type DepartmentListResponse struct {
	Departments []*models.Department `json:"departments"`
}
