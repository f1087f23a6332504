package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/utils"
)

// Outcome tags the terminal state of one update/delete attempt.
// Conflicts are ordinary values here, not errors: the error return of a
// service method is reserved for store failures.
type Outcome string

const (
	OutcomeApplied            Outcome = "applied"
	OutcomeRecordGone         Outcome = "record_gone"
	OutcomeValidationConflict Outcome = "validation_conflict"
	OutcomeVersionConflict    Outcome = "version_conflict"
)

// DepartmentWriteResult is the tagged outcome of a create/update attempt.
//
//   - Applied:            Department holds the row after the write (new row_version).
//   - RecordGone:         the target no longer exists; nothing else is set.
//   - ValidationConflict: Validation names the offending field and the
//     department that already holds the proposed administrator.
//   - VersionConflict:    Conflicts lists the fields whose proposed values
//     differ from what is now stored; Department holds the current stored row
//     so the caller can resubmit against it.
type DepartmentWriteResult struct {
	Outcome    Outcome
	Department *models.Department
	Conflicts  []dtos.FieldConflict
	Validation *dtos.AdministratorConflictDetails
}

// DepartmentDeleteResult: deletion conflicts carry no diff, only the fact
// that the row changed (or vanished) since the caller last saw it.
type DepartmentDeleteResult struct {
	Outcome Outcome
}

type DepartmentService interface {
	List(ctx context.Context) ([]*models.Department, error)
	Get(ctx context.Context, id uuid.UUID) (*dtos.DepartmentDetailResponse, error)

	Create(ctx context.Context, req dtos.CreateDepartmentRequest) (*DepartmentWriteResult, error)

	// Update is the conflict-aware write: full-row proposed values plus the
	// row_version the caller last observed. It never silently overwrites.
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateDepartmentRequest) (*DepartmentWriteResult, error)

	Delete(ctx context.Context, id uuid.UUID, rowVersion int64) (*DepartmentDeleteResult, error)
}

type departmentService struct {
	deptRepo   repositories.DepartmentRepository
	instrRepo  repositories.InstructorRepository
	courseRepo repositories.CourseRepository
}

func NewDepartmentService(
	deptRepo repositories.DepartmentRepository,
	instrRepo repositories.InstructorRepository,
	courseRepo repositories.CourseRepository,
) DepartmentService {
	return &departmentService{
		deptRepo:   deptRepo,
		instrRepo:  instrRepo,
		courseRepo: courseRepo,
	}
}

/* ------------------------------------------------------------------
   Reads
------------------------------------------------------------------ */

func (s *departmentService) List(ctx context.Context) ([]*models.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *departmentService) Get(ctx context.Context, id uuid.UUID) (*dtos.DepartmentDetailResponse, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load department: %w", err)
	}
	if dept == nil {
		return nil, nil
	}

	resp := &dtos.DepartmentDetailResponse{Department: dept}

	if dept.AdministratorID != nil {
		admin, err := s.instrRepo.GetByID(ctx, *dept.AdministratorID)
		if err != nil {
			return nil, fmt.Errorf("load administrator: %w", err)
		}
		if admin != nil {
			name := admin.FirstName + " " + admin.LastName
			resp.AdministratorName = &name
		}
	}

	courses, err := s.courseRepo.ListByDepartmentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load department courses: %w", err)
	}
	resp.Courses = courses
	return resp, nil
}

/* ------------------------------------------------------------------
   Writes
------------------------------------------------------------------ */

func (s *departmentService) Create(ctx context.Context, req dtos.CreateDepartmentRequest) (*DepartmentWriteResult, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	if req.AdministratorID != nil {
		holder, err := s.deptRepo.GetByAdministratorID(ctx, *req.AdministratorID)
		if err != nil {
			return nil, fmt.Errorf("check administrator uniqueness: %w", err)
		}
		if holder != nil {
			return administratorTaken(holder), nil
		}
	}

	dept := &models.Department{
		ID:              uuid.New(),
		Name:            req.Name,
		Budget:          req.Budget,
		StartDate:       startDate,
		AdministratorID: req.AdministratorID,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("insert department: %w", err)
	}
	return &DepartmentWriteResult{Outcome: OutcomeApplied, Department: dept}, nil
}

func (s *departmentService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateDepartmentRequest) (*DepartmentWriteResult, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	stored, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load department: %w", err)
	}
	if stored == nil {
		return &DepartmentWriteResult{Outcome: OutcomeRecordGone}, nil
	}

	// Administrator uniqueness is checked against all *other* departments
	// before the write is attempted.
	if req.AdministratorID != nil {
		holder, err := s.deptRepo.GetByAdministratorID(ctx, *req.AdministratorID)
		if err != nil {
			return nil, fmt.Errorf("check administrator uniqueness: %w", err)
		}
		if holder != nil && holder.ID != id {
			return administratorTaken(holder), nil
		}
	}

	proposed := &models.Department{
		ID:              id,
		Name:            req.Name,
		Budget:          req.Budget,
		StartDate:       startDate,
		AdministratorID: req.AdministratorID,
	}

	// The WHERE row_version=$n clause makes load-check-write atomic with
	// respect to concurrent writers; no application lock is taken.
	tag, err := s.deptRepo.UpdateIfVersion(ctx, proposed, req.RowVersion)
	if err != nil {
		return nil, fmt.Errorf("update department: %w", err)
	}
	if tag.RowsAffected() == 1 {
		proposed.RowVersion = req.RowVersion + 1
		return &DepartmentWriteResult{Outcome: OutcomeApplied, Department: proposed}, nil
	}

	// Lost the compare-and-swap: either the row vanished or someone else
	// wrote first. Reload and report against what is stored now.
	current, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload department: %w", err)
	}
	if current == nil {
		return &DepartmentWriteResult{Outcome: OutcomeRecordGone}, nil
	}

	return &DepartmentWriteResult{
		Outcome:    OutcomeVersionConflict,
		Department: current,
		Conflicts:  diffDepartment(proposed, current),
	}, nil
}

func (s *departmentService) Delete(ctx context.Context, id uuid.UUID, rowVersion int64) (*DepartmentDeleteResult, error) {
	tag, err := s.deptRepo.DeleteIfVersion(ctx, id, rowVersion)
	if err != nil {
		return nil, fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return &DepartmentDeleteResult{Outcome: OutcomeApplied}, nil
	}

	current, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload department: %w", err)
	}
	if current == nil {
		return &DepartmentDeleteResult{Outcome: OutcomeRecordGone}, nil
	}
	return &DepartmentDeleteResult{Outcome: OutcomeVersionConflict}, nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

// diffDepartment lists the fields whose proposed values differ from the
// stored row. Fields the client proposed that happen to match what is
// stored are not conflicts, even though the versions diverged.
func diffDepartment(proposed, current *models.Department) []dtos.FieldConflict {
	var out []dtos.FieldConflict

	if proposed.Name != current.Name {
		out = append(out, dtos.FieldConflict{
			Field: "name", Proposed: proposed.Name, Current: current.Name,
		})
	}
	if proposed.Budget != current.Budget {
		out = append(out, dtos.FieldConflict{
			Field: "budget", Proposed: proposed.Budget, Current: current.Budget,
		})
	}
	if !sameDate(proposed.StartDate, current.StartDate) {
		out = append(out, dtos.FieldConflict{
			Field:    "start_date",
			Proposed: proposed.StartDate.Format(dateLayout),
			Current:  current.StartDate.Format(dateLayout),
		})
	}
	if !sameUUIDPtr(proposed.AdministratorID, current.AdministratorID) {
		out = append(out, dtos.FieldConflict{
			Field:    "administrator_id",
			Proposed: uuidPtrValue(proposed.AdministratorID),
			Current:  uuidPtrValue(current.AdministratorID),
		})
	}
	return out
}

func administratorTaken(holder *models.Department) *DepartmentWriteResult {
	return &DepartmentWriteResult{
		Outcome: OutcomeValidationConflict,
		Validation: &dtos.AdministratorConflictDetails{
			Field:                   "administrator_id",
			CollidingDepartmentID:   holder.ID,
			CollidingDepartmentName: holder.Name,
		},
	}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func invalidDate(err error) error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeInvalidPayload,
		Message:    "invalid date format, want YYYY-MM-DD",
		Err:        err,
	}
}

func sameDate(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func sameUUIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidPtrValue(u *uuid.UUID) any {
	if u == nil {
		return nil
	}
	return u.String()
}
