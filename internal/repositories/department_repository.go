package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type DepartmentRepository interface {
	Create(ctx context.Context, d *models.Department) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error)
	GetByAdministratorID(ctx context.Context, instructorID uuid.UUID) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)

	// Optimistic-lock primitives; RowsAffected()==0 means the
	// compare-and-swap lost (stale version or row gone).
	UpdateIfVersion(ctx context.Context, d *models.Department, expected int64) (pgconn.CommandTag, error)
	DeleteIfVersion(ctx context.Context, id uuid.UUID, expected int64) (pgconn.CommandTag, error)

	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Department) error) error

	// ClearAdministrator detaches instructorID from whichever
	// department it administers, if any.
	ClearAdministrator(ctx context.Context, instructorID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type departmentRepo struct {
	*BaseVersionedRepo[*models.Department]
	db DB
}

func NewDepartmentRepository(db DB) DepartmentRepository {
	r := &departmentRepo{db: db}
	selectStmt := baseSelectDepartment() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanDepartment)
	return r
}

func (r *departmentRepo) Create(ctx context.Context, d *models.Department) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO departments (
            id, name, budget, start_date, administrator_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5, NOW(), NOW(), 1)
    `,
		d.ID,
		d.Name,
		d.Budget,
		d.StartDate,
		d.AdministratorID,
	)
	if err == nil {
		d.RowVersion = 1
	}
	return err
}

func (r *departmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *departmentRepo) GetByAdministratorID(ctx context.Context, instructorID uuid.UUID) (*models.Department, error) {
	row := r.db.QueryRow(ctx, baseSelectDepartment()+" WHERE administrator_id=$1", instructorID)
	return scanDepartment(row)
}

func (r *departmentRepo) List(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx, baseSelectDepartment()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *departmentRepo) UpdateIfVersion(ctx context.Context, d *models.Department, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE departments SET
            name=$1, budget=$2, start_date=$3, administrator_id=$4,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$5 AND row_version=$6
    `,
		d.Name, d.Budget, d.StartDate, d.AdministratorID,
		d.ID, expected,
	)
}

func (r *departmentRepo) DeleteIfVersion(ctx context.Context, id uuid.UUID, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `DELETE FROM departments WHERE id=$1 AND row_version=$2`, id, expected)
}

func (r *departmentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Department) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *departmentRepo) ClearAdministrator(ctx context.Context, instructorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE departments SET
            administrator_id=NULL, updated_at=NOW(), row_version=row_version+1
        WHERE administrator_id=$1
    `, instructorID)
	return err
}

func baseSelectDepartment() string {
	return `
        SELECT
            id, name, budget, start_date, administrator_id,
            created_at, updated_at, row_version
        FROM departments
    `
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	var admin pgtype.UUID

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Budget,
		&d.StartDate,
		&admin,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.RowVersion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if admin.Status == pgtype.Present {
		id := uuid.UUID(admin.Bytes)
		d.AdministratorID = &id
	}
	return &d, nil
}
