package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
)

type InstructorRepository interface {
	Create(ctx context.Context, i *models.Instructor) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Instructor, error)
	List(ctx context.Context) ([]*models.Instructor, error)

	Update(ctx context.Context, i *models.Instructor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type instructorRepo struct {
	db DB
}

func NewInstructorRepository(db DB) InstructorRepository {
	return &instructorRepo{db: db}
}

func (r *instructorRepo) Create(ctx context.Context, i *models.Instructor) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO instructors (
            id, first_name, last_name, hire_date,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4, NOW(), NOW())
    `,
		i.ID, i.FirstName, i.LastName, i.HireDate,
	)
	return err
}

func (r *instructorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Instructor, error) {
	row := r.db.QueryRow(ctx, baseSelectInstructor()+" WHERE id=$1", id)
	return scanInstructor(row)
}

func (r *instructorRepo) List(ctx context.Context) ([]*models.Instructor, error) {
	rows, err := r.db.Query(ctx, baseSelectInstructor()+" ORDER BY last_name, first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Instructor
	for rows.Next() {
		i, err := scanInstructor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *instructorRepo) Update(ctx context.Context, i *models.Instructor) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE instructors SET
            first_name=$1, last_name=$2, hire_date=$3, updated_at=NOW()
        WHERE id=$4
    `,
		i.FirstName, i.LastName, i.HireDate, i.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *instructorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectInstructor() string {
	return `
        SELECT id, first_name, last_name, hire_date, created_at, updated_at
        FROM instructors
    `
}

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	var i models.Instructor
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.HireDate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}
