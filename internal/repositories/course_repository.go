package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
)

// CourseWithDepartment is the list-view row: a course joined with the
// name of its owning department.
type CourseWithDepartment struct {
	models.Course
	DepartmentName string `json:"department_name"`
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type CourseRepository interface {
	Create(ctx context.Context, c *models.Course) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetByCourseNumber(ctx context.Context, number int32) (*models.Course, error)
	ListWithDepartment(ctx context.Context) ([]*CourseWithDepartment, error)
	ListByDepartmentID(ctx context.Context, departmentID uuid.UUID) ([]*models.Course, error)

	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type courseRepo struct {
	db DB
}

func NewCourseRepository(db DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, c *models.Course) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO courses (
            id, course_number, title, credits, department_id,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
    `,
		c.ID, c.CourseNumber, c.Title, c.Credits, c.DepartmentID,
	)
	return err
}

func (r *courseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	row := r.db.QueryRow(ctx, baseSelectCourse()+" WHERE id=$1", id)
	return scanCourse(row)
}

func (r *courseRepo) GetByCourseNumber(ctx context.Context, number int32) (*models.Course, error) {
	row := r.db.QueryRow(ctx, baseSelectCourse()+" WHERE course_number=$1", number)
	return scanCourse(row)
}

func (r *courseRepo) ListWithDepartment(ctx context.Context) ([]*CourseWithDepartment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT c.id, c.course_number, c.title, c.credits, c.department_id,
               c.created_at, c.updated_at, d.name
        FROM courses c
        JOIN departments d ON d.id = c.department_id
        ORDER BY c.course_number
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*CourseWithDepartment
	for rows.Next() {
		var cw CourseWithDepartment
		if err := rows.Scan(
			&cw.ID, &cw.CourseNumber, &cw.Title, &cw.Credits, &cw.DepartmentID,
			&cw.CreatedAt, &cw.UpdatedAt, &cw.DepartmentName,
		); err != nil {
			return nil, err
		}
		out = append(out, &cw)
	}
	return out, rows.Err()
}

func (r *courseRepo) ListByDepartmentID(ctx context.Context, departmentID uuid.UUID) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, baseSelectCourse()+" WHERE department_id=$1 ORDER BY course_number", departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *courseRepo) Update(ctx context.Context, c *models.Course) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE courses SET
            course_number=$1, title=$2, credits=$3, department_id=$4, updated_at=NOW()
        WHERE id=$5
    `,
		c.CourseNumber, c.Title, c.Credits, c.DepartmentID, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectCourse() string {
	return `
        SELECT id, course_number, title, credits, department_id, created_at, updated_at
        FROM courses
    `
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.CourseNumber,
		&c.Title,
		&c.Credits,
		&c.DepartmentID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
