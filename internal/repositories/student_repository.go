package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type StudentRepository interface {
	Create(ctx context.Context, s *models.Student) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)

	// Search pages through students. search matches first or last name
	// (case-insensitive substring); sortBy/order come from an allow-list.
	// Returns the page plus the total match count.
	Search(ctx context.Context, search, sortBy, order string, limit, offset int) ([]*models.Student, int, error)

	Update(ctx context.Context, s *models.Student) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountByEnrollmentDate(ctx context.Context) (map[string]int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type studentRepo struct {
	db DB
}

func NewStudentRepository(db DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, s *models.Student) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO students (
            id, first_name, last_name, enrollment_date,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4, NOW(), NOW())
    `,
		s.ID, s.FirstName, s.LastName, s.EnrollmentDate,
	)
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	row := r.db.QueryRow(ctx, baseSelectStudent()+" WHERE id=$1", id)
	return scanStudent(row)
}

func (r *studentRepo) Search(ctx context.Context, search, sortBy, order string, limit, offset int) ([]*models.Student, int, error) {
	if !isValidStudentSortColumn(sortBy) {
		return nil, 0, fmt.Errorf("invalid sort column: %s", sortBy)
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}

	var qb strings.Builder
	var countQb strings.Builder
	var args []any
	idx := 1

	qb.WriteString(baseSelectStudent())
	countQb.WriteString("SELECT count(*) FROM students")

	if search != "" {
		where := fmt.Sprintf(" WHERE (first_name ILIKE $%d OR last_name ILIKE $%d)", idx, idx)
		qb.WriteString(where)
		countQb.WriteString(where)
		args = append(args, "%"+search+"%")
		idx++
	}

	var total int
	if err := r.db.QueryRow(ctx, countQb.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	qb.WriteString(fmt.Sprintf(" ORDER BY %s %s, id LIMIT $%d OFFSET $%d", sortBy, dir, idx, idx+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

func (r *studentRepo) Update(ctx context.Context, s *models.Student) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE students SET
            first_name=$1, last_name=$2, enrollment_date=$3, updated_at=NOW()
        WHERE id=$4
    `,
		s.FirstName, s.LastName, s.EnrollmentDate, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByEnrollmentDate powers the enrollment-statistics view: how many
// students enrolled on each date, keyed by YYYY-MM-DD.
func (r *studentRepo) CountByEnrollmentDate(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT to_char(enrollment_date, 'YYYY-MM-DD'), count(*)
        FROM students
        GROUP BY 1
        ORDER BY 1
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		out[day] = n
	}
	return out, rows.Err()
}

func isValidStudentSortColumn(name string) bool {
	// Simple allow-list for column names to prevent SQL injection
	switch name {
	case "first_name", "last_name", "enrollment_date":
		return true
	default:
		return false
	}
}

func baseSelectStudent() string {
	return `
        SELECT id, first_name, last_name, enrollment_date, created_at, updated_at
        FROM students
    `
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.EnrollmentDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
