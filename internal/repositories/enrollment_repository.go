package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
)

// EnrollmentWithCourse is the student-detail row: an enrollment joined
// with the course it belongs to.
type EnrollmentWithCourse struct {
	models.Enrollment
	CourseNumber int32  `json:"course_number"`
	CourseTitle  string `json:"course_title"`
}

type EnrollmentRepository interface {
	Create(ctx context.Context, e *models.Enrollment) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*EnrollmentWithCourse, error)

	SetGrade(ctx context.Context, id uuid.UUID, grade models.GradeType) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByStudentID(ctx context.Context, studentID uuid.UUID) error
	DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error
}

type enrollmentRepo struct {
	db DB
}

func NewEnrollmentRepository(db DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO enrollments (
            id, course_id, student_id, grade,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4, NOW(), NOW())
    `,
		e.ID, e.CourseID, e.StudentID, e.Grade,
	)
	return err
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	row := r.db.QueryRow(ctx, baseSelectEnrollment()+" WHERE id=$1", id)
	return scanEnrollment(row)
}

func (r *enrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	row := r.db.QueryRow(ctx, baseSelectEnrollment()+" WHERE student_id=$1 AND course_id=$2", studentID, courseID)
	return scanEnrollment(row)
}

func (r *enrollmentRepo) ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*EnrollmentWithCourse, error) {
	rows, err := r.db.Query(ctx, `
        SELECT e.id, e.course_id, e.student_id, e.grade, e.created_at, e.updated_at,
               c.course_number, c.title
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id=$1
        ORDER BY c.course_number
    `, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*EnrollmentWithCourse
	for rows.Next() {
		var ec EnrollmentWithCourse
		var grade *string
		if err := rows.Scan(
			&ec.ID, &ec.CourseID, &ec.StudentID, &grade, &ec.CreatedAt, &ec.UpdatedAt,
			&ec.CourseNumber, &ec.CourseTitle,
		); err != nil {
			return nil, err
		}
		if grade != nil {
			g := models.GradeType(*grade)
			ec.Grade = &g
		}
		out = append(out, &ec)
	}
	return out, rows.Err()
}

func (r *enrollmentRepo) SetGrade(ctx context.Context, id uuid.UUID, grade models.GradeType) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE enrollments SET grade=$1, updated_at=NOW() WHERE id=$2
    `, string(grade), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enrollmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enrollmentRepo) DeleteByStudentID(ctx context.Context, studentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE student_id=$1`, studentID)
	return err
}

func (r *enrollmentRepo) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE course_id=$1`, courseID)
	return err
}

func baseSelectEnrollment() string {
	return `
        SELECT id, course_id, student_id, grade, created_at, updated_at
        FROM enrollments
    `
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var grade *string
	err := row.Scan(
		&e.ID,
		&e.CourseID,
		&e.StudentID,
		&grade,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if grade != nil {
		g := models.GradeType(*grade)
		e.Grade = &g
	}
	return &e, nil
}
