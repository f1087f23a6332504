package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type StudentService interface {
	List(ctx context.Context, q dtos.StudentListQuery) (*dtos.StudentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dtos.StudentDetailResponse, error)
	Create(ctx context.Context, req dtos.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type studentService struct {
	studentRepo repositories.StudentRepository
	enrollRepo  repositories.EnrollmentRepository
}

func NewStudentService(
	studentRepo repositories.StudentRepository,
	enrollRepo repositories.EnrollmentRepository,
) StudentService {
	return &studentService{studentRepo: studentRepo, enrollRepo: enrollRepo}
}

// NormalizeListQuery clamps paging and fills in sort defaults so the
// repository only ever sees allow-listed values.
func NormalizeListQuery(q dtos.StudentListQuery) dtos.StudentListQuery {
	if q.SortBy == "" {
		q.SortBy = "last_name"
	}
	if q.Order != "desc" {
		q.Order = "asc"
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func (s *studentService) List(ctx context.Context, q dtos.StudentListQuery) (*dtos.StudentListResponse, error) {
	q = NormalizeListQuery(q)

	students, total, err := s.studentRepo.Search(ctx, q.Search, q.SortBy, q.Order, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return &dtos.StudentListResponse{
		Students: students,
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

func (s *studentService) Get(ctx context.Context, id uuid.UUID) (*dtos.StudentDetailResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}

	enrollments, err := s.enrollRepo.ListByStudentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load student enrollments: %w", err)
	}
	return &dtos.StudentDetailResponse{Student: student, Enrollments: enrollments}, nil
}

func (s *studentService) Create(ctx context.Context, req dtos.CreateStudentRequest) (*models.Student, error) {
	enrollmentDate, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	student := &models.Student{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		EnrollmentDate: enrollmentDate,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateStudentRequest) (*models.Student, error) {
	enrollmentDate, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	student := &models.Student{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		EnrollmentDate: enrollmentDate,
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrStudentNotFound
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	// Enrollments go first so the student row never dangles references.
	if err := s.enrollRepo.DeleteByStudentID(ctx, id); err != nil {
		return fmt.Errorf("delete student enrollments: %w", err)
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrStudentNotFound
		}
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
