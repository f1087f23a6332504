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

type EnrollmentService interface {
	Enroll(ctx context.Context, req dtos.EnrollRequest) (*models.Enrollment, error)
	SetGrade(ctx context.Context, id uuid.UUID, grade models.GradeType) error
	Withdraw(ctx context.Context, id uuid.UUID) error
}

type enrollmentService struct {
	enrollRepo  repositories.EnrollmentRepository
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
}

func NewEnrollmentService(
	enrollRepo repositories.EnrollmentRepository,
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
) EnrollmentService {
	return &enrollmentService{
		enrollRepo:  enrollRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, req dtos.EnrollRequest) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	existing, err := s.enrollRepo.GetByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("check existing enrollment: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrDuplicateEnrollment
	}

	enrollment := &models.Enrollment{
		ID:        uuid.New(),
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
	}
	if err := s.enrollRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) SetGrade(ctx context.Context, id uuid.UUID, grade models.GradeType) error {
	if !models.ValidGrade(grade) {
		return utils.ErrInvalidGrade
	}
	if err := s.enrollRepo.SetGrade(ctx, id, grade); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrEnrollmentNotFound
		}
		return fmt.Errorf("set grade: %w", err)
	}
	return nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, id uuid.UUID) error {
	if err := s.enrollRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrEnrollmentNotFound
		}
		return fmt.Errorf("withdraw enrollment: %w", err)
	}
	return nil
}
