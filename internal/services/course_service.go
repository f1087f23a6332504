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

type CourseService interface {
	List(ctx context.Context) (*dtos.CourseListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Course, error)
	Create(ctx context.Context, req dtos.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	courseRepo repositories.CourseRepository
	deptRepo   repositories.DepartmentRepository
	enrollRepo repositories.EnrollmentRepository
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	deptRepo repositories.DepartmentRepository,
	enrollRepo repositories.EnrollmentRepository,
) CourseService {
	return &courseService{courseRepo: courseRepo, deptRepo: deptRepo, enrollRepo: enrollRepo}
}

func (s *courseService) List(ctx context.Context) (*dtos.CourseListResponse, error) {
	courses, err := s.courseRepo.ListWithDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return &dtos.CourseListResponse{Courses: courses}, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, req dtos.CreateCourseRequest) (*models.Course, error) {
	if err := s.checkCourseNumber(ctx, req.CourseNumber, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:           uuid.New(),
		CourseNumber: req.CourseNumber,
		Title:        req.Title,
		Credits:      req.Credits,
		DepartmentID: req.DepartmentID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateCourseRequest) (*models.Course, error) {
	if err := s.checkCourseNumber(ctx, req.CourseNumber, id); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:           id,
		CourseNumber: req.CourseNumber,
		Title:        req.Title,
		Credits:      req.Credits,
		DepartmentID: req.DepartmentID,
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.enrollRepo.DeleteByCourseID(ctx, id); err != nil {
		return fmt.Errorf("delete course enrollments: %w", err)
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrCourseNotFound
		}
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// checkCourseNumber enforces catalog-number uniqueness; selfID exempts
// the row being updated.
func (s *courseService) checkCourseNumber(ctx context.Context, number int32, selfID uuid.UUID) error {
	existing, err := s.courseRepo.GetByCourseNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("check course number: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return utils.ErrCourseNumberExists
	}
	return nil
}

func (s *courseService) checkDepartment(ctx context.Context, departmentID uuid.UUID) error {
	dept, err := s.deptRepo.GetByID(ctx, departmentID)
	if err != nil {
		return fmt.Errorf("check department: %w", err)
	}
	if dept == nil {
		return utils.ErrDepartmentNotFound
	}
	return nil
}
