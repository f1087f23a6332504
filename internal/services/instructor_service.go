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

type InstructorService interface {
	List(ctx context.Context) (*dtos.InstructorListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Instructor, error)
	Create(ctx context.Context, req dtos.CreateInstructorRequest) (*models.Instructor, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateInstructorRequest) (*models.Instructor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type instructorService struct {
	instrRepo repositories.InstructorRepository
	deptRepo  repositories.DepartmentRepository
}

func NewInstructorService(
	instrRepo repositories.InstructorRepository,
	deptRepo repositories.DepartmentRepository,
) InstructorService {
	return &instructorService{instrRepo: instrRepo, deptRepo: deptRepo}
}

func (s *instructorService) List(ctx context.Context) (*dtos.InstructorListResponse, error) {
	instructors, err := s.instrRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return &dtos.InstructorListResponse{Instructors: instructors}, nil
}

func (s *instructorService) Get(ctx context.Context, id uuid.UUID) (*models.Instructor, error) {
	instructor, err := s.instrRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load instructor: %w", err)
	}
	if instructor == nil {
		return nil, utils.ErrInstructorNotFound
	}
	return instructor, nil
}

func (s *instructorService) Create(ctx context.Context, req dtos.CreateInstructorRequest) (*models.Instructor, error) {
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	instructor := &models.Instructor{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		HireDate:  hireDate,
	}
	if err := s.instrRepo.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("insert instructor: %w", err)
	}
	return instructor, nil
}

func (s *instructorService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateInstructorRequest) (*models.Instructor, error) {
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, invalidDate(err)
	}

	instructor := &models.Instructor{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		HireDate:  hireDate,
	}
	if err := s.instrRepo.Update(ctx, instructor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("update instructor: %w", err)
	}
	return instructor, nil
}

func (s *instructorService) Delete(ctx context.Context, id uuid.UUID) error {
	// An instructor may administer at most one department; detach it
	// before the row disappears.
	if err := s.deptRepo.ClearAdministrator(ctx, id); err != nil {
		return fmt.Errorf("clear department administrator: %w", err)
	}
	if err := s.instrRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrInstructorNotFound
		}
		return fmt.Errorf("delete instructor: %w", err)
	}
	return nil
}
