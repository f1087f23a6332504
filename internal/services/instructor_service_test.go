package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/utils"
)

func TestInstructorDeleteDetachesAdministrator(t *testing.T) {
	instrRepo := newFakeInstructorRepo()
	deptRepo := newFakeDeptRepo()
	svc := NewInstructorService(instrRepo, deptRepo)
	ctx := context.Background()

	instructor := &models.Instructor{
		ID: uuid.New(), FirstName: "Kim", LastName: "Abercrombie",
		HireDate: time.Date(1995, time.March, 11, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, instrRepo.Create(ctx, instructor))

	dept := &models.Department{
		ID:              uuid.New(),
		Name:            "English",
		Budget:          350000,
		StartDate:       time.Date(2007, time.September, 1, 0, 0, 0, 0, time.UTC),
		AdministratorID: &instructor.ID,
	}
	require.NoError(t, deptRepo.Create(ctx, dept))

	require.NoError(t, svc.Delete(ctx, instructor.ID))

	// The department survives, without a dangling administrator.
	stored, err := deptRepo.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.AdministratorID)

	assert.ErrorIs(t, svc.Delete(ctx, instructor.ID), utils.ErrInstructorNotFound)
}

func TestInstructorCreateAndGet(t *testing.T) {
	instrRepo := newFakeInstructorRepo()
	svc := NewInstructorService(instrRepo, newFakeDeptRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, dtos.CreateInstructorRequest{
		InstructorFields: dtos.InstructorFields{FirstName: "Roger", LastName: "Harui", HireDate: "1998-07-01"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harui", got.LastName)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrInstructorNotFound)
}
