package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/utils"
)

func enrollmentFixture(t *testing.T) (EnrollmentService, *fakeEnrollmentRepo, *models.Student, *models.Course) {
	t.Helper()
	enrollRepo := newFakeEnrollmentRepo()
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	svc := NewEnrollmentService(enrollRepo, studentRepo, courseRepo)
	ctx := context.Background()

	student := &models.Student{ID: uuid.New(), FirstName: "Carson", LastName: "Alexander"}
	require.NoError(t, studentRepo.Create(ctx, student))
	course := &models.Course{ID: uuid.New(), CourseNumber: 1050, Title: "Chemistry", Credits: 3}
	require.NoError(t, courseRepo.Create(ctx, course))

	return svc, enrollRepo, student, course
}

func TestEnroll(t *testing.T) {
	svc, _, student, course := enrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, dtos.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.StudentID)
	assert.Nil(t, enrollment.Grade)

	_, err = svc.Enroll(ctx, dtos.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	assert.ErrorIs(t, err, utils.ErrDuplicateEnrollment)
}

func TestEnrollUnknownStudentOrCourse(t *testing.T) {
	svc, _, student, course := enrollmentFixture(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, dtos.EnrollRequest{StudentID: uuid.New(), CourseID: course.ID})
	assert.ErrorIs(t, err, utils.ErrStudentNotFound)

	_, err = svc.Enroll(ctx, dtos.EnrollRequest{StudentID: student.ID, CourseID: uuid.New()})
	assert.ErrorIs(t, err, utils.ErrCourseNotFound)
}

func TestSetGrade(t *testing.T) {
	svc, enrollRepo, student, course := enrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, dtos.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	require.NoError(t, svc.SetGrade(ctx, enrollment.ID, models.GradeA))
	stored, err := enrollRepo.GetByID(ctx, enrollment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Grade)
	assert.Equal(t, models.GradeA, *stored.Grade)

	assert.ErrorIs(t, svc.SetGrade(ctx, enrollment.ID, models.GradeType("E")), utils.ErrInvalidGrade)
	assert.ErrorIs(t, svc.SetGrade(ctx, uuid.New(), models.GradeB), utils.ErrEnrollmentNotFound)
}

func TestWithdraw(t *testing.T) {
	svc, enrollRepo, student, course := enrollmentFixture(t)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, dtos.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(ctx, enrollment.ID))
	assert.Empty(t, enrollRepo.enrollments)

	assert.ErrorIs(t, svc.Withdraw(ctx, enrollment.ID), utils.ErrEnrollmentNotFound)
}

func TestEnrollmentStats(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	studentRepo.enrollmentDateCounts = map[string]int{
		"2018-09-01": 3,
		"2016-09-01": 2,
		"2019-09-01": 1,
	}
	svc := NewStatsService(studentRepo)

	resp, err := svc.EnrollmentDates(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Dates, 3)

	// Sorted ascending by date.
	assert.Equal(t, "2016-09-01", resp.Dates[0].EnrollmentDate)
	assert.Equal(t, 2, resp.Dates[0].StudentCount)
	assert.Equal(t, "2018-09-01", resp.Dates[1].EnrollmentDate)
	assert.Equal(t, "2019-09-01", resp.Dates[2].EnrollmentDate)
}
