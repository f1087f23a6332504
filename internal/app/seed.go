package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/utils"
)

// Helper to check for unique violation error (PostgreSQL specific code)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Fixed IDs so re-running the seed is a no-op (create hits the PK and
// is skipped).
var (
	seedInstructorKim     = uuid.MustParse("7b1d3f10-9c1a-4e7a-8a52-2f10aa000001")
	seedInstructorFadi    = uuid.MustParse("7b1d3f10-9c1a-4e7a-8a52-2f10aa000002")
	seedInstructorRoger   = uuid.MustParse("7b1d3f10-9c1a-4e7a-8a52-2f10aa000003")
	seedInstructorCandace = uuid.MustParse("7b1d3f10-9c1a-4e7a-8a52-2f10aa000004")

	seedDeptEnglish     = uuid.MustParse("52ab7fe0-44d1-4b02-9c11-6e20bb000001")
	seedDeptMathematics = uuid.MustParse("52ab7fe0-44d1-4b02-9c11-6e20bb000002")
	seedDeptEngineering = uuid.MustParse("52ab7fe0-44d1-4b02-9c11-6e20bb000003")
	seedDeptEconomics   = uuid.MustParse("52ab7fe0-44d1-4b02-9c11-6e20bb000004")

	seedStudentCarson   = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000001")
	seedStudentMeredith = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000002")
	seedStudentArturo   = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000003")
	seedStudentGytis    = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000004")
	seedStudentYan      = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000005")
	seedStudentPeggy    = uuid.MustParse("9cd41a22-1fbb-4a6e-b1d8-0c31cc000006")

	seedCourseChemistry      = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000001")
	seedCourseMicroeconomics = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000002")
	seedCourseCalculus       = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000003")
	seedCourseTrigonometry   = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000004")
	seedCourseComposition    = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000005")
	seedCourseLiterature     = uuid.MustParse("e4f68c11-73d2-4c55-a7c4-8d42dd000006")
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedDemoData inserts the demo campus: four departments with
// administrators, a handful of instructors, students, courses and
// graded enrollments. Safe to run repeatedly.
func SeedDemoData(
	deptRepo repositories.DepartmentRepository,
	instrRepo repositories.InstructorRepository,
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	enrollRepo repositories.EnrollmentRepository,
) error {
	ctx := context.Background()

	if err := seedInstructors(ctx, instrRepo); err != nil {
		return err
	}
	if err := seedDepartments(ctx, deptRepo); err != nil {
		return err
	}
	if err := seedStudents(ctx, studentRepo); err != nil {
		return err
	}
	if err := seedCourses(ctx, courseRepo); err != nil {
		return err
	}
	if err := seedEnrollments(ctx, enrollRepo); err != nil {
		return err
	}

	utils.Logger.Info("Demo data seeding complete.")
	return nil
}

func seedInstructors(ctx context.Context, repo repositories.InstructorRepository) error {
	instructors := []*models.Instructor{
		{ID: seedInstructorKim, FirstName: "Kim", LastName: "Abercrombie", HireDate: date(1995, time.March, 11)},
		{ID: seedInstructorFadi, FirstName: "Fadi", LastName: "Fakhouri", HireDate: date(2002, time.July, 6)},
		{ID: seedInstructorRoger, FirstName: "Roger", LastName: "Harui", HireDate: date(1998, time.July, 1)},
		{ID: seedInstructorCandace, FirstName: "Candace", LastName: "Kapoor", HireDate: date(2001, time.January, 15)},
	}
	for _, i := range instructors {
		if err := repo.Create(ctx, i); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("Instructor %s %s already present; skipping.", i.FirstName, i.LastName)
				continue
			}
			return fmt.Errorf("insert instructor %s: %w", i.LastName, err)
		}
	}
	return nil
}

func seedDepartments(ctx context.Context, repo repositories.DepartmentRepository) error {
	type deptSeed struct {
		dept  *models.Department
		admin uuid.UUID
	}
	seeds := []deptSeed{
		{&models.Department{ID: seedDeptEnglish, Name: "English", Budget: 350000, StartDate: date(2007, time.September, 1)}, seedInstructorKim},
		{&models.Department{ID: seedDeptMathematics, Name: "Mathematics", Budget: 100000, StartDate: date(2007, time.September, 1)}, seedInstructorFadi},
		{&models.Department{ID: seedDeptEngineering, Name: "Engineering", Budget: 350000, StartDate: date(2007, time.September, 1)}, seedInstructorRoger},
		{&models.Department{ID: seedDeptEconomics, Name: "Economics", Budget: 100000, StartDate: date(2007, time.September, 1)}, seedInstructorCandace},
	}
	for _, s := range seeds {
		if err := repo.Create(ctx, s.dept); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("Department %s already present; skipping.", s.dept.Name)
				continue
			}
			return fmt.Errorf("insert department %s: %w", s.dept.Name, err)
		}
		// Attach the administrator through the optimistic-lock loop so a
		// concurrent seeder cannot clobber the row.
		admin := s.admin
		if err := repo.UpdateWithRetry(ctx, s.dept.ID, func(stored *models.Department) error {
			stored.AdministratorID = &admin
			return nil
		}); err != nil {
			return fmt.Errorf("set administrator for %s: %w", s.dept.Name, err)
		}
	}
	return nil
}

func seedStudents(ctx context.Context, repo repositories.StudentRepository) error {
	students := []*models.Student{
		{ID: seedStudentCarson, FirstName: "Carson", LastName: "Alexander", EnrollmentDate: date(2016, time.September, 1)},
		{ID: seedStudentMeredith, FirstName: "Meredith", LastName: "Alonso", EnrollmentDate: date(2018, time.September, 1)},
		{ID: seedStudentArturo, FirstName: "Arturo", LastName: "Anand", EnrollmentDate: date(2019, time.September, 1)},
		{ID: seedStudentGytis, FirstName: "Gytis", LastName: "Barzdukas", EnrollmentDate: date(2018, time.September, 1)},
		{ID: seedStudentYan, FirstName: "Yan", LastName: "Li", EnrollmentDate: date(2018, time.September, 1)},
		{ID: seedStudentPeggy, FirstName: "Peggy", LastName: "Justice", EnrollmentDate: date(2016, time.September, 1)},
	}
	for _, s := range students {
		if err := repo.Create(ctx, s); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("Student %s %s already present; skipping.", s.FirstName, s.LastName)
				continue
			}
			return fmt.Errorf("insert student %s: %w", s.LastName, err)
		}
	}
	return nil
}

func seedCourses(ctx context.Context, repo repositories.CourseRepository) error {
	courses := []*models.Course{
		{ID: seedCourseChemistry, CourseNumber: 1050, Title: "Chemistry", Credits: 3, DepartmentID: seedDeptEngineering},
		{ID: seedCourseMicroeconomics, CourseNumber: 4022, Title: "Microeconomics", Credits: 3, DepartmentID: seedDeptEconomics},
		{ID: seedCourseCalculus, CourseNumber: 1045, Title: "Calculus", Credits: 4, DepartmentID: seedDeptMathematics},
		{ID: seedCourseTrigonometry, CourseNumber: 3141, Title: "Trigonometry", Credits: 4, DepartmentID: seedDeptMathematics},
		{ID: seedCourseComposition, CourseNumber: 2021, Title: "Composition", Credits: 3, DepartmentID: seedDeptEnglish},
		{ID: seedCourseLiterature, CourseNumber: 2042, Title: "Literature", Credits: 4, DepartmentID: seedDeptEnglish},
	}
	for _, c := range courses {
		if err := repo.Create(ctx, c); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("Course %d %s already present; skipping.", c.CourseNumber, c.Title)
				continue
			}
			return fmt.Errorf("insert course %s: %w", c.Title, err)
		}
	}
	return nil
}

func seedEnrollments(ctx context.Context, repo repositories.EnrollmentRepository) error {
	grade := func(g models.GradeType) *models.GradeType { return &g }

	enrollments := []*models.Enrollment{
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000001"), StudentID: seedStudentCarson, CourseID: seedCourseChemistry, Grade: grade(models.GradeA)},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000002"), StudentID: seedStudentCarson, CourseID: seedCourseMicroeconomics, Grade: grade(models.GradeC)},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000003"), StudentID: seedStudentMeredith, CourseID: seedCourseCalculus, Grade: grade(models.GradeB)},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000004"), StudentID: seedStudentArturo, CourseID: seedCourseTrigonometry, Grade: grade(models.GradeB)},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000005"), StudentID: seedStudentGytis, CourseID: seedCourseComposition, Grade: grade(models.GradeB)},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000006"), StudentID: seedStudentYan, CourseID: seedCourseComposition},
		{ID: uuid.MustParse("0a77be30-5dc3-4d88-bb01-1e53ee000007"), StudentID: seedStudentPeggy, CourseID: seedCourseLiterature, Grade: grade(models.GradeB)},
	}
	for _, e := range enrollments {
		if err := repo.Create(ctx, e); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert enrollment %s: %w", e.ID, err)
		}
	}
	return nil
}
