package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/campuskit/registrar-service/internal/models"
	"github.com/campuskit/registrar-service/internal/repositories"
)

var errStoreDown = errors.New("store down")

const (
	tagUpdated  = "UPDATE 1"
	tagNoUpdate = "UPDATE 0"
	tagDeleted  = "DELETE 1"
	tagNoDelete = "DELETE 0"
)

/* ------------------------------------------------------------------
   Department repository fake: emulates the compare-and-swap the real
   repository gets from `WHERE id=$n AND row_version=$m`.
------------------------------------------------------------------ */

type fakeDeptRepo struct {
	depts map[uuid.UUID]*models.Department
	fail  bool // every call errors, to exercise store-failure paths
}

func newFakeDeptRepo() *fakeDeptRepo {
	return &fakeDeptRepo{depts: make(map[uuid.UUID]*models.Department)}
}

func cloneDept(d *models.Department) *models.Department {
	cp := *d
	if d.AdministratorID != nil {
		id := *d.AdministratorID
		cp.AdministratorID = &id
	}
	return &cp
}

func (f *fakeDeptRepo) put(d *models.Department) {
	f.depts[d.ID] = cloneDept(d)
}

func (f *fakeDeptRepo) Create(ctx context.Context, d *models.Department) error {
	if f.fail {
		return errStoreDown
	}
	d.RowVersion = 1
	f.put(d)
	return nil
}

func (f *fakeDeptRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	if f.fail {
		return nil, errStoreDown
	}
	d, ok := f.depts[id]
	if !ok {
		return nil, nil
	}
	return cloneDept(d), nil
}

func (f *fakeDeptRepo) GetByAdministratorID(ctx context.Context, instructorID uuid.UUID) (*models.Department, error) {
	if f.fail {
		return nil, errStoreDown
	}
	for _, d := range f.depts {
		if d.AdministratorID != nil && *d.AdministratorID == instructorID {
			return cloneDept(d), nil
		}
	}
	return nil, nil
}

func (f *fakeDeptRepo) List(ctx context.Context) ([]*models.Department, error) {
	if f.fail {
		return nil, errStoreDown
	}
	out := make([]*models.Department, 0, len(f.depts))
	for _, d := range f.depts {
		out = append(out, cloneDept(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDeptRepo) UpdateIfVersion(ctx context.Context, d *models.Department, expected int64) (pgconn.CommandTag, error) {
	if f.fail {
		return nil, errStoreDown
	}
	stored, ok := f.depts[d.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag(tagNoUpdate), nil
	}
	next := cloneDept(d)
	next.RowVersion = expected + 1
	next.CreatedAt = stored.CreatedAt
	f.depts[d.ID] = next
	return pgconn.CommandTag(tagUpdated), nil
}

func (f *fakeDeptRepo) DeleteIfVersion(ctx context.Context, id uuid.UUID, expected int64) (pgconn.CommandTag, error) {
	if f.fail {
		return nil, errStoreDown
	}
	stored, ok := f.depts[id]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag(tagNoDelete), nil
	}
	delete(f.depts, id)
	return pgconn.CommandTag(tagDeleted), nil
}

func (f *fakeDeptRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Department) error) error {
	if f.fail {
		return errStoreDown
	}
	stored, ok := f.depts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := cloneDept(stored)
	if err := mutate(cp); err != nil {
		return err
	}
	cp.RowVersion = stored.RowVersion + 1
	f.depts[id] = cp
	return nil
}

func (f *fakeDeptRepo) ClearAdministrator(ctx context.Context, instructorID uuid.UUID) error {
	if f.fail {
		return errStoreDown
	}
	for _, d := range f.depts {
		if d.AdministratorID != nil && *d.AdministratorID == instructorID {
			d.AdministratorID = nil
			d.RowVersion++
		}
	}
	return nil
}

var _ repositories.DepartmentRepository = (*fakeDeptRepo)(nil)

/* ------------------------------------------------------------------
   Instructor repository fake
------------------------------------------------------------------ */

type fakeInstructorRepo struct {
	instructors map[uuid.UUID]*models.Instructor
}

func newFakeInstructorRepo() *fakeInstructorRepo {
	return &fakeInstructorRepo{instructors: make(map[uuid.UUID]*models.Instructor)}
}

func (f *fakeInstructorRepo) Create(ctx context.Context, i *models.Instructor) error {
	cp := *i
	f.instructors[i.ID] = &cp
	return nil
}

func (f *fakeInstructorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Instructor, error) {
	i, ok := f.instructors[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeInstructorRepo) List(ctx context.Context) ([]*models.Instructor, error) {
	out := make([]*models.Instructor, 0, len(f.instructors))
	for _, i := range f.instructors {
		cp := *i
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].LastName < out[b].LastName })
	return out, nil
}

func (f *fakeInstructorRepo) Update(ctx context.Context, i *models.Instructor) error {
	if _, ok := f.instructors[i.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *i
	f.instructors[i.ID] = &cp
	return nil
}

func (f *fakeInstructorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.instructors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.instructors, id)
	return nil
}

var _ repositories.InstructorRepository = (*fakeInstructorRepo)(nil)

/* ------------------------------------------------------------------
   Student repository fake
------------------------------------------------------------------ */

type fakeStudentRepo struct {
	students map[uuid.UUID]*models.Student

	// captured Search args for assertion
	lastSearch string
	lastSortBy string
	lastOrder  string
	lastLimit  int
	lastOffset int

	enrollmentDateCounts map[string]int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[uuid.UUID]*models.Student)}
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *models.Student) error {
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentRepo) Search(ctx context.Context, search, sortBy, order string, limit, offset int) ([]*models.Student, int, error) {
	f.lastSearch, f.lastSortBy, f.lastOrder = search, sortBy, order
	f.lastLimit, f.lastOffset = limit, offset

	out := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].LastName < out[b].LastName })

	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, s *models.Student) error {
	if _, ok := f.students[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *s
	f.students[s.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.students[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) CountByEnrollmentDate(ctx context.Context) (map[string]int, error) {
	return f.enrollmentDateCounts, nil
}

var _ repositories.StudentRepository = (*fakeStudentRepo)(nil)

/* ------------------------------------------------------------------
   Course repository fake
------------------------------------------------------------------ */

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uuid.UUID]*models.Course)}
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *models.Course) error {
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) GetByCourseNumber(ctx context.Context, number int32) (*models.Course, error) {
	for _, c := range f.courses {
		if c.CourseNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseRepo) ListWithDepartment(ctx context.Context) ([]*repositories.CourseWithDepartment, error) {
	out := make([]*repositories.CourseWithDepartment, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, &repositories.CourseWithDepartment{Course: *c})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CourseNumber < out[b].CourseNumber })
	return out, nil
}

func (f *fakeCourseRepo) ListByDepartmentID(ctx context.Context, departmentID uuid.UUID) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if c.DepartmentID == departmentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CourseNumber < out[b].CourseNumber })
	return out, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, c *models.Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.courses, id)
	return nil
}

var _ repositories.CourseRepository = (*fakeCourseRepo)(nil)

/* ------------------------------------------------------------------
   Enrollment repository fake
------------------------------------------------------------------ */

type fakeEnrollmentRepo struct {
	enrollments map[uuid.UUID]*models.Enrollment

	deletedByStudent []uuid.UUID
	deletedByCourse  []uuid.UUID
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[uuid.UUID]*models.Enrollment)}
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	cp := *e
	f.enrollments[e.ID] = &cp
	return nil
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentRepo) ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*repositories.EnrollmentWithCourse, error) {
	var out []*repositories.EnrollmentWithCourse
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, &repositories.EnrollmentWithCourse{Enrollment: *e})
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) SetGrade(ctx context.Context, id uuid.UUID, grade models.GradeType) error {
	e, ok := f.enrollments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	g := grade
	e.Grade = &g
	return nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.enrollments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByStudentID(ctx context.Context, studentID uuid.UUID) error {
	f.deletedByStudent = append(f.deletedByStudent, studentID)
	for id, e := range f.enrollments {
		if e.StudentID == studentID {
			delete(f.enrollments, id)
		}
	}
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	f.deletedByCourse = append(f.deletedByCourse, courseID)
	for id, e := range f.enrollments {
		if e.CourseID == courseID {
			delete(f.enrollments, id)
		}
	}
	return nil
}

var _ repositories.EnrollmentRepository = (*fakeEnrollmentRepo)(nil)
