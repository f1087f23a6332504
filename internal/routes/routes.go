package routes

const (
	// Health & ops
	Health  = "/health"
	Metrics = "/metrics"

	// Students
	Students    = "/api/v1/students"
	StudentByID = "/api/v1/students/{id}"

	// Courses
	Courses    = "/api/v1/courses"
	CourseByID = "/api/v1/courses/{id}"

	// Instructors
	Instructors    = "/api/v1/instructors"
	InstructorByID = "/api/v1/instructors/{id}"

	// Departments (optimistic-concurrency protected)
	Departments    = "/api/v1/departments"
	DepartmentByID = "/api/v1/departments/{id}"

	// Enrollments
	Enrollments     = "/api/v1/enrollments"
	EnrollmentGrade = "/api/v1/enrollments/{id}/grade"
	EnrollmentByID  = "/api/v1/enrollments/{id}"

	// About
	EnrollmentStats = "/api/v1/about/enrollment-stats"
)
