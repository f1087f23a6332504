package dtos

// EnrollmentDateCount is one bucket of the enrollment-statistics view:
// how many students enrolled on a given date.
type EnrollmentDateCount struct {
	EnrollmentDate string `json:"enrollment_date"`
	StudentCount   int    `json:"student_count"`
}

type EnrollmentStatsResponse struct {
	Dates []EnrollmentDateCount `json:"dates"`
}
