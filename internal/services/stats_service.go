package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/campuskit/registrar-service/internal/dtos"
	"github.com/campuskit/registrar-service/internal/repositories"
	"github.com/campuskit/registrar-service/internal/utils"
)

// StatsService backs the enrollment-statistics view and the periodic
// stats log line.
type StatsService interface {
	EnrollmentDates(ctx context.Context) (*dtos.EnrollmentStatsResponse, error)
	LogEnrollmentStats(ctx context.Context)
}

type statsService struct {
	studentRepo repositories.StudentRepository
}

func NewStatsService(studentRepo repositories.StudentRepository) StatsService {
	return &statsService{studentRepo: studentRepo}
}

func (s *statsService) EnrollmentDates(ctx context.Context) (*dtos.EnrollmentStatsResponse, error) {
	counts, err := s.studentRepo.CountByEnrollmentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("count students by enrollment date: %w", err)
	}

	dates := make([]dtos.EnrollmentDateCount, 0, len(counts))
	for day, n := range counts {
		dates = append(dates, dtos.EnrollmentDateCount{EnrollmentDate: day, StudentCount: n})
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].EnrollmentDate < dates[j].EnrollmentDate
	})
	return &dtos.EnrollmentStatsResponse{Dates: dates}, nil
}

// LogEnrollmentStats is the cron target; failures are logged, never fatal.
func (s *statsService) LogEnrollmentStats(ctx context.Context) {
	resp, err := s.EnrollmentDates(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Scheduled enrollment stats collection failed")
		return
	}
	total := 0
	for _, d := range resp.Dates {
		total += d.StudentCount
	}
	utils.Logger.Infof("Enrollment stats: %d students across %d enrollment dates", total, len(resp.Dates))
}
