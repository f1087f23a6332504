package controllers

import (
	"net/http"

	"github.com/campuskit/registrar-service/internal/services"
	"github.com/campuskit/registrar-service/internal/utils"
)

type StatsController struct {
	svc services.StatsService
}

func NewStatsController(s services.StatsService) *StatsController {
	return &StatsController{svc: s}
}

// GET /api/v1/about/enrollment-stats
func (c *StatsController) EnrollmentStatsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.EnrollmentDates(r.Context())
	if err != nil {
		respondStoreError(w, "Failed to collect enrollment stats", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
