package controllers

import (
	"context"
	"net/http"

	"github.com/campuskit/registrar-service/internal/utils"
)

// Pinger is the slice of the app the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	pinger Pinger
}

func NewHealthController(p Pinger) *HealthController {
	return &HealthController{pinger: p}
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.pinger.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeStoreUnavailable, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
