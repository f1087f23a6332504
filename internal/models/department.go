package models

import (
	"time"

	"github.com/google/uuid"
)

// Department is the one entity guarded by optimistic concurrency:
// every update and delete must present the row_version the caller
// last observed.
type Department struct {
	Versioned
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Budget          int64      `json:"budget"`
	StartDate       time.Time  `json:"start_date"`
	AdministratorID *uuid.UUID `json:"administrator_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (d *Department) GetID() string { return d.ID.String() }
