package mcmodel

import "time"

// ExperimentStep is one row of an experiment's checklist. Ordering is the
// position within the checklist, lowest first.
type ExperimentStep struct {
	ID           int       `json:"id"`
	ExperimentID int       `json:"experiment_id"`
	TemplateID   int       `json:"template_id"`
	Body         string    `json:"body"`
	Ordering     int       `json:"ordering"`
	Finished     bool      `json:"finished"`
	FinishedAt   time.Time `json:"finished_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
