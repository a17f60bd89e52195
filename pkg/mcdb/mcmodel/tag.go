package mcmodel

import "time"

// Tag is owned by either an experiment or a template, never both. The unused
// owner column is left at zero.
type Tag struct {
	ID           int       `json:"id"`
	ExperimentID int       `json:"experiment_id"`
	TemplateID   int       `json:"template_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}
