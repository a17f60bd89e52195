package mcmodel

import "time"

// ExperimentLink points from an experiment (or template) at another
// experiment.
type ExperimentLink struct {
	ID           int         `json:"id"`
	ExperimentID int         `json:"experiment_id"`
	TemplateID   int         `json:"template_id"`
	TargetID     int         `json:"target_id"`
	Target       *Experiment `json:"target" gorm:"foreignKey:TargetID;references:ID"`
	CreatedAt    time.Time   `json:"created_at"`
}
