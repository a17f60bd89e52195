package mcmodel

import "time"

// Pin is a user's bookmark on an experiment.
type Pin struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	ExperimentID int       `json:"experiment_id"`
	CreatedAt    time.Time `json:"created_at"`
}
