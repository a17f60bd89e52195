package mcmodel

import (
	"encoding/json"
	"time"
)

// Experiment is a single notebook record. The Body is rich text owned by the
// front end; Metadata is an opaque JSON blob that extra_fields style UIs
// read and write.
type Experiment struct {
	ID             int              `json:"id"`
	UUID           string           `json:"uuid"`
	ElabID         string           `json:"elabid"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Date           string           `json:"date"`
	StatusID       int              `json:"status_id"`
	Status         *Status          `json:"status" gorm:"foreignKey:StatusID;references:ID"`
	TeamID         int              `json:"team_id"`
	Team           *Team            `json:"team" gorm:"foreignKey:TeamID;references:ID"`
	OwnerID        int              `json:"owner_id"`
	Owner          *User            `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	CanRead        string           `json:"canread"`
	CanWrite       string           `json:"canwrite"`
	Metadata       string           `json:"metadata"`
	Locked         bool             `json:"locked"`
	LockedBy       int              `json:"locked_by"`
	LockedAt       time.Time        `json:"locked_at"`
	Timestamped    bool             `json:"timestamped"`
	TimestampedBy  int              `json:"timestamped_by"`
	TimestampedAt  time.Time        `json:"timestamped_at"`
	TimestampToken string           `json:"timestamp_token"`
	Tags           []Tag            `json:"tags" gorm:"foreignKey:ExperimentID"`
	Links          []ExperimentLink `json:"links" gorm:"foreignKey:ExperimentID"`
	Steps          []ExperimentStep `json:"steps" gorm:"foreignKey:ExperimentID"`
	Uploads        []Upload         `json:"uploads" gorm:"foreignKey:ExperimentID"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (e Experiment) IsLoaded() bool {
	return e.ID != 0
}

func (e Experiment) GetMetadata() (map[string]any, error) {
	if e.Metadata == "" {
		return nil, nil
	}

	var md map[string]any
	err := json.Unmarshal([]byte(e.Metadata), &md)
	return md, err
}
