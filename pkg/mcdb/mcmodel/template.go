package mcmodel

import (
	"encoding/json"
	"time"
)

// ExperimentTemplate is a reusable experiment skeleton. Its tags, links and
// steps are copied onto any experiment created from it.
type ExperimentTemplate struct {
	ID        int              `json:"id"`
	UUID      string           `json:"uuid"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Metadata  string           `json:"metadata"`
	CanRead   string           `json:"canread"`
	CanWrite  string           `json:"canwrite"`
	TeamID    int              `json:"team_id"`
	Team      *Team            `json:"team" gorm:"foreignKey:TeamID;references:ID"`
	OwnerID   int              `json:"owner_id"`
	Owner     *User            `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	Tags      []Tag            `json:"tags" gorm:"foreignKey:TemplateID"`
	Links     []ExperimentLink `json:"links" gorm:"foreignKey:TemplateID"`
	Steps     []ExperimentStep `json:"steps" gorm:"foreignKey:TemplateID"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (t ExperimentTemplate) GetMetadata() (map[string]any, error) {
	if t.Metadata == "" {
		return nil, nil
	}

	var md map[string]any
	err := json.Unmarshal([]byte(t.Metadata), &md)
	return md, err
}
