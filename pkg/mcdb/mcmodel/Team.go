package mcmodel

import (
	"time"
)

// Team groups users and carries the policy knobs that shape experiment
// creation: whether members must start from the team's common template, and
// whether the team forces the permission scopes on new experiments.
type Team struct {
	ID                      int                 `json:"id"`
	UUID                    string              `json:"uuid"`
	Name                    string              `json:"name"`
	Slug                    string              `json:"slug"`
	ForceExperimentTemplate bool                `json:"force_experiment_template"`
	CommonTemplateID        int                 `json:"common_template_id"`
	CommonTemplate          *ExperimentTemplate `json:"common_template" gorm:"foreignKey:CommonTemplateID;references:ID"`
	DoForceCanRead          bool                `json:"do_force_canread"`
	ForceCanRead            string              `json:"force_canread"`
	DoForceCanWrite         bool                `json:"do_force_canwrite"`
	ForceCanWrite           string              `json:"force_canwrite"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}
