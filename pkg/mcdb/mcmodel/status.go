package mcmodel

import "time"

// Status is a per team category assigned to experiments. A team is expected
// to have exactly one row with IsDefault set, but the schema doesn't enforce
// that, so lookups treat the lowest id default as the winner.
type Status struct {
	ID            int       `json:"id"`
	TeamID        int       `json:"team_id"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	IsDefault     bool      `json:"is_default"`
	Timestampable bool      `json:"timestampable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
