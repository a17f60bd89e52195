package mcmodel

import "time"

type User struct {
	ID              int    `json:"id"`
	UUID            string `json:"uuid"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ApiToken        string `json:"-"`
	Password        string `json:"-"`
	TeamID          int    `json:"team_id"`
	Team            *Team  `json:"team" gorm:"foreignKey:TeamID;references:ID"`
	Admin           bool   `json:"admin"`
	DefaultCanRead  string `json:"default_canread"`
	DefaultCanWrite string `json:"default_canwrite"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
