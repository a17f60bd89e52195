package stor

import (
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormStatusStor struct {
	db *gorm.DB
}

func NewGormStatusStor(db *gorm.DB) *GormStatusStor {
	return &GormStatusStor{db: db}
}

func (s *GormStatusStor) GetStatusByID(statusID int) (*mcmodel.Status, error) {
	var status mcmodel.Status
	if err := s.db.First(&status, statusID).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// GetDefaultStatusForTeam returns the team's default status. Nothing stops a
// team from ending up with several defaults or none, so the lowest id default
// wins, and when there is no default at all the lowest id status for the team
// is used instead.
func (s *GormStatusStor) GetDefaultStatusForTeam(teamID int) (*mcmodel.Status, error) {
	var status mcmodel.Status

	err := s.db.Where("team_id = ? and is_default = ?", teamID, true).
		Order("id").
		First(&status).Error
	if err == nil {
		return &status, nil
	}

	if err := s.db.Where("team_id = ?", teamID).Order("id").First(&status).Error; err != nil {
		return nil, err
	}

	return &status, nil
}

func (s *GormStatusStor) CreateStatus(status *mcmodel.Status) (*mcmodel.Status, error) {
	if err := s.db.Create(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}
