package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormTeamStor struct {
	db *gorm.DB
}

func NewGormTeamStor(db *gorm.DB) *GormTeamStor {
	return &GormTeamStor{db: db}
}

func (s *GormTeamStor) GetTeamByID(teamID int) (*mcmodel.Team, error) {
	var team mcmodel.Team
	if err := s.db.Preload("CommonTemplate").First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamStor) CreateTeam(team *mcmodel.Team) (*mcmodel.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	team.Slug = slug.Make(team.Name)

	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}

	return team, nil
}

func (s *GormTeamStor) UpdateTeam(team, updates *mcmodel.Team) (*mcmodel.Team, error) {
	if err := s.db.Model(team).Updates(updates).Error; err != nil {
		return nil, err
	}
	return team, nil
}
