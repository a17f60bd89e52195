package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormTemplateStor struct {
	db *gorm.DB
}

func NewGormTemplateStor(db *gorm.DB) *GormTemplateStor {
	return &GormTemplateStor{db: db}
}

func (s *GormTemplateStor) GetTemplateByID(templateID int) (*mcmodel.ExperimentTemplate, error) {
	var template mcmodel.ExperimentTemplate

	err := s.db.Preload("Tags").
		Preload("Links").
		Preload("Steps").
		First(&template, templateID).Error
	if err != nil {
		return nil, err
	}

	return &template, nil
}

func (s *GormTemplateStor) GetTemplatesForTeam(teamID int) ([]mcmodel.ExperimentTemplate, error) {
	var templates []mcmodel.ExperimentTemplate
	err := s.db.Where("team_id = ?", teamID).Find(&templates).Error
	return templates, err
}

func (s *GormTemplateStor) CreateTemplate(template *mcmodel.ExperimentTemplate) (*mcmodel.ExperimentTemplate, error) {
	var err error

	if template.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, err
	}

	return template, nil
}
