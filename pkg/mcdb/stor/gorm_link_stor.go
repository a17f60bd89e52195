package stor

import (
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormLinkStor struct {
	db *gorm.DB
}

func NewGormLinkStor(db *gorm.DB) *GormLinkStor {
	return &GormLinkStor{db: db}
}

func (s *GormLinkStor) AddLinkToExperiment(experimentID, targetID int) (*mcmodel.ExperimentLink, error) {
	link := mcmodel.ExperimentLink{ExperimentID: experimentID, TargetID: targetID}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormLinkStor) GetLinksForExperiment(experimentID int) ([]mcmodel.ExperimentLink, error) {
	var links []mcmodel.ExperimentLink
	err := s.db.Preload("Target").Where("experiment_id = ?", experimentID).Find(&links).Error
	return links, err
}

func copyTemplateLinks(tx *gorm.DB, templateID, experimentID int) error {
	var links []mcmodel.ExperimentLink

	if err := tx.Where("template_id = ?", templateID).Find(&links).Error; err != nil {
		return err
	}

	for _, link := range links {
		copied := mcmodel.ExperimentLink{ExperimentID: experimentID, TargetID: link.TargetID}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}

func copyExperimentLinks(tx *gorm.DB, srcExperimentID, dstExperimentID int) error {
	var links []mcmodel.ExperimentLink

	if err := tx.Where("experiment_id = ?", srcExperimentID).Find(&links).Error; err != nil {
		return err
	}

	for _, link := range links {
		copied := mcmodel.ExperimentLink{ExperimentID: dstExperimentID, TargetID: link.TargetID}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}
