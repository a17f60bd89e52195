package stor

import (
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormTagStor struct {
	db *gorm.DB
}

func NewGormTagStor(db *gorm.DB) *GormTagStor {
	return &GormTagStor{db: db}
}

func (s *GormTagStor) AddTagToExperiment(experimentID int, name string) (*mcmodel.Tag, error) {
	tag := mcmodel.Tag{ExperimentID: experimentID, Name: name}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *GormTagStor) GetTagsForExperiment(experimentID int) ([]mcmodel.Tag, error) {
	var tags []mcmodel.Tag
	err := s.db.Where("experiment_id = ?", experimentID).Find(&tags).Error
	return tags, err
}

func (s *GormTagStor) DeleteTagsForExperiment(experimentID int) error {
	return s.db.Where("experiment_id = ?", experimentID).Delete(&mcmodel.Tag{}).Error
}

func copyTemplateTags(tx *gorm.DB, templateID, experimentID int) error {
	var tags []mcmodel.Tag

	if err := tx.Where("template_id = ?", templateID).Find(&tags).Error; err != nil {
		return err
	}

	for _, tag := range tags {
		copied := mcmodel.Tag{ExperimentID: experimentID, Name: tag.Name}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}

func copyExperimentTags(tx *gorm.DB, srcExperimentID, dstExperimentID int) error {
	var tags []mcmodel.Tag

	if err := tx.Where("experiment_id = ?", srcExperimentID).Find(&tags).Error; err != nil {
		return err
	}

	for _, tag := range tags {
		copied := mcmodel.Tag{ExperimentID: dstExperimentID, Name: tag.Name}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}
