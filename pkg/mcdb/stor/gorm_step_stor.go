package stor

import (
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormStepStor struct {
	db *gorm.DB
}

func NewGormStepStor(db *gorm.DB) *GormStepStor {
	return &GormStepStor{db: db}
}

func (s *GormStepStor) GetStepsForExperiment(experimentID int) ([]mcmodel.ExperimentStep, error) {
	var steps []mcmodel.ExperimentStep
	err := s.db.Where("experiment_id = ?", experimentID).Order("ordering").Find(&steps).Error
	return steps, err
}

func (s *GormStepStor) SetFinished(step *mcmodel.ExperimentStep, finished bool) (*mcmodel.ExperimentStep, error) {
	now := time.Now()
	err := s.db.Model(step).Updates(map[string]any{
		"finished":    finished,
		"finished_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	step.Finished = finished
	step.FinishedAt = now

	return step, nil
}

// Copied steps always come over unfinished. Finishing a step is progress on
// a particular experiment, not part of the checklist itself.
func copyTemplateSteps(tx *gorm.DB, templateID, experimentID int) error {
	var steps []mcmodel.ExperimentStep

	if err := tx.Where("template_id = ?", templateID).Order("ordering").Find(&steps).Error; err != nil {
		return err
	}

	for _, step := range steps {
		copied := mcmodel.ExperimentStep{
			ExperimentID: experimentID,
			Body:         step.Body,
			Ordering:     step.Ordering,
		}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}

func copyExperimentSteps(tx *gorm.DB, srcExperimentID, dstExperimentID int) error {
	var steps []mcmodel.ExperimentStep

	if err := tx.Where("experiment_id = ?", srcExperimentID).Order("ordering").Find(&steps).Error; err != nil {
		return err
	}

	for _, step := range steps {
		copied := mcmodel.ExperimentStep{
			ExperimentID: dstExperimentID,
			Body:         step.Body,
			Ordering:     step.Ordering,
		}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}
	}

	return nil
}
