package stor

import (
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormExperimentStor struct {
	db *gorm.DB
}

func NewGormExperimentStor(db *gorm.DB) *GormExperimentStor {
	return &GormExperimentStor{db: db}
}

// CreateExperiment inserts the experiment and, when fromTemplate is not nil,
// copies the template's tags, links and steps onto the new row. Extra tags
// supplied by the caller are attached last. All of it happens in a single
// transaction so a failed copy doesn't leave a half populated record.
func (s *GormExperimentStor) CreateExperiment(e *mcmodel.Experiment, fromTemplate *mcmodel.ExperimentTemplate, extraTags []string) (*mcmodel.Experiment, error) {
	var err error

	if e.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		if fromTemplate != nil {
			if err := copyTemplateTags(tx, fromTemplate.ID, e.ID); err != nil {
				return err
			}
			if err := copyTemplateLinks(tx, fromTemplate.ID, e.ID); err != nil {
				return err
			}
			if err := copyTemplateSteps(tx, fromTemplate.ID, e.ID); err != nil {
				return err
			}
		}

		for _, name := range extraTags {
			tag := mcmodel.Tag{ExperimentID: e.ID, Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return e, nil
}

func (s *GormExperimentStor) GetExperimentByID(experimentID int) (*mcmodel.Experiment, error) {
	var experiment mcmodel.Experiment

	err := s.db.Preload("Status").
		Preload("Tags").
		Preload("Links").
		Preload("Steps").
		Preload("Uploads").
		First(&experiment, experimentID).Error
	if err != nil {
		return nil, err
	}

	return &experiment, nil
}

func (s *GormExperimentStor) GetExperimentsForTeam(teamID int) ([]mcmodel.Experiment, error) {
	var experiments []mcmodel.Experiment
	err := s.db.Preload("Status").
		Where("team_id = ?", teamID).
		Find(&experiments).Error
	return experiments, err
}

func (s *GormExperimentStor) GetExperimentsForOwner(ownerID int) ([]mcmodel.Experiment, error) {
	var experiments []mcmodel.Experiment
	err := s.db.Preload("Status").
		Where("owner_id = ?", ownerID).
		Find(&experiments).Error
	return experiments, err
}

// DuplicateExperiment inserts dup and copies src's tags, links and steps onto
// it. The caller prepares dup (title marker, fresh elabid, cleared lock and
// timestamp state); this method only makes the copy atomic.
func (s *GormExperimentStor) DuplicateExperiment(src, dup *mcmodel.Experiment) (*mcmodel.Experiment, error) {
	var err error

	if dup.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(dup).Error; err != nil {
			return err
		}

		if err := copyExperimentTags(tx, src.ID, dup.ID); err != nil {
			return err
		}

		if err := copyExperimentLinks(tx, src.ID, dup.ID); err != nil {
			return err
		}

		return copyExperimentSteps(tx, src.ID, dup.ID)
	})

	if err != nil {
		return nil, err
	}

	return dup, nil
}

// DeleteExperiment removes the row along with its links and steps. Tags,
// uploads and pins have their own stores and are cleaned up by the caller in
// the order the lifecycle requires.
func (s *GormExperimentStor) DeleteExperiment(e *mcmodel.Experiment) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("experiment_id = ?", e.ID).Delete(&mcmodel.ExperimentLink{}).Error; err != nil {
			return err
		}

		if err := tx.Where("experiment_id = ?", e.ID).Delete(&mcmodel.ExperimentStep{}).Error; err != nil {
			return err
		}

		return tx.Delete(&mcmodel.Experiment{}, e.ID).Error
	})
}

// SetTimestamped marks the experiment locked and timestamped in one update.
// A timestamped experiment is always locked as well, so both sets of columns
// change together.
func (s *GormExperimentStor) SetTimestamped(e *mcmodel.Experiment, byUserID int, at time.Time, token string) (*mcmodel.Experiment, error) {
	err := s.db.Model(e).Updates(map[string]any{
		"locked":          true,
		"locked_by":       byUserID,
		"locked_at":       at,
		"timestamped":     true,
		"timestamped_by":  byUserID,
		"timestamped_at":  at,
		"timestamp_token": token,
	}).Error
	if err != nil {
		return nil, err
	}

	e.Locked = true
	e.LockedBy = byUserID
	e.LockedAt = at
	e.Timestamped = true
	e.TimestampedBy = byUserID
	e.TimestampedAt = at
	e.TimestampToken = token

	return e, nil
}

func (s *GormExperimentStor) SetLocked(e *mcmodel.Experiment, byUserID int) (*mcmodel.Experiment, error) {
	now := time.Now()
	err := s.db.Model(e).Updates(map[string]any{
		"locked":    true,
		"locked_by": byUserID,
		"locked_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	e.Locked = true
	e.LockedBy = byUserID
	e.LockedAt = now

	return e, nil
}

func (s *GormExperimentStor) UpdateExperiment(e, updates *mcmodel.Experiment) (*mcmodel.Experiment, error) {
	if err := s.db.Model(e).Updates(updates).Error; err != nil {
		return nil, err
	}

	return e, nil
}
