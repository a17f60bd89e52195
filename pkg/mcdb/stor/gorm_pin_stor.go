package stor

import (
	"errors"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormPinStor struct {
	db *gorm.DB
}

func NewGormPinStor(db *gorm.DB) *GormPinStor {
	return &GormPinStor{db: db}
}

// PinExperiment is idempotent. Pinning an already pinned experiment returns
// the existing pin.
func (s *GormPinStor) PinExperiment(userID, experimentID int) (*mcmodel.Pin, error) {
	var pin mcmodel.Pin

	err := s.db.Where("user_id = ? and experiment_id = ?", userID, experimentID).First(&pin).Error
	switch {
	case err == nil:
		return &pin, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	pin = mcmodel.Pin{UserID: userID, ExperimentID: experimentID}
	if err := s.db.Create(&pin).Error; err != nil {
		return nil, err
	}

	return &pin, nil
}

func (s *GormPinStor) UnpinExperiment(userID, experimentID int) error {
	return s.db.Where("user_id = ? and experiment_id = ?", userID, experimentID).
		Delete(&mcmodel.Pin{}).Error
}

func (s *GormPinStor) GetPinsForUser(userID int) ([]mcmodel.Pin, error) {
	var pins []mcmodel.Pin
	err := s.db.Where("user_id = ?", userID).Find(&pins).Error
	return pins, err
}

// CleanupPinsForExperiment removes every user's pin on the experiment. Run
// after the experiment row is gone so no pin dangles.
func (s *GormPinStor) CleanupPinsForExperiment(experimentID int) error {
	return s.db.Where("experiment_id = ?", experimentID).Delete(&mcmodel.Pin{}).Error
}
