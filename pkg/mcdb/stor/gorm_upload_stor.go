package stor

import (
	"os"

	"github.com/apex/log"
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormUploadStor struct {
	db      *gorm.DB
	dataDir string
}

func NewGormUploadStor(db *gorm.DB, dataDir string) *GormUploadStor {
	return &GormUploadStor{db: db, dataDir: dataDir}
}

func (s *GormUploadStor) CreateUpload(upload *mcmodel.Upload) (*mcmodel.Upload, error) {
	var err error

	if upload.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(upload.ToUnderlyingDirPath(s.dataDir), 0755); err != nil {
		return nil, err
	}

	if err := s.db.Create(upload).Error; err != nil {
		return nil, err
	}

	return upload, nil
}

func (s *GormUploadStor) GetUploadsForExperiment(experimentID int) ([]mcmodel.Upload, error) {
	var uploads []mcmodel.Upload
	err := s.db.Where("experiment_id = ?", experimentID).Find(&uploads).Error
	return uploads, err
}

// DeleteUploadsForExperiment removes the upload rows and then the underlying
// files. A file that fails to unlink doesn't stop the cleanup; the row is
// already gone and the orphan can be swept up out of band.
func (s *GormUploadStor) DeleteUploadsForExperiment(experimentID int) error {
	uploads, err := s.GetUploadsForExperiment(experimentID)
	if err != nil {
		return err
	}

	err = s.db.Where("experiment_id = ?", experimentID).Delete(&mcmodel.Upload{}).Error
	if err != nil {
		return err
	}

	for _, upload := range uploads {
		path := upload.ToUnderlyingFilePath(s.dataDir)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Errorf("Failed removing upload file %s: %s", path, err)
		}
	}

	return nil
}
