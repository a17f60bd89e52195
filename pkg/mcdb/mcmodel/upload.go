package mcmodel

import (
	"path/filepath"
	"time"
)

// Upload is a file attached to an experiment. The bytes live under the data
// directory at a path derived from the upload's UUID.
type Upload struct {
	ID           int       `json:"id"`
	UUID         string    `json:"uuid"`
	ExperimentID int       `json:"experiment_id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Checksum     string    `json:"checksum"`
	OwnerID      int       `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u Upload) ToUnderlyingDirPath(dataDir string) string {
	return filepath.Join(dataDir, "uploads", u.UUID[0:2], u.UUID[2:4])
}

func (u Upload) ToUnderlyingFilePath(dataDir string) string {
	return filepath.Join(u.ToUnderlyingDirPath(dataDir), u.UUID)
}
