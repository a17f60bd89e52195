package stor

import (
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type ExperimentStor interface {
	CreateExperiment(e *mcmodel.Experiment, fromTemplate *mcmodel.ExperimentTemplate, extraTags []string) (*mcmodel.Experiment, error)
	GetExperimentByID(experimentID int) (*mcmodel.Experiment, error)
	GetExperimentsForTeam(teamID int) ([]mcmodel.Experiment, error)
	GetExperimentsForOwner(ownerID int) ([]mcmodel.Experiment, error)
	DuplicateExperiment(src, dup *mcmodel.Experiment) (*mcmodel.Experiment, error)
	DeleteExperiment(e *mcmodel.Experiment) error
	SetTimestamped(e *mcmodel.Experiment, byUserID int, at time.Time, token string) (*mcmodel.Experiment, error)
	SetLocked(e *mcmodel.Experiment, byUserID int) (*mcmodel.Experiment, error)
	UpdateExperiment(e, updates *mcmodel.Experiment) (*mcmodel.Experiment, error)
}

type TemplateStor interface {
	GetTemplateByID(templateID int) (*mcmodel.ExperimentTemplate, error)
	GetTemplatesForTeam(teamID int) ([]mcmodel.ExperimentTemplate, error)
	CreateTemplate(t *mcmodel.ExperimentTemplate) (*mcmodel.ExperimentTemplate, error)
}

type StatusStor interface {
	GetStatusByID(statusID int) (*mcmodel.Status, error)
	GetDefaultStatusForTeam(teamID int) (*mcmodel.Status, error)
	CreateStatus(s *mcmodel.Status) (*mcmodel.Status, error)
}

type TagStor interface {
	AddTagToExperiment(experimentID int, name string) (*mcmodel.Tag, error)
	GetTagsForExperiment(experimentID int) ([]mcmodel.Tag, error)
	DeleteTagsForExperiment(experimentID int) error
}

type LinkStor interface {
	AddLinkToExperiment(experimentID, targetID int) (*mcmodel.ExperimentLink, error)
	GetLinksForExperiment(experimentID int) ([]mcmodel.ExperimentLink, error)
}

type StepStor interface {
	GetStepsForExperiment(experimentID int) ([]mcmodel.ExperimentStep, error)
	SetFinished(step *mcmodel.ExperimentStep, finished bool) (*mcmodel.ExperimentStep, error)
}

type PinStor interface {
	PinExperiment(userID, experimentID int) (*mcmodel.Pin, error)
	UnpinExperiment(userID, experimentID int) error
	GetPinsForUser(userID int) ([]mcmodel.Pin, error)
	CleanupPinsForExperiment(experimentID int) error
}

type UploadStor interface {
	CreateUpload(upload *mcmodel.Upload) (*mcmodel.Upload, error)
	GetUploadsForExperiment(experimentID int) ([]mcmodel.Upload, error)
	DeleteUploadsForExperiment(experimentID int) error
}

type TeamStor interface {
	GetTeamByID(teamID int) (*mcmodel.Team, error)
	CreateTeam(team *mcmodel.Team) (*mcmodel.Team, error)
	UpdateTeam(team, updates *mcmodel.Team) (*mcmodel.Team, error)
}

type UserStor interface {
	CreateUser(user *mcmodel.User) (*mcmodel.User, error)
	GetUserByAPIToken(apitoken string) (*mcmodel.User, error)
}

type Stors struct {
	ExperimentStor ExperimentStor
	TemplateStor   TemplateStor
	StatusStor     StatusStor
	TagStor        TagStor
	LinkStor       LinkStor
	StepStor       StepStor
	PinStor        PinStor
	UploadStor     UploadStor
	TeamStor       TeamStor
	UserStor       UserStor
}

func NewGormStors(db *gorm.DB, dataDir string) *Stors {
	return &Stors{
		ExperimentStor: NewGormExperimentStor(db),
		TemplateStor:   NewGormTemplateStor(db),
		StatusStor:     NewGormStatusStor(db),
		TagStor:        NewGormTagStor(db),
		LinkStor:       NewGormLinkStor(db),
		StepStor:       NewGormStepStor(db),
		PinStor:        NewGormPinStor(db),
		UploadStor:     NewGormUploadStor(db, dataDir),
		TeamStor:       NewGormTeamStor(db),
		UserStor:       NewGormUserStor(db),
	}
}
