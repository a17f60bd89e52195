package mceln

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/tsa"
	"gorm.io/gorm"
)

const untitledExperiment = "Untitled"

// titleCopyMarker is appended to the title of a duplicated experiment so
// the copy is distinguishable at a glance.
const titleCopyMarker = "I"

// ExperimentService carries out the experiment lifecycle operations. It owns
// the permission checks and the team policy resolution; the stors only move
// rows around.
type ExperimentService struct {
	stors   *stor.Stors
	tokens  tsa.TokenGetter
	dataDir string
}

func NewExperimentService(stors *stor.Stors, tokens tsa.TokenGetter, dataDir string) *ExperimentService {
	return &ExperimentService{
		stors:   stors,
		tokens:  tokens,
		dataDir: dataDir,
	}
}

type CreateExperimentRequest struct {
	// TemplateID, when not zero, is the template to instantiate. When zero
	// the team's policy decides whether a template is required.
	TemplateID int

	// Tags to attach on top of whatever the template carries.
	Tags []string
}

// CreateExperiment creates a new experiment for user. Content comes from the
// requested template (the user needs read access to it), or from the team's
// common template when the team forces template use, or from the user's and
// team's defaults. Team-forced canread/canwrite always win over whatever the
// template or defaults said.
func (s *ExperimentService) CreateExperiment(user *mcmodel.User, req CreateExperimentRequest) (*mcmodel.Experiment, error) {
	team, err := s.stors.TeamStor.GetTeamByID(user.TeamID)
	if err != nil {
		return nil, err
	}

	templateID := req.TemplateID
	if templateID == 0 && team.ForceExperimentTemplate {
		if team.CommonTemplate == nil || team.CommonTemplate.Body == "" {
			return nil, fmt.Errorf("%w: team %q requires experiments to be created from its common template, and it has none", ErrImproperAction, team.Name)
		}
		templateID = team.CommonTemplateID
	}

	now := time.Now()
	experiment := &mcmodel.Experiment{
		Title:    untitledExperiment,
		Date:     now.Format("2006-01-02"),
		TeamID:   user.TeamID,
		OwnerID:  user.ID,
		CanRead:  defaultScope(user.DefaultCanRead, ScopeTeam),
		CanWrite: defaultScope(user.DefaultCanWrite, ScopeUser),
	}

	var template *mcmodel.ExperimentTemplate
	if templateID != 0 {
		if template, err = s.stors.TemplateStor.GetTemplateByID(templateID); err != nil {
			return nil, err
		}

		if !CanReadTemplate(user, template) {
			return nil, fmt.Errorf("%w: no read access to template %d", ErrIllegalAction, template.ID)
		}

		if template.Title != "" {
			experiment.Title = template.Title
		}
		experiment.Body = template.Body
		experiment.Metadata = template.Metadata
		if template.CanRead != "" {
			experiment.CanRead = template.CanRead
		}
		if template.CanWrite != "" {
			experiment.CanWrite = template.CanWrite
		}
	}

	if team.DoForceCanRead {
		experiment.CanRead = team.ForceCanRead
	}
	if team.DoForceCanWrite {
		experiment.CanWrite = team.ForceCanWrite
	}

	if experiment.ElabID, err = GenerateElabID(now); err != nil {
		return nil, err
	}

	if experiment.StatusID, err = s.resolveDefaultStatus(user.TeamID); err != nil {
		return nil, err
	}

	return s.stors.ExperimentStor.CreateExperiment(experiment, template, req.Tags)
}

// GetExperiment loads an experiment the user can read.
func (s *ExperimentService) GetExperiment(user *mcmodel.User, experimentID int) (*mcmodel.Experiment, error) {
	experiment, err := s.stors.ExperimentStor.GetExperimentByID(experimentID)
	if err != nil {
		return nil, err
	}

	if !CanReadExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no read access to experiment %d", ErrIllegalAction, experimentID)
	}

	return experiment, nil
}

// DuplicateExperiment copies the experiment into a new record owned by user,
// with the title marker appended, a fresh elabid and the team's default
// status. Tags, links and steps come along; lock and timestamp state does
// not.
func (s *ExperimentService) DuplicateExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) (*mcmodel.Experiment, error) {
	if !experiment.IsLoaded() {
		return nil, fmt.Errorf("%w: tried to duplicate without a loaded experiment", ErrIllegalAction)
	}

	if !CanReadExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no read access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	now := time.Now()
	dup := &mcmodel.Experiment{
		Title:    experiment.Title + titleCopyMarker,
		Body:     experiment.Body,
		Date:     now.Format("2006-01-02"),
		Metadata: experiment.Metadata,
		TeamID:   experiment.TeamID,
		OwnerID:  user.ID,
		CanRead:  experiment.CanRead,
		CanWrite: experiment.CanWrite,
	}

	var err error
	if dup.ElabID, err = GenerateElabID(now); err != nil {
		return nil, err
	}

	if dup.StatusID, err = s.resolveDefaultStatus(experiment.TeamID); err != nil {
		return nil, err
	}

	return s.stors.ExperimentStor.DuplicateExperiment(experiment, dup)
}

type UpdateExperimentRequest struct {
	Title string
	Body  string
}

// UpdateExperiment changes the record's title and body. Empty fields in the
// request are left as they are. A locked record can't change anymore.
func (s *ExperimentService) UpdateExperiment(user *mcmodel.User, experiment *mcmodel.Experiment, req UpdateExperimentRequest) (*mcmodel.Experiment, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Locked {
		return nil, fmt.Errorf("%w: experiment %d is locked", ErrImproperAction, experiment.ID)
	}

	updates := &mcmodel.Experiment{Title: req.Title, Body: req.Body}
	return s.stors.ExperimentStor.UpdateExperiment(experiment, updates)
}

// LockExperiment locks the record against further edits without
// timestamping it.
func (s *ExperimentService) LockExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) (*mcmodel.Experiment, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Locked {
		return nil, fmt.Errorf("%w: experiment %d is already locked", ErrImproperAction, experiment.ID)
	}

	return s.stors.ExperimentStor.SetLocked(experiment, user.ID)
}

// AddTag attaches a tag to the experiment.
func (s *ExperimentService) AddTag(user *mcmodel.User, experiment *mcmodel.Experiment, name string) (*mcmodel.Tag, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Locked {
		return nil, fmt.Errorf("%w: experiment %d is locked", ErrImproperAction, experiment.ID)
	}

	return s.stors.TagStor.AddTagToExperiment(experiment.ID, name)
}

// AddLink links the experiment to another one the user can read. Linking
// the same target twice returns the existing link.
func (s *ExperimentService) AddLink(user *mcmodel.User, experiment *mcmodel.Experiment, targetID int) (*mcmodel.ExperimentLink, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Locked {
		return nil, fmt.Errorf("%w: experiment %d is locked", ErrImproperAction, experiment.ID)
	}

	target, err := s.stors.ExperimentStor.GetExperimentByID(targetID)
	if err != nil {
		return nil, err
	}

	if !CanReadExperiment(user, target) {
		return nil, fmt.Errorf("%w: no read access to experiment %d", ErrIllegalAction, targetID)
	}

	links, err := s.stors.LinkStor.GetLinksForExperiment(experiment.ID)
	if err != nil {
		return nil, err
	}

	for i := range links {
		if links[i].TargetID == targetID {
			return &links[i], nil
		}
	}

	return s.stors.LinkStor.AddLinkToExperiment(experiment.ID, targetID)
}

// FinishStep marks one of the experiment's checklist steps finished.
func (s *ExperimentService) FinishStep(user *mcmodel.User, experiment *mcmodel.Experiment, stepID int) (*mcmodel.ExperimentStep, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Locked {
		return nil, fmt.Errorf("%w: experiment %d is locked", ErrImproperAction, experiment.ID)
	}

	steps, err := s.stors.StepStor.GetStepsForExperiment(experiment.ID)
	if err != nil {
		return nil, err
	}

	for i := range steps {
		if steps[i].ID == stepID {
			return s.stors.StepStor.SetFinished(&steps[i], true)
		}
	}

	return nil, gorm.ErrRecordNotFound
}

// DestroyExperiment removes the experiment: first its tags and uploads, then
// the row itself, and finally any pins other users still have on it.
func (s *ExperimentService) DestroyExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) error {
	if !CanWriteExperiment(user, experiment) {
		return fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if err := s.stors.TagStor.DeleteTagsForExperiment(experiment.ID); err != nil {
		return err
	}

	if err := s.stors.UploadStor.DeleteUploadsForExperiment(experiment.ID); err != nil {
		return err
	}

	if err := s.stors.ExperimentStor.DeleteExperiment(experiment); err != nil {
		return err
	}

	return s.stors.PinStor.CleanupPinsForExperiment(experiment.ID)
}

// IsTimestampable reports whether the experiment's status category permits
// timestamping. An experiment with no status has nothing forbidding it.
func (s *ExperimentService) IsTimestampable(experiment *mcmodel.Experiment) (bool, error) {
	if experiment.StatusID == 0 {
		return true, nil
	}

	if experiment.Status != nil {
		return experiment.Status.Timestampable, nil
	}

	status, err := s.stors.StatusStor.GetStatusByID(experiment.StatusID)
	if err != nil {
		return false, err
	}

	return status.Timestampable, nil
}

// TimestampExperiment fetches a token from the timestamp authority for the
// experiment's content digest, stores it under the data dir, and marks the
// record locked and timestamped.
func (s *ExperimentService) TimestampExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) (*mcmodel.Experiment, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	if experiment.Timestamped {
		return nil, fmt.Errorf("%w: experiment %d is already timestamped", ErrImproperAction, experiment.ID)
	}

	timestampable, err := s.IsTimestampable(experiment)
	if err != nil {
		return nil, err
	}
	if !timestampable {
		return nil, fmt.Errorf("%w: experiment %d has a status that doesn't allow timestamping", ErrImproperAction, experiment.ID)
	}

	token, err := s.tokens.GetToken(contentDigest(experiment))
	if err != nil {
		return nil, err
	}

	tokenPath := filepath.Join("timestamps", experiment.ElabID+".asn1")
	fullPath := filepath.Join(s.dataDir, tokenPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(fullPath, token, 0444); err != nil {
		return nil, err
	}

	return s.UpdateTimestamp(user, experiment, time.Now(), tokenPath)
}

// UpdateTimestamp is the state transition on its own: mark the experiment
// locked and timestamped, recording who, when, and where the token lives.
// No retries; if it fails the record is untouched.
func (s *ExperimentService) UpdateTimestamp(user *mcmodel.User, experiment *mcmodel.Experiment, when time.Time, tokenPath string) (*mcmodel.Experiment, error) {
	if !CanWriteExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no write access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	return s.stors.ExperimentStor.SetTimestamped(experiment, user.ID, when, tokenPath)
}

// PinExperiment bookmarks the experiment for the user.
func (s *ExperimentService) PinExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) (*mcmodel.Pin, error) {
	if !CanReadExperiment(user, experiment) {
		return nil, fmt.Errorf("%w: no read access to experiment %d", ErrIllegalAction, experiment.ID)
	}

	return s.stors.PinStor.PinExperiment(user.ID, experiment.ID)
}

func (s *ExperimentService) UnpinExperiment(user *mcmodel.User, experiment *mcmodel.Experiment) error {
	return s.stors.PinStor.UnpinExperiment(user.ID, experiment.ID)
}

// resolveDefaultStatus maps a team with no statuses at all to "no status"
// rather than an error; a fresh team can still create experiments.
func (s *ExperimentService) resolveDefaultStatus(teamID int) (int, error) {
	status, err := s.stors.StatusStor.GetDefaultStatusForTeam(teamID)
	switch {
	case err == nil:
		return status.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func defaultScope(scope, fallback string) string {
	if scope == "" {
		return fallback
	}
	return scope
}

// contentDigest is the digest sent to the timestamp authority. It covers the
// fields a reader would use to verify the record matches the token.
func contentDigest(e *mcmodel.Experiment) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n%s\n%s\n%s\n", e.ElabID, e.Date, e.Title, e.Body)
	return fmt.Sprintf("%x", h.Sum(nil))
}
