package mceln

import (
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
)

// Permission scopes stored in an experiment's or template's canread/canwrite
// columns, from widest to narrowest.
const (
	ScopePublic       = "public"
	ScopeOrganization = "organization"
	ScopeTeam         = "team"
	ScopeUser         = "user"
	ScopeUserOnly     = "useronly"
)

// scopeAllows is the shared visibility ladder. The owner always passes, as
// does an admin of the owning team. An unknown scope string denies.
func scopeAllows(user *mcmodel.User, scope string, ownerID, teamID int) bool {
	if user.ID == ownerID {
		return true
	}

	if user.Admin && user.TeamID == teamID {
		return true
	}

	switch scope {
	case ScopePublic, ScopeOrganization:
		return true
	case ScopeTeam:
		return user.TeamID == teamID
	case ScopeUser, ScopeUserOnly:
		return false
	default:
		return false
	}
}

func CanReadExperiment(user *mcmodel.User, e *mcmodel.Experiment) bool {
	return scopeAllows(user, e.CanRead, e.OwnerID, e.TeamID)
}

func CanWriteExperiment(user *mcmodel.User, e *mcmodel.Experiment) bool {
	return scopeAllows(user, e.CanWrite, e.OwnerID, e.TeamID)
}

func CanReadTemplate(user *mcmodel.User, t *mcmodel.ExperimentTemplate) bool {
	return scopeAllows(user, t.CanRead, t.OwnerID, t.TeamID)
}
