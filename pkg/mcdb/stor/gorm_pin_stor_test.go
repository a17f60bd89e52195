package stor

import (
	"testing"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinExperimentIsIdempotent(t *testing.T) {
	_, stors := newTestStors(t)
	team := createTestTeam(t, stors, "pin-team")
	user := createTestUser(t, stors, "pinner", team.ID)

	experiment, err := stors.ExperimentStor.CreateExperiment(&mcmodel.Experiment{
		Title:   "Pinned",
		TeamID:  team.ID,
		OwnerID: user.ID,
	}, nil, nil)
	require.NoError(t, err)

	first, err := stors.PinStor.PinExperiment(user.ID, experiment.ID)
	require.NoError(t, err)

	second, err := stors.PinStor.PinExperiment(user.ID, experiment.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	pins, err := stors.PinStor.GetPinsForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, pins, 1)
}

func TestCleanupPinsForExperiment(t *testing.T) {
	_, stors := newTestStors(t)
	team := createTestTeam(t, stors, "cleanup-team")
	user1 := createTestUser(t, stors, "pinner1", team.ID)
	user2 := createTestUser(t, stors, "pinner2", team.ID)

	experiment, err := stors.ExperimentStor.CreateExperiment(&mcmodel.Experiment{
		Title:   "Shared Pin",
		TeamID:  team.ID,
		OwnerID: user1.ID,
	}, nil, nil)
	require.NoError(t, err)

	_, err = stors.PinStor.PinExperiment(user1.ID, experiment.ID)
	require.NoError(t, err)
	_, err = stors.PinStor.PinExperiment(user2.ID, experiment.ID)
	require.NoError(t, err)

	require.NoError(t, stors.PinStor.CleanupPinsForExperiment(experiment.ID))

	for _, userID := range []int{user1.ID, user2.ID} {
		pins, err := stors.PinStor.GetPinsForUser(userID)
		require.NoError(t, err)
		assert.Empty(t, pins)
	}
}
