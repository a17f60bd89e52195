package mceln

import (
	"fmt"
	"testing"
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/tsa"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullLogger struct{}

func (l *nullLogger) Printf(_ string, _ ...interface{}) {
}

// elnTestCase wires an ExperimentService against an in-memory sqlite
// database seeded with one team, one timestampable default status and one
// regular user.
type elnTestCase struct {
	*testing.T

	db      *gorm.DB
	stors   *stor.Stors
	service *ExperimentService
	tsa     *tsa.MockClient
	dataDir string

	team   *mcmodel.Team
	status *mcmodel.Status
	user   *mcmodel.User
}

func newElnTestCase(t *testing.T) *elnTestCase {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormLogger := logger.New(&nullLogger{},
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)
	sqlitedb.SetMaxOpenConns(1)

	err = mcdb.RunMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	dataDir := t.TempDir()
	stors := stor.NewGormStors(db, dataDir)
	mockTSA := tsa.NewMockClient()

	tc := &elnTestCase{
		T:       t,
		db:      db,
		stors:   stors,
		service: NewExperimentService(stors, mockTSA, dataDir),
		tsa:     mockTSA,
		dataDir: dataDir,
	}

	tc.team, err = stors.TeamStor.CreateTeam(&mcmodel.Team{Name: "Test Lab"})
	require.NoError(t, err)

	tc.status, err = stors.StatusStor.CreateStatus(&mcmodel.Status{
		TeamID:        tc.team.ID,
		Name:          "Running",
		IsDefault:     true,
		Timestampable: true,
	})
	require.NoError(t, err)

	tc.user = tc.createUser("researcher")

	return tc
}

func (tc *elnTestCase) createUser(name string) *mcmodel.User {
	user, err := tc.stors.UserStor.CreateUser(&mcmodel.User{
		Name:     name,
		Email:    name + "@test.org",
		ApiToken: name + "-token",
		TeamID:   tc.team.ID,
	})
	require.NoError(tc.T, err)
	return user
}

// createTemplate makes a template owned by owner with the given scopes and
// one tag, one link and two steps hanging off of it.
func (tc *elnTestCase) createTemplate(owner *mcmodel.User, canread, canwrite string) *mcmodel.ExperimentTemplate {
	template, err := tc.stors.TemplateStor.CreateTemplate(&mcmodel.ExperimentTemplate{
		Title:    "Synthesis Protocol",
		Body:     "<p>standard synthesis steps</p>",
		Metadata: `{"extra_fields":{"batch":{"type":"text"}}}`,
		CanRead:  canread,
		CanWrite: canwrite,
		TeamID:   tc.team.ID,
		OwnerID:  owner.ID,
	})
	require.NoError(tc.T, err)

	target, err := tc.stors.ExperimentStor.CreateExperiment(&mcmodel.Experiment{
		Title:   "Reference Run",
		TeamID:  tc.team.ID,
		OwnerID: owner.ID,
		CanRead: ScopeTeam,
	}, nil, nil)
	require.NoError(tc.T, err)

	require.NoError(tc.T, tc.db.Create(&mcmodel.Tag{TemplateID: template.ID, Name: "synthesis"}).Error)
	require.NoError(tc.T, tc.db.Create(&mcmodel.ExperimentLink{TemplateID: template.ID, TargetID: target.ID}).Error)
	require.NoError(tc.T, tc.db.Create(&mcmodel.ExperimentStep{TemplateID: template.ID, Body: "weigh reagents", Ordering: 1}).Error)
	require.NoError(tc.T, tc.db.Create(&mcmodel.ExperimentStep{TemplateID: template.ID, Body: "heat to 80C", Ordering: 2}).Error)

	return template
}
