package stor

import (
	"fmt"
	"testing"
	"time"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullLogger struct{}

func (l *nullLogger) Printf(_ string, _ ...interface{}) {
}

// newTestStors opens an in-memory sqlite database, migrates it and returns
// the stors wired against it. Each test gets its own named in-memory
// database so tests can't see each other's rows.
func newTestStors(t *testing.T) (*gorm.DB, *Stors) {
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

	err = runTestMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	return db, NewGormStors(db, t.TempDir())
}

// runTestMigrations mirrors mcdb.RunMigrations. It lives here rather than
// importing mcdb to keep stor free of an import back into its parent.
func runTestMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&mcmodel.User{},
		&mcmodel.Team{},
		&mcmodel.Status{},
		&mcmodel.ExperimentTemplate{},
		&mcmodel.Experiment{},
		&mcmodel.Tag{},
		&mcmodel.ExperimentLink{},
		&mcmodel.ExperimentStep{},
		&mcmodel.Pin{},
		&mcmodel.Upload{},
	)
}

func createTestTeam(t *testing.T, stors *Stors, name string) *mcmodel.Team {
	team, err := stors.TeamStor.CreateTeam(&mcmodel.Team{Name: name})
	require.NoErrorf(t, err, "CreateTeam failed: %s", err)
	return team
}

func createTestUser(t *testing.T, stors *Stors, name string, teamID int) *mcmodel.User {
	user, err := stors.UserStor.CreateUser(&mcmodel.User{
		Name:     name,
		Email:    name + "@test.org",
		ApiToken: name + "-token",
		TeamID:   teamID,
	})
	require.NoErrorf(t, err, "CreateUser failed: %s", err)
	return user
}
