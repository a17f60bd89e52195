package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/mceln/pkg/mcdb"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/mceln"
	"github.com/materials-commons/mceln/pkg/tsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullLogger struct{}

func (l *nullLogger) Printf(_ string, _ ...interface{}) {
}

func setupController(t *testing.T) (*ExperimentController, *stor.Stors, *mcmodel.User) {
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
	require.NoError(t, err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)
	sqlitedb.SetMaxOpenConns(1)

	require.NoError(t, mcdb.RunMigrations(db))

	stors := stor.NewGormStors(db, t.TempDir())

	team, err := stors.TeamStor.CreateTeam(&mcmodel.Team{Name: "Controller Lab"})
	require.NoError(t, err)

	_, err = stors.StatusStor.CreateStatus(&mcmodel.Status{
		TeamID:        team.ID,
		Name:          "Running",
		IsDefault:     true,
		Timestampable: true,
	})
	require.NoError(t, err)

	user, err := stors.UserStor.CreateUser(&mcmodel.User{
		Name:     "researcher",
		Email:    "researcher@test.org",
		ApiToken: "researcher-token",
		TeamID:   team.ID,
	})
	require.NoError(t, err)

	service := mceln.NewExperimentService(stors, tsa.NewMockClient(), t.TempDir())
	return NewExperimentController(service, stors.ExperimentStor), stors, user
}

func setupEchoContext(t *testing.T, user *mcmodel.User, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("User", *user)

	return c, rec
}

func TestCreateAndGetExperiment(t *testing.T) {
	controller, _, user := setupController(t)

	ctx, rec := setupEchoContext(t, user, http.MethodPost, "/experiments", map[string]any{
		"tags": []string{"from-api"},
	})

	require.NoError(t, controller.CreateExperiment(ctx))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Untitled", created.Title)
	assert.NotEmpty(t, created.ElabID)

	ctx, rec = setupEchoContext(t, user, http.MethodGet, "/experiments/1", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	require.NoError(t, controller.GetExperiment(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var loaded mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "from-api", loaded.Tags[0].Name)
}

func TestDuplicateExperimentEndpoint(t *testing.T) {
	controller, _, user := setupController(t)

	ctx, rec := setupEchoContext(t, user, http.MethodPost, "/experiments", nil)
	require.NoError(t, controller.CreateExperiment(ctx))

	var created mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	ctx, rec = setupEchoContext(t, user, http.MethodPost, "/experiments/1/duplicate", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	require.NoError(t, controller.DuplicateExperiment(ctx))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var dup mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.Equal(t, created.Title+"I", dup.Title)
	assert.NotEqual(t, created.ElabID, dup.ElabID)
}

func TestDestroyExperimentEndpointPermissionMapping(t *testing.T) {
	controller, stors, user := setupController(t)

	other, err := stors.UserStor.CreateUser(&mcmodel.User{
		Name:     "colleague",
		Email:    "colleague@test.org",
		ApiToken: "colleague-token",
		TeamID:   user.TeamID,
	})
	require.NoError(t, err)

	ctx, rec := setupEchoContext(t, other, http.MethodPost, "/experiments", nil)
	require.NoError(t, controller.CreateExperiment(ctx))

	var created mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// A teammate without write access gets a 403.
	ctx, _ = setupEchoContext(t, user, http.MethodDelete, "/experiments/1", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	err = controller.DestroyExperiment(ctx)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	// The owner can destroy it.
	ctx, rec = setupEchoContext(t, other, http.MethodDelete, "/experiments/1", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	require.NoError(t, controller.DestroyExperiment(ctx))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListExperimentsMineFilter(t *testing.T) {
	controller, stors, user := setupController(t)

	other, err := stors.UserStor.CreateUser(&mcmodel.User{
		Name:     "colleague",
		Email:    "colleague@test.org",
		ApiToken: "colleague-token",
		TeamID:   user.TeamID,
	})
	require.NoError(t, err)

	ctx, _ := setupEchoContext(t, user, http.MethodPost, "/experiments", nil)
	require.NoError(t, controller.CreateExperiment(ctx))

	ctx, _ = setupEchoContext(t, other, http.MethodPost, "/experiments", nil)
	require.NoError(t, controller.CreateExperiment(ctx))

	ctx, rec := setupEchoContext(t, user, http.MethodGet, "/experiments", nil)
	require.NoError(t, controller.ListExperiments(ctx))

	var all []mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	ctx, rec = setupEchoContext(t, user, http.MethodGet, "/experiments?mine=1", nil)
	require.NoError(t, controller.ListExperiments(ctx))

	var mine []mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, user.ID, mine[0].OwnerID)
}

func TestUpdateAndLockExperimentEndpoints(t *testing.T) {
	controller, _, user := setupController(t)

	ctx, rec := setupEchoContext(t, user, http.MethodPost, "/experiments", nil)
	require.NoError(t, controller.CreateExperiment(ctx))

	var created mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	ctx, rec = setupEchoContext(t, user, http.MethodPatch, "/experiments/1", map[string]any{
		"title": "Renamed",
	})
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	require.NoError(t, controller.UpdateExperiment(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)

	ctx, rec = setupEchoContext(t, user, http.MethodPost, "/experiments/1/lock", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	require.NoError(t, controller.LockExperiment(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var locked mcmodel.Experiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locked))
	assert.True(t, locked.Locked)

	// Editing the locked record maps to a 400.
	ctx, _ = setupEchoContext(t, user, http.MethodPatch, "/experiments/1", map[string]any{
		"title": "Too Late",
	})
	ctx.SetParamNames("id")
	ctx.SetParamValues(fmt.Sprintf("%d", created.ID))

	err := controller.UpdateExperiment(ctx)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetExperimentNotFound(t *testing.T) {
	controller, _, user := setupController(t)

	ctx, _ := setupEchoContext(t, user, http.MethodGet, "/experiments/999", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues("999")

	err := controller.GetExperiment(ctx)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
