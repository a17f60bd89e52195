package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/mceln"
	"github.com/materials-commons/mceln/pkg/mceln/webapi/apimiddleware"
	"gorm.io/gorm"
)

type ExperimentController struct {
	service        *mceln.ExperimentService
	experimentStor stor.ExperimentStor
}

func NewExperimentController(service *mceln.ExperimentService, experimentStor stor.ExperimentStor) *ExperimentController {
	return &ExperimentController{service: service, experimentStor: experimentStor}
}

func (c *ExperimentController) CreateExperiment(ctx echo.Context) error {
	var req struct {
		TemplateID int      `json:"template_id"`
		Tags       []string `json:"tags"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user := apimiddleware.GetUserFromContext(ctx)
	if user == nil {
		return echo.ErrUnauthorized
	}

	experiment, err := c.service.CreateExperiment(user, mceln.CreateExperimentRequest{
		TemplateID: req.TemplateID,
		Tags:       req.Tags,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, experiment)
}

func (c *ExperimentController) GetExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	if !mceln.CanReadExperiment(user, experiment) {
		return echo.ErrForbidden
	}

	return ctx.JSON(http.StatusOK, experiment)
}

func (c *ExperimentController) ListExperiments(ctx echo.Context) error {
	user := apimiddleware.GetUserFromContext(ctx)
	if user == nil {
		return echo.ErrUnauthorized
	}

	var experiments []mcmodel.Experiment
	var err error

	// ?mine=1 narrows the listing to the caller's own experiments.
	if ctx.QueryParam("mine") == "1" {
		experiments, err = c.experimentStor.GetExperimentsForOwner(user.ID)
	} else {
		experiments, err = c.experimentStor.GetExperimentsForTeam(user.TeamID)
	}
	if err != nil {
		return toHTTPError(err)
	}

	readable := make([]mcmodel.Experiment, 0, len(experiments))
	for _, experiment := range experiments {
		e := experiment
		if mceln.CanReadExperiment(user, &e) {
			readable = append(readable, e)
		}
	}

	return ctx.JSON(http.StatusOK, readable)
}

func (c *ExperimentController) DuplicateExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	var dup *mcmodel.Experiment
	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		dup, err = c.service.DuplicateExperiment(user, experiment)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, dup)
}

func (c *ExperimentController) UpdateExperiment(ctx echo.Context) error {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		experiment, err = c.service.UpdateExperiment(user, experiment, mceln.UpdateExperimentRequest{
			Title: req.Title,
			Body:  req.Body,
		})
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, experiment)
}

func (c *ExperimentController) LockExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		experiment, err = c.service.LockExperiment(user, experiment)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, experiment)
}

func (c *ExperimentController) AddTag(ctx echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	var tag *mcmodel.Tag
	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		tag, err = c.service.AddTag(user, experiment, req.Name)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, tag)
}

func (c *ExperimentController) AddLink(ctx echo.Context) error {
	var req struct {
		TargetID int `json:"target_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	var link *mcmodel.ExperimentLink
	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		link, err = c.service.AddLink(user, experiment, req.TargetID)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, link)
}

func (c *ExperimentController) FinishStep(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	stepID, err := strconv.Atoi(ctx.Param("stepID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid step id")
	}

	var step *mcmodel.ExperimentStep
	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		step, err = c.service.FinishStep(user, experiment, stepID)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, step)
}

func (c *ExperimentController) TimestampExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		experiment, err = c.service.TimestampExperiment(user, experiment)
		return err
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, experiment)
}

func (c *ExperimentController) DestroyExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	err = mceln.WithExperimentMutex(experiment.ID, func() error {
		return c.service.DestroyExperiment(user, experiment)
	})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *ExperimentController) PinExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	pin, err := c.service.PinExperiment(user, experiment)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, pin)
}

func (c *ExperimentController) UnpinExperiment(ctx echo.Context) error {
	user, experiment, err := c.loadForUser(ctx)
	if err != nil {
		return err
	}

	if err := c.service.UnpinExperiment(user, experiment); err != nil {
		return toHTTPError(err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *ExperimentController) loadForUser(ctx echo.Context) (*mcmodel.User, *mcmodel.Experiment, error) {
	user := apimiddleware.GetUserFromContext(ctx)
	if user == nil {
		return nil, nil, echo.ErrUnauthorized
	}

	experimentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid experiment id")
	}

	experiment, err := c.experimentStor.GetExperimentByID(experimentID)
	if err != nil {
		return nil, nil, toHTTPError(err)
	}

	return user, experiment, nil
}

// toHTTPError maps the service's error kinds onto HTTP statuses. Anything
// unrecognized bubbles up as a 500 through echo's default handling.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, mceln.ErrIllegalAction):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, mceln.ErrImproperAction):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.ErrNotFound
	default:
		return err
	}
}
