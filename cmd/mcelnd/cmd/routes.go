package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/mceln"
	"github.com/materials-commons/mceln/pkg/mceln/webapi"
	"github.com/materials-commons/mceln/pkg/mceln/webapi/apimiddleware"
)

type RouteOpts struct {
	stors   *stor.Stors
	service *mceln.ExperimentService
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api")

	apikeyCache := apimiddleware.NewAPIKeyCache(opts.stors.UserStor)
	g.Use(apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		Skipper:         middleware.DefaultSkipper,
		Keyname:         "apikey",
		GetUserByAPIKey: apikeyCache.GetUserByAPIKey,
	}))

	experimentController := webapi.NewExperimentController(opts.service, opts.stors.ExperimentStor)

	g.POST("/experiments", experimentController.CreateExperiment)
	g.GET("/experiments", experimentController.ListExperiments)
	g.GET("/experiments/:id", experimentController.GetExperiment)
	g.PATCH("/experiments/:id", experimentController.UpdateExperiment)
	g.POST("/experiments/:id/lock", experimentController.LockExperiment)
	g.POST("/experiments/:id/tags", experimentController.AddTag)
	g.POST("/experiments/:id/links", experimentController.AddLink)
	g.POST("/experiments/:id/steps/:stepID/finish", experimentController.FinishStep)
	g.POST("/experiments/:id/duplicate", experimentController.DuplicateExperiment)
	g.POST("/experiments/:id/timestamp", experimentController.TimestampExperiment)
	g.DELETE("/experiments/:id", experimentController.DestroyExperiment)
	g.POST("/experiments/:id/pin", experimentController.PinExperiment)
	g.DELETE("/experiments/:id/pin", experimentController.UnpinExperiment)

	templateController := webapi.NewTemplateController(opts.stors.TemplateStor)

	g.GET("/templates", templateController.ListTemplates)
	g.GET("/templates/:id", templateController.GetTemplate)
}
