package webapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/mceln/pkg/mcdb/stor"
	"github.com/materials-commons/mceln/pkg/mceln"
	"github.com/materials-commons/mceln/pkg/mceln/webapi/apimiddleware"
)

type TemplateController struct {
	templateStor stor.TemplateStor
}

func NewTemplateController(templateStor stor.TemplateStor) *TemplateController {
	return &TemplateController{templateStor: templateStor}
}

func (c *TemplateController) ListTemplates(ctx echo.Context) error {
	user := apimiddleware.GetUserFromContext(ctx)
	if user == nil {
		return echo.ErrUnauthorized
	}

	templates, err := c.templateStor.GetTemplatesForTeam(user.TeamID)
	if err != nil {
		return toHTTPError(err)
	}

	readable := templates[:0]
	for _, template := range templates {
		t := template
		if mceln.CanReadTemplate(user, &t) {
			readable = append(readable, t)
		}
	}

	return ctx.JSON(http.StatusOK, readable)
}

func (c *TemplateController) GetTemplate(ctx echo.Context) error {
	user := apimiddleware.GetUserFromContext(ctx)
	if user == nil {
		return echo.ErrUnauthorized
	}

	templateID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid template id")
	}

	template, err := c.templateStor.GetTemplateByID(templateID)
	if err != nil {
		return toHTTPError(err)
	}

	if !mceln.CanReadTemplate(user, template) {
		return echo.ErrForbidden
	}

	return ctx.JSON(http.StatusOK, template)
}
