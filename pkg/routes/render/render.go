package render

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/pipeline"
	"github.com/Ramsey-B/fern/pkg/template"
)

// Register registers render routes
func Register(g *echo.Group) {
	g.GET("/buildings/:id/render/:templateId", RenderDocument)
	g.GET("/buildings/:id/variants", PreviewVariants)
	g.GET("/templates", ListTemplates)
}

// RenderDocument renders the personalized document for a building
func RenderDocument(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	templateID := c.Param("templateId")
	viewer := viewerFromQuery(c)

	ctx, p, err := ectoinject.GetContext[*pipeline.Pipeline](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	document, err := p.Render(ctx, id, templateID, viewer)
	if err != nil {
		return httperror.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"building_id": id,
		"template_id": templateID,
		"viewer":      viewer.Normalize(),
		"document":    document,
	})
}

// PreviewVariants returns the personalization overlay a viewer would get,
// without rendering a template
func PreviewVariants(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	viewer := viewerFromQuery(c)

	ctx, p, err := ectoinject.GetContext[*pipeline.Pipeline](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	variants, err := p.Preview(ctx, id, viewer)
	if err != nil {
		return httperror.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"building_id": id,
		"viewer":      viewer.Normalize(),
		"variants":    variants,
	})
}

// ListTemplates lists the loaded template IDs
func ListTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	_, store, err := ectoinject.GetContext[*template.Store](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	return c.JSON(http.StatusOK, map[string]any{"templates": store.IDs()})
}

func viewerFromQuery(c echo.Context) models.ViewerContext {
	return models.ViewerContext{
		LocationType: models.LocationType(c.QueryParam("location_type")),
		Audience:     models.Audience(c.QueryParam("audience")),
	}
}
