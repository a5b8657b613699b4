package building

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/catalog"
	"github.com/Ramsey-B/fern/pkg/pipeline"
)

// Register registers building routes
func Register(g *echo.Group) {
	g.POST("/buildings", IngestBuilding)
	g.POST("/buildings/batch", IngestBatch)
	g.GET("/buildings", ListBuildings)
	g.GET("/buildings/:id", GetBuilding)
	g.DELETE("/buildings/:id", DeleteBuilding)
}

// IngestBuilding runs one legacy record through the pipeline
func IngestBuilding(c echo.Context) error {
	ctx := c.Request().Context()

	var legacy map[string]any
	if err := c.Bind(&legacy); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, p, err := ectoinject.GetContext[*pipeline.Pipeline](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	record, err := p.Ingest(ctx, legacy, sourceParam(c))
	if err != nil {
		if rejection, ok := err.(*pipeline.RejectionError); ok {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"status":  "rejected",
				"reasons": rejection.Reasons(),
			})
		}
		return err
	}

	return c.JSON(http.StatusCreated, record)
}

// IngestBatch runs a batch of legacy records through the pipeline
func IngestBatch(c echo.Context) error {
	ctx := c.Request().Context()

	var legacy []map[string]any
	if err := c.Bind(&legacy); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx, p, err := ectoinject.GetContext[*pipeline.Pipeline](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result := p.ProcessBatch(ctx, legacy, sourceParam(c))

	rejections := make(map[int][]string, len(result.Rejections))
	for index, rejection := range result.Rejections {
		rejections[index] = rejection.Reasons()
	}

	return c.JSON(http.StatusOK, map[string]any{
		"accepted":   result.Accepted,
		"rejected":   result.Rejected,
		"failed":     result.Failed,
		"rejections": rejections,
	})
}

// ListBuildings lists all cataloged buildings
func ListBuildings(c echo.Context) error {
	ctx := c.Request().Context()

	_, cat, err := ectoinject.GetContext[*catalog.Catalog](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	return c.JSON(http.StatusOK, cat.List())
}

// GetBuilding gets a cataloged building by ID
func GetBuilding(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	_, cat, err := ectoinject.GetContext[*catalog.Catalog](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	record, ok := cat.Get(id)
	if !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "building not found")
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteBuilding removes a building from the catalog
func DeleteBuilding(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	_, cat, err := ectoinject.GetContext[*catalog.Catalog](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	if !cat.Delete(id) {
		return httperror.NewHTTPError(http.StatusNotFound, "building not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func sourceParam(c echo.Context) string {
	source := c.QueryParam("source")
	if source == "" {
		source = "api"
	}
	return source
}
