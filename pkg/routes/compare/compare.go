package compare

import (
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/catalog"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/scoring"
)

// Register registers comparison routes
func Register(g *echo.Group) {
	g.GET("/compare", CompareBuildings)
}

// CompareBuildings ranks buildings by a score priority. With no ids query
// param the whole catalog is ranked.
func CompareBuildings(c echo.Context) error {
	ctx := c.Request().Context()

	priority := models.Priority(c.QueryParam("priority"))
	if priority == "" {
		priority = models.PriorityOverall
	}
	if !models.IsValidPriority(string(priority)) {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown priority %q", priority)
	}

	_, cat, err := ectoinject.GetContext[*catalog.Catalog](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	var records []models.BuildingRecord
	if ids := c.QueryParam("ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			record, ok := cat.Get(id)
			if !ok {
				return httperror.NewHTTPErrorf(http.StatusNotFound, "building %q not found", id)
			}
			records = append(records, record)
		}
	} else {
		records = cat.List()
	}

	rankings, err := scoring.Compare(records, priority)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"priority": priority,
		"rankings": rankings,
	})
}
