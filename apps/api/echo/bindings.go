package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

var orderingParam = "ordering"

type (
	dataResponse struct {
		Data interface{} `json:"data"`
	}

	successResponse struct {
		Success string `json:"success"`
	}
)

// Ordering binds the `ordering` query param, eg. `?ordering=lastName,-graduatedYear`.
type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// bindQuery binds the search filter and the orderings of the records list endpoints.
func bindQuery(ctx echo.Context) (*alumni.QueryFilter, []core.DBOrdering, error) {
	var filter alumni.QueryFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return nil, nil, errors.Wrap(err, "binding to QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)
	return &filter, core.CleanOrderings(ord.Orderings, alumni.OrderingFields), nil
}
