package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

const (
	formatParam = "format"
	formatCSV   = "csv"
	formatXLSX  = "xlsx"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type alumniApi struct {
	svc alumni.Service
}

func registerAlumniAPI(g *echo.Group, svc alumni.Service) {
	api := alumniApi{svc: svc}

	ag := g.Group("/alumni")
	ag.GET("/info", api.query)
	ag.POST("/info", api.create)
	ag.GET("/info/:id", api.retrieve)
	ag.GET("/export", api.export)
}

// Handlers

func (api *alumniApi) query(ctx echo.Context) error {
	filter, ordering, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	recs, err := api.svc.Query(ctx.Request().Context(), filter, ordering)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	if recs == nil {
		recs = []alumni.Record{}
	}
	return ctx.JSON(http.StatusOK, dataResponse{Data: recs})
}

func (api *alumniApi) create(ctx echo.Context) error {
	var data alumni.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	rec, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, dataResponse{Data: rec})
}

func (api *alumniApi) retrieve(ctx echo.Context) error {
	rec, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting record")
	}
	return ctx.JSON(http.StatusOK, dataResponse{Data: rec})
}

// export sends the matching records as an `exported_data.csv` (default) or `exported_data.xlsx` attachment.
func (api *alumniApi) export(ctx echo.Context) error {
	format := ctx.QueryParam(formatParam)
	if format == "" {
		format = formatCSV
	}

	var (
		filename, contentType string
		write                 func(w *echo.Response, recs []alumni.Record) error
	)
	switch format {
	case formatCSV:
		filename, contentType = alumni.ExportFilename, "text/csv; charset=utf-8"
		write = func(w *echo.Response, recs []alumni.Record) error { return alumni.WriteCSV(w, recs) }
	case formatXLSX:
		filename, contentType = alumni.ExportXLSXFilename, mimeXLSX
		write = func(w *echo.Response, recs []alumni.Record) error { return alumni.WriteXLSX(w, recs) }
	default:
		return core.NewValidationError(nil, core.FieldError{Field: formatParam, Error: "unsupported export format"})
	}

	filter, _, err := bindQuery(ctx)
	if err != nil {
		return err
	}
	recs, err := api.svc.Query(ctx.Request().Context(), filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, contentType)
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	resp.WriteHeader(http.StatusOK)
	return errors.Wrap(write(resp, recs), "writing export")
}
