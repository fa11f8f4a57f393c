package alumni

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	ExportFilename     = "exported_data.csv"
	ExportXLSXFilename = "exported_data.xlsx"
	exportSheet        = "Alumni"
)

// ExportHeader is the fixed header row of exports. Advice and Social are not exported.
var ExportHeader = []string{
	"First Name",
	"Last Name",
	"Middle Name",
	"Email Address",
	"Graduated Year",
	"Location/Country",
	"Phone Number",
	"Supervisor",
	"Previous Job",
	"Current Job",
}

func exportRow(rec Record) []string {
	return []string{
		rec.FirstName,
		rec.LastName,
		rec.MiddleName,
		rec.EmailAddress,
		rec.GraduatedYear,
		rec.LocationOrCountry,
		rec.PhoneNumber,
		rec.Supervisor,
		rec.PreviousJob,
		rec.CurrentJob,
	}
}

// WriteCSV writes the header followed by one row per record.
// Fields holding a comma, a quote or a line break are quoted.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, rec := range recs {
		if err := cw.Write(exportRow(rec)); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// WriteXLSX writes the same rows as WriteCSV into a single-sheet workbook.
func WriteXLSX(w io.Writer, recs []Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	setRow := func(idx int, row []string) error {
		cell, err := excelize.CoordinatesToCellName(1, idx)
		if err != nil {
			return err
		}
		vals := make([]interface{}, 0, len(row))
		for _, v := range row {
			vals = append(vals, v)
		}
		return f.SetSheetRow(exportSheet, cell, &vals)
	}

	if err := setRow(1, ExportHeader); err != nil {
		return errors.Wrap(err, "writing xlsx header")
	}
	for i, rec := range recs {
		if err := setRow(i+2, exportRow(rec)); err != nil {
			return errors.Wrap(err, "writing xlsx row")
		}
	}

	_, err := f.WriteTo(w)
	return errors.Wrap(err, "writing xlsx")
}
