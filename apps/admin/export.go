package main

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
	"github.com/trezcool/alumni/core/dashboard"
)

type exportOptions struct {
	api    string
	search string
	out    string
	mailTo string
	xlsx   bool
}

func (cli *commandLine) exportCmd() *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export [--api URL] [--search TERM] [--out FILE] [--mail ADDR] [--xlsx]",
		Short: "Export the alumni records fetched from the Record Store API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.export(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.api, "api", "", "The Record Store API base URL. Defaults to the configured registry URL.")
	flags.StringVar(&opts.search, "search", "", "Only export the records whose first or last name contains TERM.")
	flags.StringVar(&opts.out, "out", "", `The output file, "-" for stdout. Defaults to exported_data.csv (or .xlsx).`)
	flags.StringVar(&opts.mailTo, "mail", "", "Also email the export to ADDR.")
	flags.BoolVar(&opts.xlsx, "xlsx", false, "Export as an Excel workbook instead of CSV.")
	return cmd
}

func (cli *commandLine) export(cmd *cobra.Command, opts exportOptions) error {
	var to *mail.Address
	if opts.mailTo != "" {
		addr, err := mail.ParseAddress(opts.mailTo)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "mail", Error: "enter a valid email address"})
		}
		to = addr
	}

	baseURL := opts.api
	if baseURL == "" {
		baseURL = cli.conf.Registry.BaseURL
	}

	app := dashboard.NewAppState(cli.newClient(baseURL), cli.logger)
	defer app.Shutdown()
	if err := app.Start(cmd.Context()); err != nil {
		return err
	}
	table := app.NewTable()
	table.SetSearchTerm(opts.search)

	filename, contentType := table.ExportFilename(), "text/csv"
	write := table.Export
	if opts.xlsx {
		filename, contentType = alumni.ExportXLSXFilename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		write = table.ExportXLSX
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return errors.Wrap(err, "exporting")
	}
	rows := len(table.Rows())

	if err := cli.writeExport(cmd, opts.out, filename, buf.Bytes()); err != nil {
		return err
	}

	if to != nil {
		msg := &core.EmailMessage{
			To:           []mail.Address{*to},
			Subject:      "Alumni export",
			TemplateName: "export",
			TemplateData: map[string]interface{}{"Count": rows, "Search": opts.search},
		}
		if err := msg.Attach(bytes.NewReader(buf.Bytes()), filename, contentType); err != nil {
			return errors.Wrap(err, "attaching export")
		}
		cli.mailSvc.SendMessages(msg)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d records exported\n", rows)
	return nil
}

func (cli *commandLine) writeExport(cmd *cobra.Command, out, filename string, content []byte) error {
	var w io.Writer
	switch out {
	case "-":
		w = cmd.OutOrStdout()
	case "":
		out = filename
		fallthrough
	default:
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "creating export file")
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(content); err != nil {
		return errors.Wrap(err, "writing export")
	}
	return nil
}
