package main

import (
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/trezcool/alumni/storage/database"
)

var gooseRunFunc = goose.RunContext // mockable

var errNoDB = errors.New("migrate: no SQL database configured")

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate COMMAND [ARGS...]",
		Short:              "Run a goose migration command (up, down, status, ...)",
		DisableFlagParsing: true,
		PreRunE:            cli.requireDB,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			if cli.db == nil {
				return errNoDB
			}
			return gooseRunFunc(cmd.Context(), args[0], cli.db, database.MigrationsDir, args[1:]...)
		},
	}
}
