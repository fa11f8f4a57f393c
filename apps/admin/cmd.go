package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/dashboard"
	"github.com/trezcool/alumni/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	translator ut.Translator
	db         *sql.DB // nil with the memory engine
	usrSvc     user.Service
	mailSvc    core.EmailService

	// connect sets up db & usrSvc; called before the commands that need them, if set.
	connect   func(ctx context.Context) error
	newClient func(baseURL string) dashboard.Client

	stdout io.Writer
	stderr io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Alumni Registry administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.stdout)
	root.SetErr(cli.stderr)

	root.AddCommand(
		cli.migrateCmd(),
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.exportCmd(),
	)
	return root
}

// run executes the command line args (without program name).
// Validation errors are returned translated, as a *core.ValidationError.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return core.TranslateValidationErrors(vErrs, cli.translator)
	}
	return err
}

func (cli *commandLine) requireDB(cmd *cobra.Command, _ []string) error {
	if cli.connect == nil {
		return nil
	}
	return cli.connect(cmd.Context())
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}
