package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/alumni/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:     "adduser --email EMAIL --name NAME",
		Short:   "Create a user; the password is prompted next",
		PreRunE: cli.requireDB,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || name == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword(cmd, "Enter password:")
			if err != nil {
				return err
			}
			confirm, err := cli.promptPassword(cmd, "Confirm password:")
			if err != nil {
				return err
			}

			usr, err := cli.usrSvc.Create(cmd.Context(), user.NewUser{
				Name:            name,
				Email:           email,
				Password:        pwd,
				PasswordConfirm: confirm,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", usr.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "The user's email.")
	cmd.Flags().StringVar(&name, "name", "", "The user's name.")
	return cmd
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:     "resetpassword --email EMAIL",
		Short:   "Reset a user's password; the password is prompted next",
		PreRunE: cli.requireDB,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword(cmd, "Enter password:")
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			if _, err := cli.usrSvc.SetPassword(cmd.Context(), email, pwd); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "The user's email.")
	return cmd
}
