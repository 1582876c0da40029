package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/pkg/env"
)

func newLoginCmd(a *app) *cobra.Command {
	var creds client.Credentials
	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Sign in and store the session",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{routeAnnotation: client.LoginRoute},
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				creds.Password = env.GetOrDefault("SITECTL_PASSWORD", "")
			}
			if creds.Email == "" || creds.Password == "" {
				return fmt.Errorf("--email and --password (or SITECTL_PASSWORD) are required")
			}

			flow := client.NewLoginFlow(a.api, a.session, a.notifier, a)
			if err := flow.Submit(commandContext(cmd), creds); err != nil {
				return err
			}
			if err := a.saveSession(); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", a.session.User().Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "administrator password")
	cmd.Flags().StringVar(&creds.Code, "code", "", "authenticator code when MFA is enabled")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.Authenticated() {
				fmt.Fprintln(a.out, "Not logged in")
				return a.clearSession()
			}
			err := a.session.SignOut(commandContext(cmd), a.api)
			if clearErr := a.clearSession(); clearErr != nil {
				return clearErr
			}
			if err != nil {
				return fmt.Errorf("session cleared locally: %w", err)
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Verify the stored session against the API",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{routeAnnotation: client.DashboardRoute},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Check(commandContext(cmd), a.api); err != nil {
				return fmt.Errorf("%s", a.session.Err())
			}
			u := a.session.User()
			fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}
