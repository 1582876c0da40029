package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/env"
)

// routeAnnotation names the admin view a command stands for; the guard checks it.
const routeAnnotation = "route"

// errLoginRequired is returned when the guard redirects to the login route
var errLoginRequired = errors.New("not logged in, run `sitectl login` first")

// app is the state shared by every command of one invocation
type app struct {
	out, errOut io.Writer
	baseURL     string
	sessionFile string

	api        *client.API
	session    *client.Session
	notifier   client.Notifier
	redirected string
}

func defaultSessionFile() string {
	if path := env.GetOrDefault("SITECTL_SESSION", ""); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sitectl-session.json"
	}
	return filepath.Join(dir, "sitectl", "session.json")
}

// Navigate records where the guard or the login flow sent the user.
func (a *app) Navigate(path string) {
	debug.Debug("Navigating to %s", path)
	a.redirected = path
}

func (a *app) init(cmd *cobra.Command) error {
	a.api = client.NewAPI(a.baseURL)
	a.session = client.NewSession()
	a.notifier = client.NotifierFunc(func(t client.Toast) {
		if t.Variant == client.VariantDestructive {
			fmt.Fprintf(a.errOut, "%s: %s\n", t.Title, t.Description)
			return
		}
		fmt.Fprintf(a.errOut, "%s. %s\n", t.Title, t.Description)
	})

	data, err := os.ReadFile(a.sessionFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.session.Logout()
	case err != nil:
		return fmt.Errorf("failed to read session file: %w", err)
	default:
		if err := client.RestoreSession(data, a.session, a.api); err != nil {
			debug.Warning("Ignoring unreadable session file %s: %v", a.sessionFile, err)
			a.session.Logout()
		}
	}

	route := cmd.Annotations[routeAnnotation]
	if route == "" {
		return nil
	}
	if client.NewGuard(a.session, a).Check(route) {
		return errLoginRequired
	}
	return nil
}

func (a *app) saveSession() error {
	data, err := client.MarshalSession(a.session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.sessionFile), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	return os.WriteFile(a.sessionFile, data, 0o600)
}

func (a *app) clearSession() error {
	if err := os.Remove(a.sessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (a *app) opts() []client.StoreOption {
	return []client.StoreOption{client.WithNotifier(a.notifier)}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Manage site content through the admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.baseURL, "api", client.BaseURLFromEnv(), "API base URL")
	root.PersistentFlags().StringVar(&a.sessionFile, "session", defaultSessionFile(), "file holding the login session")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProjectsCmd(a),
		newCaseStudiesCmd(a),
		newEnquiriesCmd(a),
		newAboutCmd(a),
		newContactCmd(a),
		newDashboardCmd(a),
	)
	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
