package main

import (
	"errors"
	"fmt"
	"os"

	"go-recordshop/internal/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultAPI = "http://localhost:3000"

// app carries what every command needs after flags are parsed.
type app struct {
	apiURL      string
	sessionPath string
	verbose     bool

	log      *zap.Logger
	sessions *client.SessionStore
	guard    *client.Guard
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "recordctl",
		Short:         "Manage the record shop inventory from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.SetOut(os.Stdout)

	root.PersistentFlags().StringVar(&a.apiURL, "api", defaultAPI, "API base URL")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", "", "session file (default <config dir>/recordctl/session.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.formatsCmd(),
		a.genresCmd(),
		a.listCmd(),
		a.showCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.exportCmd(),
		a.watchCmd(),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	return root
}

func (a *app) setup() error {
	if a.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		a.log = log
	} else {
		a.log = zap.NewNop()
	}

	if a.sessionPath == "" {
		path, err := client.DefaultSessionPath()
		if err != nil {
			return fmt.Errorf("session path: %w", err)
		}
		a.sessionPath = path
	}
	a.sessions = client.NewSessionStore(a.sessionPath)
	a.guard = client.NewGuard(a.sessions)
	return nil
}

// client returns an API client carrying the session token, if any.
func (a *app) client(sess *client.Session) *client.Client {
	var opts []client.Option
	if sess != nil && sess.Token != "" {
		opts = append(opts, client.WithToken(sess.Token))
	}
	return client.New(a.apiURL, opts...)
}

// readFailure describes a failed read. Connectivity problems get the retry hint.
func (a *app) readFailure(err error) error {
	return errors.New(client.Describe(err, a.apiURL))
}

// writeFailure describes a failed create, update or delete.
func (a *app) writeFailure(err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		return errors.New("Request failed")
	}
	return errors.New(client.Describe(err, a.apiURL))
}
