// Package cli implements the habitual command line on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MihkelHunter/habitual/internal/config"
	"github.com/MihkelHunter/habitual/internal/exitcode"
	"github.com/MihkelHunter/habitual/internal/habit"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

// Opener opens the task store for a loaded config.
// Tests inject one backed by a fake mirror.
type Opener func(cfg *config.Config, logger log.FieldLogger) (*habit.Store, error)

// Option configures the command tree.
type Option func(*app)

// WithClock overrides the clock (for testing).
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.clock = now }
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	opener Opener
	clock  func() time.Time

	configPath string
	date       string
	debug      bool
	quiet      bool

	cfg  *config.Config
	log  *log.Logger
	sess *habit.Session
}

// configError marks failures loading configuration.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// storageError marks failures opening the store.
type storageError struct{ err error }

func (e storageError) Error() string { return e.err.Error() }
func (e storageError) Unwrap() error { return e.err }

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer, opener Opener, opts ...Option) int {
	a := &app{opener: opener}
	for _, opt := range opts {
		opt(a)
	}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); err == nil {
		err = cerr
	}
	if err == nil {
		return exitcode.Success
	}
	fmt.Fprintf(errOut, "error: %s\n", err)
	return codeFor(err)
}

func codeFor(err error) int {
	var cfgErr configError
	var stErr storageError
	switch {
	case errors.As(err, &cfgErr):
		return exitcode.ConfigError
	case errors.As(err, &stErr), errors.Is(err, habit.ErrPersist):
		return exitcode.StorageError
	default:
		return exitcode.UserError
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "habitual",
		Short:         "Habitual - daily habit tracker with streaks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/habitual/config.yaml)")
	root.PersistentFlags().StringVarP(&a.date, "date", "d", "", "Day to act on, yyyy-MM-dd (default today)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Print debug logs to stderr")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress informational output")

	root.AddCommand(addCmd(a))
	root.AddCommand(toggleCmd(a))
	root.AddCommand(editCmd(a))
	root.AddCommand(rmCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(streakCmd(a))
	root.AddCommand(calendarCmd(a))
	root.AddCommand(exportCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return configError{err}
	}
	if a.debug {
		cfg.Debug = true
	}
	if a.quiet {
		cfg.Quiet = true
	}
	a.cfg = cfg

	a.log = cfg.NewLogger()
	a.log.SetOutput(cmd.ErrOrStderr())

	if a.opener == nil {
		a.opener = openStore
	}
	st, err := a.opener(cfg, a.log)
	if err != nil {
		return storageError{err}
	}
	a.sess = habit.NewSession(st)
	if a.clock != nil {
		a.sess.SetClock(a.clock)
	}

	if a.date != "" {
		d, err := habit.ParseKey(a.date)
		if err != nil {
			return err
		}
		if err := a.sess.Select(d); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) teardown() error {
	if a.sess == nil {
		return nil
	}
	st := a.sess.Store()
	a.sess = nil
	if err := st.Close(); err != nil {
		return storageError{err}
	}
	return nil
}

func (a *app) info(cmd *cobra.Command, format string, args ...any) {
	if a.cfg.Quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
