package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Build metadata, overridden with -ldflags "-X main.version=...".
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// versionString renders the build metadata for --version.
func versionString() string {
	if version == "" {
		return "dev (built from source)"
	}
	var extra []string
	if commit != "" {
		extra = append(extra, "commit "+commit)
	}
	if buildDate != "" {
		extra = append(extra, "built "+buildDate)
	}
	if len(extra) == 0 {
		return version
	}
	return version + " (" + strings.Join(extra, ", ") + ")"
}

// env holds the process-level collaborators, replaced in tests.
type env struct {
	runner      Runner
	newNotifier func() (Notifier, error)
}

func defaultEnv() env {
	return env{runner: execRunner{}, newNotifier: newDesktopNotifier}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: appName,
		Level:  level,
	})
}

// usageError writes the usage text to stderr and wraps err as ErrUsage.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	if !errors.Is(err, ErrUsage) {
		err = fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return &ExitError{Code: 1, Err: err}
}

func newRootCmd(e env) *cobra.Command {
	var (
		flags      Flags
		setValue   int
		verbose    bool
		notify     bool
		rawPattern bool
		cfgFile    string
	)

	cmd := &cobra.Command{
		Use:   appName + " [options] [DeviceString]",
		Short: "Enable, disable or toggle an X input device by name",
		Long: `Enable, disable or toggle an X input device by name.

DeviceString can be any case-insensitive substring of the device name as it
appears in 'xinput list'. The matched device gets a new state through
'xinput set-prop'. The state is toggled by default; use -s to set it explicitly.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cfgFile)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("set") {
				v := setValue
				flags.Set = &v
			}
			if cmd.Flags().Changed("verbose") {
				flags.Verbose = &verbose
			}
			if cmd.Flags().Changed("notify") {
				flags.Notify = &notify
			}
			if cmd.Flags().Changed("raw-pattern") {
				flags.RawPattern = &rawPattern
			}
			cfg, err := ParseConfig(flags, args, settings)
			if err != nil {
				return usageError(cmd, err)
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			logger.Debug("config", "mode", cfg.Mode, "name", cfg.Name, "enable", cfg.Enable)

			a := &app{
				cfg:         cfg,
				tool:        &xinput{bin: cfg.XInput, run: e.runner, logger: logger},
				newNotifier: e.newNotifier,
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
				logger:      logger,
			}
			return a.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&setValue, "set", "s", 0, `set "Device Enabled" value directly instead of toggling (nonzero = enabled)`)
	f.BoolVarP(&flags.List, "list-devices", "l", false, "list available devices (all of them if no DeviceString)")
	f.BoolVarP(&verbose, "verbose", "v", false, "run verbosely")
	f.BoolVar(&notify, "notify", false, "show a desktop notification after changing state")
	f.BoolVar(&rawPattern, "raw-pattern", false, "treat DeviceString as a regular expression")
	f.StringVar(&flags.XInput, "xinput", "", "xinput binary to run (default \"xinput\")")
	f.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/"+appName+"/config.yaml)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprintln(c.ErrOrStderr(), err)
		return usageError(c, err)
	})
	return cmd
}
