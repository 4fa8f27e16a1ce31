package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/grindlemire/grid-tui/internal/logger"
	"github.com/grindlemire/grid-tui/pkg/scene"
)

type rootFlags struct {
	logFile  string
	logLevel string

	log    zerolog.Logger
	closer io.Closer
}

// newRootCmd builds the command tree. The caller owns the returned flags and
// must call closeLogger once the command finishes, since cobra skips post-run
// hooks when RunE fails.
func newRootCmd() (*cobra.Command, *rootFlags) {
	flags := &rootFlags{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "gridui",
		Short:         "Lay out and run terminal widget scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.openLogger(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to this file (run discards logs without it)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newLayoutCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd, flags
}

// openLogger writes to --log-file when set. Without it, run discards logs
// because the terminal is in use, and the other commands log to stderr.
func (f *rootFlags) openLogger(cmd *cobra.Command) error {
	var writer io.Writer
	switch {
	case f.logFile != "":
		file, err := logger.OpenFile(f.logFile)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		f.closer = file
		writer = file
	case cmd.Name() == "run":
		writer = io.Discard
	default:
		writer = cmd.ErrOrStderr()
	}

	log, err := logger.New(logger.Options{
		Level:         f.logLevel,
		HumanReadable: f.logFile == "",
		Writer:        writer,
	})
	if err != nil {
		_ = f.closeLogger()
		return errors.Wrapf(err, "invalid --log-level %q", f.logLevel)
	}
	f.log = log
	return nil
}

func (f *rootFlags) closeLogger() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// loadScene reads the scene named by args, or the built-in demo.
func loadScene(args []string) (*scene.Scene, error) {
	if len(args) == 0 {
		return scene.Default(), nil
	}
	return scene.Load(args[0])
}
