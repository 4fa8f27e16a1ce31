package main

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tui "github.com/grindlemire/grid-tui"
	"github.com/grindlemire/grid-tui/pkg/scene"
	"github.com/grindlemire/grid-tui/pkg/tcellsurface"
)

// isTerminal is swapped out by tests.
var isTerminal = term.IsTerminal

type runOptions struct {
	fps int
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "Run a scene interactively (q, Esc or Ctrl-C to quit)",
		Example: `  # Run the built-in demo
  gridui run

  # Run a scene file and log clicks
  gridui run menu.yaml --log-file gridui.log --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(int(os.Stdout.Fd())) {
				return errors.New("run needs an interactive terminal; use layout to render headless")
			}
			sc, err := loadScene(args)
			if err != nil {
				return err
			}

			surface, err := tcellsurface.New(tcellsurface.WithLogger(flags.log))
			if err != nil {
				return errors.Wrap(err, "open terminal")
			}
			defer surface.Close()

			app, _, err := newSceneApp(surface, sc, flags.log, tui.WithFrameRate(opts.fps))
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 30, "Target frame rate (1-240)")

	return cmd
}

// newSceneApp builds sc into a fresh App on surface and binds button
// actions and quit keys. It returns the ids of the scene's named widgets.
func newSceneApp(surface tui.Surface, sc *scene.Scene, log zerolog.Logger, opts ...tui.AppOption) (*tui.App, map[string]tui.WidgetID, error) {
	app, err := tui.NewApp(surface, append(opts, tui.WithLogger(log))...)
	if err != nil {
		return nil, nil, err
	}
	ids, err := sc.Build(app.Store())
	if err != nil {
		return nil, nil, err
	}

	names := scene.Names(ids)
	for id, action := range sc.Actions(ids) {
		name := names[id]
		switch action {
		case scene.ActionQuit:
			app.OnClick(id, func(tui.ClickEvent) {
				log.Info().Str("button", name).Msg("quit requested")
				app.Stop()
			})
		case scene.ActionLog:
			app.OnClick(id, func(tui.ClickEvent) {
				log.Info().Str("button", name).Msg("button clicked")
			})
		}
	}

	app.OnInput(func(ev tui.Event) {
		if isQuitKey(ev) {
			app.Stop()
		}
	})

	log.Debug().Str("title", sc.Title).Int("widgets", app.Store().Len()).Msg("scene built")
	return app, ids, nil
}

func isQuitKey(ev tui.Event) bool {
	other, ok := ev.(tui.OtherEvent)
	if !ok {
		return false
	}
	key, ok := other.Payload.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}
