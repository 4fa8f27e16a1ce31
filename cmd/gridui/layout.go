package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	tui "github.com/grindlemire/grid-tui"
	"github.com/grindlemire/grid-tui/pkg/scene"
)

type layoutOptions struct {
	width  int
	height int
	frames int
}

func newLayoutCmd(flags *rootFlags) *cobra.Command {
	opts := layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Lay out a scene headless and print the grid and widget geometry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.width < 1 || opts.height < 1 {
				return errors.Errorf("surface must be at least 1x1, got %dx%d", opts.width, opts.height)
			}
			if opts.frames < 1 {
				return errors.New("--frames must be at least 1")
			}
			sc, err := loadScene(args)
			if err != nil {
				return err
			}

			surface := tui.NewMockSurface(opts.width, opts.height)
			app, ids, err := newSceneApp(surface, sc, flags.log)
			if err != nil {
				return err
			}
			for i := 0; i < opts.frames; i++ {
				if err := app.Tick(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, surface.StringTrimmed())
			fmt.Fprintln(out, geometryTable(app.Store(), scene.Names(ids)))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 80, "Surface width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 24, "Surface height in cells")
	cmd.Flags().IntVar(&opts.frames, "frames", 1, "Frames to tick before printing")

	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// geometryTable lists every widget in store order with its resolved geometry.
func geometryTable(s *tui.Store, names map[tui.WidgetID]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WIDGET", "NAME", "KIND", "POSITION", "SIZE", "COLOR").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, id := range s.Widgets() {
		pos, _ := tui.Get[tui.Position](s, id)
		size, _ := tui.Get[tui.Size](s, id)
		color, _ := tui.Get[tui.Color](s, id)
		t.Row(
			id.String(),
			names[id],
			widgetKind(s, id),
			fmt.Sprintf("%d,%d", pos.X, pos.Y),
			fmt.Sprintf("%dx%d", size.W, size.H),
			color.Token.String(),
		)
	}
	return t.String()
}

func widgetKind(s *tui.Store, id tui.WidgetID) string {
	switch {
	case tui.Has[tui.Container](s, id):
		return string(scene.KindVBox)
	case tui.Has[tui.Clickable](s, id):
		return string(scene.KindButton)
	case tui.Has[tui.Text](s, id):
		return string(scene.KindLabel)
	default:
		return "-"
	}
}
