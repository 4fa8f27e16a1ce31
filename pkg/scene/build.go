package scene

import (
	"github.com/pkg/errors"

	tui "github.com/grindlemire/grid-tui"
)

// Build creates the scene's widgets in s and returns the ids of named
// nodes. Parents are created before their children, so a single layout
// pass places every nested widget.
func (sc *Scene) Build(s *tui.Store) (map[string]tui.WidgetID, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	ids := make(map[string]tui.WidgetID)
	for i := range sc.Widgets {
		if _, err := buildNode(s, &sc.Widgets[i], ids); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func buildNode(s *tui.Store, n *Node, ids map[string]tui.WidgetID) (tui.WidgetID, error) {
	opts := nodeOptions(n)

	var id tui.WidgetID
	switch n.Kind {
	case KindLabel:
		id = s.NewLabel(n.Text, opts...)
	case KindButton:
		id = s.NewButton(n.Text, opts...)
	case KindVBox:
		id = s.NewVBox(append(opts, tui.WithPadding(n.Padding), tui.WithSpacing(n.Spacing))...)
	default:
		return tui.NoWidget, errors.Errorf("unknown widget kind %q", n.Kind)
	}
	if n.ID != "" {
		ids[n.ID] = id
	}

	for i := range n.Children {
		child, err := buildNode(s, &n.Children[i], ids)
		if err != nil {
			return tui.NoWidget, err
		}
		if err := s.AddChild(id, child); err != nil {
			return tui.NoWidget, errors.Wrapf(err, "attach %s", childName(&n.Children[i]))
		}
	}
	return id, nil
}

func nodeOptions(n *Node) []tui.Option {
	var opts []tui.Option
	if n.Position != nil {
		opts = append(opts, tui.WithPosition(n.Position.X, n.Position.Y))
	}
	if n.Local != nil {
		opts = append(opts, tui.WithLocalPosition(n.Local.X, n.Local.Y))
	}
	if n.Color != nil {
		// Channels were checked by Validate.
		fg, _ := tui.ParseChannel(n.Color.Fg)
		bg, _ := tui.ParseChannel(n.Color.Bg)
		opts = append(opts, tui.WithColor(fg, bg))
		if n.Color.Emphasis {
			opts = append(opts, tui.WithEmphasis())
		}
	}
	return opts
}

func childName(n *Node) string {
	if n.ID != "" {
		return n.ID
	}
	return string(n.Kind)
}

// Actions maps every built button that has an action other than none to
// that action. ids is the result of Build.
func (sc *Scene) Actions(ids map[string]tui.WidgetID) map[tui.WidgetID]Action {
	out := make(map[tui.WidgetID]Action)
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for i := range nodes {
			n := &nodes[i]
			if n.Kind == KindButton && n.Action != "" && n.Action != ActionNone {
				if id, ok := ids[n.ID]; ok {
					out[id] = n.Action
				}
			}
			walk(n.Children)
		}
	}
	walk(sc.Widgets)
	return out
}

// Names inverts the id map returned by Build.
func Names(ids map[string]tui.WidgetID) map[tui.WidgetID]string {
	out := make(map[tui.WidgetID]string, len(ids))
	for name, id := range ids {
		out[id] = name
	}
	return out
}
