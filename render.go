package tui

import "github.com/charmbracelet/x/ansi"

// Paint writes every widget that has Text and a resolved Position to surf,
// in store order, using the widget's color token (the default pair when it
// has none). Escape sequences are stripped so the painted cells match the
// width TextWidth measured.
func Paint(s *Store, surf Surface) {
	for _, id := range s.Widgets() {
		text, ok := Get[Text](s, id)
		if !ok {
			continue
		}
		pos, ok := Get[Position](s, id)
		if !ok {
			continue
		}
		color, _ := Get[Color](s, id)
		surf.WriteCell(int(pos.Y), int(pos.X), ansi.Strip(text.Value), color.Token)
	}
}

// AutoSizeLabels re-measures every non-container widget whose Text changed
// since the last ClearChanged. Height is always one row.
func AutoSizeLabels(s *Store) []WidgetID {
	changed := Changed[Text](s)
	for _, id := range changed {
		if Has[Container](s, id) {
			continue
		}
		text, _ := Get[Text](s, id)
		mustAttach(s, id, Size{W: TextWidth(text.Value), H: 1})
	}
	return changed
}
