package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tui "github.com/grindlemire/grid-tui"
)

func TestLoad_DemoMatchesDefault(t *testing.T) {
	for _, name := range []string{"demo.yaml", "demo.toml"} {
		t.Run(name, func(t *testing.T) {
			sc, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, Default(), sc)
		})
	}
}

func TestLoad_Menu(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "menu.yml"))
	require.NoError(t, err)
	assert.Equal(t, "menu", sc.Title)
	require.Len(t, sc.Widgets, 2)
	assert.Equal(t, &ColorSpec{Fg: "yellow", Bg: "black", Emphasis: true}, sc.Widgets[0].Color)
	assert.Equal(t, uint16(1), sc.Widgets[1].Padding)
	assert.Len(t, sc.Widgets[1].Children, 2)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	type tc struct {
		path     string
		wantLine int
	}

	tests := map[string]tc{
		"missing file":     {path: filepath.Join(dir, "nope.yaml")},
		"bad extension":    {path: write("scene.json", "{}")},
		"yaml syntax":      {path: write("bad.yaml", "widgets:\n  - kind: label\n\ttext: hi\n"), wantLine: 3},
		"yaml empty":       {path: write("empty.yaml", "")},
		"yaml unknown key": {path: write("unknown.yaml", "widgets:\n  - kind: label\n    txt: hi\n"), wantLine: 3},
		"toml syntax":      {path: write("bad.toml", "title = \"x\"\n[[widgets]\n")},
		"toml unknown key": {path: write("unknown.toml", "[[widgets]]\nkind = \"label\"\ntext = \"hi\"\nsize = 3\n")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
			assert.Equal(t, tt.path, perr.Path)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, perr.Line)
			}
		})
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("widgets: []"), Format("json"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Error(), "<input>")
}

func TestValidate(t *testing.T) {
	type tc struct {
		yaml      string
		wantField string
	}

	tests := map[string]tc{
		"no widgets": {
			yaml:      "title: x\n",
			wantField: "widgets",
		},
		"missing kind": {
			yaml:      "widgets:\n  - text: hi\n",
			wantField: "widgets[0].kind",
		},
		"unknown kind": {
			yaml:      "widgets:\n  - kind: slider\n",
			wantField: "widgets[0].kind",
		},
		"bad channel": {
			yaml:      "widgets:\n  - kind: label\n    text: hi\n    color: {fg: orange, bg: black}\n",
			wantField: "widgets[0].color.fg",
		},
		"missing background": {
			yaml:      "widgets:\n  - kind: label\n    text: hi\n    color: {fg: red}\n",
			wantField: "widgets[0].color.bg",
		},
		"bad id": {
			yaml:      "widgets:\n  - kind: label\n    id: Not Valid\n    text: hi\n",
			wantField: "widgets[0].id",
		},
		"unknown action": {
			yaml:      "widgets:\n  - kind: button\n    id: b\n    text: hi\n    action: explode\n",
			wantField: "widgets[0].action",
		},
		"label without text": {
			yaml:      "widgets:\n  - kind: label\n",
			wantField: "widgets[0].text",
		},
		"label with children": {
			yaml:      "widgets:\n  - kind: label\n    text: hi\n    children:\n      - kind: label\n        text: nested\n",
			wantField: "widgets[0].children",
		},
		"label with padding": {
			yaml:      "widgets:\n  - kind: label\n    text: hi\n    padding: 2\n",
			wantField: "widgets[0]",
		},
		"vbox with text": {
			yaml:      "widgets:\n  - kind: vbox\n    text: hi\n",
			wantField: "widgets[0].text",
		},
		"action on label": {
			yaml:      "widgets:\n  - kind: label\n    id: l\n    text: hi\n    action: quit\n",
			wantField: "widgets[0].action",
		},
		"action without id": {
			yaml:      "widgets:\n  - kind: button\n    text: hi\n    action: quit\n",
			wantField: "widgets[0].id",
		},
		"duplicate id": {
			yaml:      "widgets:\n  - kind: vbox\n    id: a\n    children:\n      - kind: label\n        id: a\n        text: hi\n",
			wantField: "widgets[0].children[0].id",
		},
		"nested error path": {
			yaml:      "widgets:\n  - kind: vbox\n    children:\n      - kind: vbox\n        children:\n          - kind: nope\n",
			wantField: "widgets[0].children[0].children[0].kind",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_BadChannelListsColors(t *testing.T) {
	_, err := Parse([]byte("widgets:\n  - kind: label\n    text: hi\n    color: {fg: orange, bg: black}\n"), FormatYAML)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
	assert.Contains(t, verr.Message, `"orange"`)
	assert.Contains(t, verr.Message, strings.Join(tui.ChannelNames(), ", "))
}

func TestValidate_NoneActionNeedsNoID(t *testing.T) {
	_, err := Parse([]byte("widgets:\n  - kind: button\n    text: hi\n    action: none\n"), FormatYAML)
	assert.NoError(t, err)
}

func TestBuild_DefaultLaysOutInOneFrame(t *testing.T) {
	s := tui.NewStore()
	sc := Default()
	ids, err := sc.Build(s)
	require.NoError(t, err)
	require.Len(t, ids, 5)

	require.NoError(t, tui.ResolveLayout(s))

	type want struct {
		pos  tui.Position
		size tui.Size
	}
	expected := map[string]want{
		"outer":    {pos: tui.Position{X: 2, Y: 1}, size: tui.Size{W: 21, H: 10}},
		"inner":    {pos: tui.Position{X: 12, Y: 11}, size: tui.Size{W: 21, H: 2}},
		"greeting": {pos: tui.Position{X: 12, Y: 11}, size: tui.Size{W: 11, H: 1}},
		"button":   {pos: tui.Position{X: 12, Y: 12}, size: tui.Size{W: 21, H: 1}},
		"colored":  {pos: tui.Position{X: 12, Y: 13}, size: tui.Size{W: 19, H: 1}},
	}
	for name, w := range expected {
		p, _ := tui.Get[tui.Position](s, ids[name])
		sz, _ := tui.Get[tui.Size](s, ids[name])
		assert.Equal(t, w.pos, p, name)
		assert.Equal(t, w.size, sz, name)
	}

	assert.True(t, tui.Has[tui.Clickable](s, ids["button"]))
	c, _ := tui.Get[tui.Color](s, ids["colored"])
	assert.Equal(t, tui.Encode(tui.Red, tui.White), c.Token)
	assert.Equal(t, []tui.WidgetID{ids["greeting"], ids["button"], ids["colored"]}, s.Children(ids["inner"]))

	assert.Equal(t, map[tui.WidgetID]Action{ids["button"]: ActionQuit}, sc.Actions(ids))
	assert.Equal(t, "inner", Names(ids)[ids["inner"]])
}

func TestBuild_MenuOptions(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "menu.yml"))
	require.NoError(t, err)

	s := tui.NewStore()
	ids, err := sc.Build(s)
	require.NoError(t, err)
	assert.Len(t, ids, 2, "unnamed nodes are not reported")
	assert.Equal(t, 4, s.Len())

	box, ok := s.ParentOf(ids["start"])
	require.True(t, ok)
	c, _ := tui.Get[tui.Container](s, box)
	assert.Equal(t, tui.Container{Padding: 1, Spacing: 1}, c)

	actions := sc.Actions(ids)
	assert.Equal(t, ActionLog, actions[ids["start"]])
	assert.Equal(t, ActionQuit, actions[ids["quit"]])

	title := s.Widgets()[0]
	col, _ := tui.Get[tui.Color](s, title)
	assert.Equal(t, tui.EncodeEmphasized(tui.Yellow, tui.Black), col.Token)
}

func TestBuild_RejectsInvalidScene(t *testing.T) {
	s := tui.NewStore()
	_, err := (&Scene{Widgets: []Node{{Kind: KindLabel}}}).Build(s)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, s.Len(), "nothing built")
}
