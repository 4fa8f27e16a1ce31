// Package scene loads widget trees from YAML or TOML files and builds them
// into a tui.Store.
//
// A scene is a list of root widgets. Each widget has a kind (label, button
// or vbox) and vboxes carry children:
//
//	title: demo
//	widgets:
//	  - kind: vbox
//	    position: {x: 2, y: 1}
//	    children:
//	      - kind: label
//	        text: Hello world
//	      - kind: button
//	        id: quit
//	        text: Quit
//	        action: quit
package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Kind names a widget constructor.
type Kind string

const (
	KindLabel  Kind = "label"
	KindButton Kind = "button"
	KindVBox   Kind = "vbox"
)

// Action is what a button does when clicked.
type Action string

const (
	ActionNone Action = "none"
	ActionQuit Action = "quit"
	ActionLog  Action = "log"
)

// Scene is a decoded scene file.
type Scene struct {
	Title   string `yaml:"title" toml:"title"`
	Widgets []Node `yaml:"widgets" toml:"widgets" validate:"required,min=1,dive"`
}

// Node describes one widget and, for vboxes, its children.
type Node struct {
	ID       string     `yaml:"id" toml:"id" validate:"omitempty,node_id"`
	Kind     Kind       `yaml:"kind" toml:"kind" validate:"required,oneof=label button vbox"`
	Text     string     `yaml:"text" toml:"text"`
	Position *Point     `yaml:"position" toml:"position"`
	Local    *Point     `yaml:"local" toml:"local"`
	Color    *ColorSpec `yaml:"color" toml:"color"`
	Padding  uint16     `yaml:"padding" toml:"padding"`
	Spacing  uint16     `yaml:"spacing" toml:"spacing"`
	Action   Action     `yaml:"action" toml:"action" validate:"omitempty,oneof=quit log none"`
	Children []Node     `yaml:"children" toml:"children" validate:"dive"`
}

// Point is a cell coordinate.
type Point struct {
	X uint16 `yaml:"x" toml:"x"`
	Y uint16 `yaml:"y" toml:"y"`
}

// ColorSpec names a foreground and background channel.
type ColorSpec struct {
	Fg       string `yaml:"fg" toml:"fg" validate:"required,channel"`
	Bg       string `yaml:"bg" toml:"bg" validate:"required,channel"`
	Emphasis bool   `yaml:"emphasis" toml:"emphasis"`
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf("unsupported scene extension %q", filepath.Ext(path))
	}
}

// Load reads, decodes and validates the scene file at path.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, newParseError(path, 0, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newParseError(path, 0, err)
	}
	return parse(path, data, format)
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	return parse("", data, format)
}

func parse(path string, data []byte, format Format) (*Scene, error) {
	var sc Scene
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, newParseError(path, 0, errors.New("empty scene"))
			}
			return nil, newParseError(path, yamlLine(err), err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			var perr toml.ParseError
			if errors.As(err, &perr) {
				return nil, newParseError(path, perr.Position.Line, err)
			}
			return nil, newParseError(path, 0, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, newParseError(path, 0, errors.Errorf("unknown key %q", undecoded[0].String()))
		}
	default:
		return nil, newParseError(path, 0, errors.Errorf("unknown format %q", format))
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func yamlLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

// Default returns the demo scene: a box at (2,1) holding a box offset by
// (10,10) with a label, a quit button and a red-on-white label.
func Default() *Scene {
	return &Scene{
		Title: "demo",
		Widgets: []Node{{
			ID:       "outer",
			Kind:     KindVBox,
			Position: &Point{X: 2, Y: 1},
			Children: []Node{{
				ID:    "inner",
				Kind:  KindVBox,
				Local: &Point{X: 10, Y: 10},
				Children: []Node{
					{ID: "greeting", Kind: KindLabel, Text: "Hello world"},
					{ID: "button", Kind: KindButton, Text: "Hello world clickable", Action: ActionQuit},
					{
						ID:    "colored",
						Kind:  KindLabel,
						Text:  "Hello world colored",
						Color: &ColorSpec{Fg: "red", Bg: "white"},
					},
				},
			}},
		}},
	}
}
