package scene

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	tui "github.com/grindlemire/grid-tui"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	nodeIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their file key so errors point at what the user wrote.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
			return nodeIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("channel", func(fl validator.FieldLevel) bool {
			_, ok := tui.ParseChannel(fl.Field().String())
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks field rules and then the cross-node rules: labels and
// buttons need text, only vboxes have children or spacing, only buttons
// have actions, ids are unique.
func (sc *Scene) Validate() error {
	if sc == nil {
		return newValidationError("scene", "scene is nil", nil)
	}
	if err := validatorInstance().Struct(sc); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]string)
	for i := range sc.Widgets {
		if err := validateNode(&sc.Widgets[i], fmt.Sprintf("widgets[%d]", i), seen); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, path string, seen map[string]string) error {
	if n.ID != "" {
		if prev, ok := seen[n.ID]; ok {
			return newValidationError(path+".id", fmt.Sprintf("duplicate id %q (first used at %s)", n.ID, prev), nil)
		}
		seen[n.ID] = path
	}

	switch n.Kind {
	case KindLabel, KindButton:
		if n.Text == "" {
			return newValidationError(path+".text", fmt.Sprintf("text is required for %s", n.Kind), nil)
		}
		if len(n.Children) > 0 {
			return newValidationError(path+".children", fmt.Sprintf("%s cannot have children", n.Kind), nil)
		}
		if n.Padding != 0 || n.Spacing != 0 {
			return newValidationError(path, fmt.Sprintf("padding and spacing only apply to vbox, not %s", n.Kind), nil)
		}
	case KindVBox:
		if n.Text != "" {
			return newValidationError(path+".text", "vbox has no text", nil)
		}
	}

	if n.Action != "" && n.Kind != KindButton {
		return newValidationError(path+".action", fmt.Sprintf("only buttons have actions, not %s", n.Kind), nil)
	}
	if n.Action != "" && n.Action != ActionNone && n.ID == "" {
		return newValidationError(path+".id", "a button with an action needs an id", nil)
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldPath(ve)
		msg := fmt.Sprintf("failed validation for tag '%s'", ve.Tag())
		switch {
		case ve.Tag() == "channel":
			msg = fmt.Sprintf("unknown color %q, must be one of %s", ve.Value(), strings.Join(tui.ChannelNames(), ", "))
		case ve.Param() != "":
			msg = fmt.Sprintf("failed validation for tag '%s=%s'", ve.Tag(), ve.Param())
		}
		return newValidationError(field, msg, err)
	}
	return newValidationError("scene", err.Error(), err)
}

// fieldPath drops the root type name: "Scene.widgets[0].kind" -> "widgets[0].kind".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
