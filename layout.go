package tui

import "slices"

// Layout runs in two passes per frame. The position pass moves each
// container's direct children; the size pass grows each container around
// the children it just placed.
//
// Containers are visited in store order and only move their direct
// children, so a container nested behind another whose position changed
// this frame may see its parent's old coordinates and settle one frame
// later. The same holds for sizes: a nested container's new height reaches
// its parent's stacking on the following frame. Running ResolveLayout
// again converges; a single call per frame is the intended usage.

// ResolveLayout runs the position pass followed by the size pass. A child
// whose parent no longer exists fails the size pass with a ConsistencyError,
// whether or not the child has geometry of its own.
func ResolveLayout(s *Store) error {
	if err := ResolvePositions(s); err != nil {
		return err
	}
	return ResolveSizes(s)
}

// ResolvePositions sets the absolute Position of every container child.
// Children are stacked top to bottom starting at the container's padding,
// separated by the container's spacing, each nudged by its LocalPosition.
func ResolvePositions(s *Store) error {
	for _, id := range s.Widgets() {
		c, ok := Get[Container](s, id)
		if !ok {
			continue
		}
		origin, _ := Get[Position](s, id)

		cursor := int(c.Padding)
		for _, child := range s.children[id] {
			local, _ := Get[LocalPosition](s, child)
			size, _ := Get[Size](s, child)
			if err := Attach(s, child, Position{
				X: saturate(int(origin.X) + int(c.Padding) + int(local.X)),
				Y: saturate(int(origin.Y) + cursor + int(local.Y)),
			}); err != nil {
				return &ConsistencyError{Widget: child, Parent: id, Err: err}
			}
			cursor += int(size.H) + int(c.Spacing)
		}
	}
	return nil
}

// ResolveSizes recomputes every container's Size from its children.
//
// Width is the widest child plus padding. Height is the distance from the
// container's row to each child's row plus padding, taken as an absolute
// value so a child that sits above the container still grows it.
// A container never shrinks below (padding, padding).
//
// Children are folded deepest first, so a nested container is fully grown
// before it is folded into its own parent.
func ResolveSizes(s *Store) error {
	widgets := s.Widgets()
	for _, id := range widgets {
		if c, ok := Get[Container](s, id); ok {
			mustAttach(s, id, Size{W: c.Padding, H: c.Padding})
		}
	}

	for _, id := range deepestFirst(s, widgets) {
		parent, ok := s.ParentOf(id)
		if !ok {
			continue
		}
		if !s.Alive(parent) {
			return &ConsistencyError{Widget: id, Parent: parent, Err: ErrMissingParent}
		}
		pos, hasPos := Get[Position](s, id)
		size, hasSize := Get[Size](s, id)
		if !hasPos || !hasSize {
			continue
		}
		c, ok := Get[Container](s, parent)
		if !ok {
			continue
		}
		parentPos, _ := Get[Position](s, parent)

		Mutate(s, parent, func(ps *Size) {
			ps.W = max(ps.W, saturate(int(size.W)+int(c.Padding)))
			ps.H = max(ps.H, saturate(abs(int(pos.Y)-int(parentPos.Y))+int(c.Padding)))
		})
	}
	return nil
}

// deepestFirst orders widgets by decreasing tree depth, keeping store order
// among widgets at the same depth.
func deepestFirst(s *Store, widgets []WidgetID) []WidgetID {
	depth := make(map[WidgetID]int, len(widgets))
	for _, id := range widgets {
		d := 0
		for cur := id; d <= len(widgets); d++ {
			parent, ok := s.ParentOf(cur)
			if !ok || !s.Alive(parent) {
				break
			}
			cur = parent
		}
		depth[id] = d
	}
	out := slices.Clone(widgets)
	slices.SortStableFunc(out, func(a, b WidgetID) int {
		return depth[b] - depth[a]
	})
	return out
}

// CheckTree verifies that every Parent reference names a live widget and
// that no widget is its own ancestor.
func CheckTree(s *Store) error {
	for _, id := range s.Widgets() {
		seen := map[WidgetID]struct{}{id: {}}
		for cur := id; ; {
			parent, ok := s.ParentOf(cur)
			if !ok {
				break
			}
			if !s.Alive(parent) {
				return &ConsistencyError{Widget: cur, Parent: parent, Err: ErrMissingParent}
			}
			if _, dup := seen[parent]; dup {
				return &ConsistencyError{Widget: cur, Parent: parent, Err: ErrCycle}
			}
			seen[parent] = struct{}{}
			cur = parent
		}
	}
	return nil
}

func saturate(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
