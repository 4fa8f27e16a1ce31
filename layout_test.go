package tui

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(s *Store, id WidgetID) Position {
	p, _ := Get[Position](s, id)
	return p
}

func size(s *Store, id WidgetID) Size {
	sz, _ := Get[Size](s, id)
	return sz
}

func TestResolveLayout_PaddedVBox(t *testing.T) {
	s := NewStore()
	box := s.NewVBox(WithPosition(10, 10), WithPadding(1), WithSpacing(1))
	a := s.Create()
	b := s.Create()
	for _, id := range []WidgetID{a, b} {
		require.NoError(t, Attach(s, id, Size{W: 5, H: 1}))
		require.NoError(t, Attach(s, id, LocalPosition{}))
		require.NoError(t, s.AddChild(box, id))
	}

	require.NoError(t, ResolveLayout(s))

	assert.Equal(t, Position{X: 11, Y: 11}, pos(s, a))
	assert.Equal(t, Position{X: 11, Y: 13}, pos(s, b))
	assert.Equal(t, Size{W: 6, H: 4}, size(s, box))
	assert.Equal(t, Position{X: 10, Y: 10}, pos(s, box), "root keeps its authored position")
}

func TestResolvePositions_StackingProperty(t *testing.T) {
	type tc struct {
		padding, spacing uint16
		heights          []uint16
		locals           []LocalPosition
	}

	tests := map[string]tc{
		"no padding no spacing": {heights: []uint16{1, 1, 1}},
		"padding only":          {padding: 2, heights: []uint16{1, 3, 1}},
		"spacing only":          {spacing: 2, heights: []uint16{2, 2}},
		"both with local offsets": {
			padding: 1, spacing: 1,
			heights: []uint16{1, 2, 1},
			locals:  []LocalPosition{{X: 3}, {X: 0, Y: 0}, {X: 1}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewStore()
			box := s.NewVBox(WithPosition(4, 7), WithPadding(tt.padding), WithSpacing(tt.spacing))
			var kids []WidgetID
			for i, h := range tt.heights {
				kid := s.Create()
				require.NoError(t, Attach(s, kid, Size{W: 2, H: h}))
				if i < len(tt.locals) {
					require.NoError(t, Attach(s, kid, tt.locals[i]))
				}
				require.NoError(t, s.AddChild(box, kid))
				kids = append(kids, kid)
			}

			require.NoError(t, ResolvePositions(s))

			origin := pos(s, box)
			for i, kid := range kids {
				p := pos(s, kid)
				assert.GreaterOrEqual(t, int(p.X)-int(origin.X), int(tt.padding))
				assert.GreaterOrEqual(t, int(p.Y)-int(origin.Y), int(tt.padding))
				if i > 0 {
					prev := pos(s, kids[i-1])
					gap := int(p.Y) - int(prev.Y)
					assert.GreaterOrEqual(t, gap, int(tt.heights[i-1])+int(tt.spacing))
					assert.Greater(t, p.Y, prev.Y)
				}
			}
		})
	}
}

func TestResolveLayout_Idempotent(t *testing.T) {
	s := NewStore()
	hi := s.NewLabel("Hi")
	hello := s.NewButton("Hello world", WithLocalPosition(2, 0))
	s.NewVBox(WithPosition(3, 2), WithPadding(2), WithSpacing(1), WithChildren(hi, hello))

	snapshot := func() map[WidgetID][2]any {
		out := make(map[WidgetID][2]any)
		for _, id := range s.Widgets() {
			out[id] = [2]any{pos(s, id), size(s, id)}
		}
		return out
	}

	require.NoError(t, ResolveLayout(s))
	first := snapshot()
	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, first, snapshot())
}

func TestResolveSizes_NeverBelowPadding(t *testing.T) {
	s := NewStore()
	empty := s.NewVBox(WithPosition(1, 1), WithPadding(3))
	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, Size{W: 3, H: 3}, size(s, empty))
}

func TestResolveSizes_ShrinksWhenContentShrinks(t *testing.T) {
	s := NewStore()
	label := s.NewLabel("a long label")
	box := s.NewVBox(WithChildren(label))

	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, uint16(12), size(s, box).W)

	require.True(t, s.SetText(label, "short"))
	AutoSizeLabels(s)
	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, uint16(5), size(s, box).W)
}

func TestResolveSizes_ChildAboveContainer(t *testing.T) {
	s := NewStore()
	box := s.NewVBox(WithPosition(0, 10), WithPadding(1))
	kid := s.Create()
	require.NoError(t, Attach(s, kid, Size{W: 2, H: 1}))
	require.NoError(t, s.AddChild(box, kid))
	// Place the child above the container as a stale frame would.
	require.NoError(t, Attach(s, kid, Position{X: 1, Y: 6}))

	require.NoError(t, ResolveSizes(s))
	assert.Equal(t, Size{W: 3, H: 5}, size(s, box), "height uses |child.y - parent.y|")
}

func TestResolveLayout_NestedContainerSettlesNextFrame(t *testing.T) {
	s := NewStore()
	// Inner container and its label exist before the outer container, so
	// the inner box is visited first and still sees its old position.
	label := s.NewLabel("Hello world")
	inner := s.NewVBox(WithLocalPosition(10, 10), WithChildren(label))
	s.NewVBox(WithPosition(2, 1), WithChildren(inner))

	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, Position{X: 12, Y: 11}, pos(s, inner))
	assert.Equal(t, Position{X: 0, Y: 0}, pos(s, label), "one frame behind")

	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, Position{X: 12, Y: 11}, pos(s, label))
}

func TestResolveLayout_ParentFirstSettlesImmediately(t *testing.T) {
	s := NewStore()
	outer := s.NewVBox(WithPosition(2, 1))
	inner := s.NewVBox(WithLocalPosition(10, 10))
	label := s.NewLabel("Hello world")
	require.NoError(t, s.AddChild(outer, inner))
	require.NoError(t, s.AddChild(inner, label))

	require.NoError(t, ResolveLayout(s))
	assert.Equal(t, Position{X: 12, Y: 11}, pos(s, label))
	assert.Equal(t, Size{W: 11, H: 0}, size(s, inner))
	assert.Equal(t, Size{W: 11, H: 10}, size(s, outer), "nested box grown before folding")
}

func TestResolveLayout_DestroyedContainerIsFatal(t *testing.T) {
	s := NewStore()
	a := s.NewLabel("first")
	b := s.NewLabel("second")
	box := s.NewVBox(WithPosition(1, 1), WithChildren(a, b))
	require.NoError(t, ResolveLayout(s))

	require.True(t, s.Destroy(box))

	err := ResolveLayout(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParent))

	var ce *ConsistencyError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, a, ce.Widget)
	assert.Equal(t, box, ce.Parent)
}

func TestResolveLayout_DestroyedParentOfBareChild(t *testing.T) {
	s := NewStore()
	kid := s.Create()
	box := s.NewVBox(WithPosition(1, 1))
	require.NoError(t, s.AddChild(box, kid))
	require.NoError(t, ResolveLayout(s))

	require.True(t, s.Destroy(box))

	err := ResolveLayout(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParent))

	var ce *ConsistencyError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, kid, ce.Widget)
	assert.Equal(t, box, ce.Parent)
}

func TestResolvePositions_Saturates(t *testing.T) {
	s := NewStore()
	kid := s.NewLabel("x", WithLocalPosition(10, 10))
	s.NewVBox(WithPosition(0xFFF0, 0xFFF0), WithPadding(10), WithChildren(kid))

	require.NoError(t, ResolvePositions(s))
	assert.Equal(t, Position{X: 0xFFFF, Y: 0xFFFF}, pos(s, kid))
}
