package tui

import (
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// compactThreshold is the minimum number of tombstones before the order slice is compacted.
const compactThreshold = 32

// Store owns every widget and its attributes. Each attribute kind lives in
// its own table keyed by WidgetID, so a widget holds at most one value per kind
// and "what a widget can do" is exactly which tables contain it.
//
// Store is not safe for concurrent use.
type Store struct {
	nextID WidgetID

	// order is creation order with NoWidget tombstones; it defines iteration order.
	order []WidgetID
	index map[WidgetID]int
	dead  int

	tables   map[reflect.Type]attrTable
	children map[WidgetID][]WidgetID
}

type attrTable interface {
	remove(id WidgetID)
	clearChanged()
}

type table[T any] struct {
	values  map[WidgetID]*T
	changed map[WidgetID]struct{}
}

func (t *table[T]) remove(id WidgetID) {
	delete(t.values, id)
	delete(t.changed, id)
}

func (t *table[T]) clearChanged() {
	clear(t.changed)
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		index:    make(map[WidgetID]int),
		tables:   make(map[reflect.Type]attrTable),
		children: make(map[WidgetID][]WidgetID),
	}
}

// Create allocates a new widget with no attributes.
func (s *Store) Create() WidgetID {
	s.nextID++
	id := s.nextID
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return id
}

// Alive reports whether id names a widget currently in the Store.
func (s *Store) Alive(id WidgetID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of live widgets.
func (s *Store) Len() int {
	return len(s.index)
}

// Widgets returns every live widget in creation order.
func (s *Store) Widgets() []WidgetID {
	out := make([]WidgetID, 0, len(s.index))
	for _, id := range s.order {
		if id != NoWidget {
			out = append(out, id)
		}
	}
	return out
}

// Children returns the direct children of id in insertion order.
func (s *Store) Children(id WidgetID) []WidgetID {
	return slices.Clone(s.children[id])
}

// ParentOf returns the widget's parent reference. The referenced widget
// may have been destroyed; layout treats that as a consistency error.
func (s *Store) ParentOf(id WidgetID) (WidgetID, bool) {
	p, ok := Get[Parent](s, id)
	return p.ID, ok
}

// AddChild makes child the last child of parent, detaching it from any
// previous parent. Fails if either widget is dead or the edge would create a cycle.
func (s *Store) AddChild(parent, child WidgetID) error {
	if !s.Alive(parent) {
		return errors.Wrapf(ErrDeadWidget, "add child %s to %s", child, parent)
	}
	if !s.Alive(child) {
		return errors.Wrapf(ErrDeadWidget, "add child %s to %s", child, parent)
	}
	if s.isAncestorOrSelf(child, parent) {
		return &ConsistencyError{Widget: child, Parent: parent, Err: ErrCycle}
	}

	s.unlink(child)
	t := tableOf[Parent](s, true)
	t.values[child] = &Parent{ID: parent}
	t.changed[child] = struct{}{}
	s.children[parent] = append(s.children[parent], child)
	return nil
}

// RemoveChild detaches child from parent, leaving it as a root widget.
// Returns false if child was not a child of parent.
func (s *Store) RemoveChild(parent, child WidgetID) bool {
	p, ok := s.ParentOf(child)
	if !ok || p != parent {
		return false
	}
	s.unlink(child)
	return true
}

// Destroy removes a widget and all of its attributes. Descendants are not
// destroyed: they keep a Parent pointing at the dead widget and the next
// layout pass reports ErrMissingParent for them.
func (s *Store) Destroy(id WidgetID) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.unlink(id)
	delete(s.children, id)
	for _, t := range s.tables {
		t.remove(id)
	}

	delete(s.index, id)
	s.order[pos] = NoWidget
	s.dead++
	if s.dead >= compactThreshold && s.dead*2 > len(s.order) {
		s.compact()
	}
	return true
}

// ClearChanged resets change tracking for every attribute kind.
func (s *Store) ClearChanged() {
	for _, t := range s.tables {
		t.clearChanged()
	}
}

// unlink removes id from its parent's child list and drops its Parent attribute.
func (s *Store) unlink(id WidgetID) {
	t := tableOf[Parent](s, false)
	if t == nil {
		return
	}
	p, ok := t.values[id]
	if !ok {
		return
	}
	siblings := s.children[p.ID]
	if i := slices.Index(siblings, id); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(s.children, p.ID)
	} else {
		s.children[p.ID] = siblings
	}
	t.remove(id)
}

// isAncestorOrSelf reports whether anc is w or one of w's ancestors.
func (s *Store) isAncestorOrSelf(anc, w WidgetID) bool {
	t := tableOf[Parent](s, false)
	seen := make(map[WidgetID]struct{})
	for cur := w; ; {
		if cur == anc {
			return true
		}
		if t == nil {
			return false
		}
		if _, dup := seen[cur]; dup {
			return true
		}
		seen[cur] = struct{}{}
		p, ok := t.values[cur]
		if !ok {
			return false
		}
		cur = p.ID
	}
}

func (s *Store) compact() {
	live := s.order[:0]
	for _, id := range s.order {
		if id == NoWidget {
			continue
		}
		s.index[id] = len(live)
		live = append(live, id)
	}
	clear(s.order[len(live):])
	s.order = live
	s.dead = 0
}

func tableOf[T any](s *Store, create bool) *table[T] {
	key := reflect.TypeFor[T]()
	if t, ok := s.tables[key]; ok {
		return t.(*table[T])
	}
	if !create {
		return nil
	}
	t := &table[T]{
		values:  make(map[WidgetID]*T),
		changed: make(map[WidgetID]struct{}),
	}
	s.tables[key] = t
	return t
}

func isParentKind[T any]() bool {
	return reflect.TypeFor[T]() == reflect.TypeFor[Parent]()
}

// Attach sets the attribute of kind T on id, replacing any previous value,
// and marks it changed. Attaching a Parent is equivalent to AddChild.
func Attach[T any](s *Store, id WidgetID, v T) error {
	if p, ok := any(v).(Parent); ok {
		return s.AddChild(p.ID, id)
	}
	if !s.Alive(id) {
		return errors.Wrapf(ErrDeadWidget, "attach %s to %s", reflect.TypeFor[T](), id)
	}
	t := tableOf[T](s, true)
	t.values[id] = &v
	t.changed[id] = struct{}{}
	return nil
}

// Detach removes the attribute of kind T from id.
// Returns false if the widget did not carry one.
func Detach[T any](s *Store, id WidgetID) bool {
	if isParentKind[T]() {
		p, ok := s.ParentOf(id)
		if !ok {
			return false
		}
		return s.RemoveChild(p, id)
	}
	t := tableOf[T](s, false)
	if t == nil {
		return false
	}
	if _, ok := t.values[id]; !ok {
		return false
	}
	t.remove(id)
	return true
}

// Get returns a copy of id's attribute of kind T. Absent attributes return
// the zero value and false.
func Get[T any](s *Store, id WidgetID) (T, bool) {
	var zero T
	t := tableOf[T](s, false)
	if t == nil {
		return zero, false
	}
	v, ok := t.values[id]
	if !ok {
		return zero, false
	}
	return *v, true
}

// Has reports whether id carries an attribute of kind T.
func Has[T any](s *Store, id WidgetID) bool {
	t := tableOf[T](s, false)
	if t == nil {
		return false
	}
	_, ok := t.values[id]
	return ok
}

// Mutate edits id's attribute of kind T in place and marks it changed.
// Returns false when the attribute is absent. Parent edges cannot be
// mutated this way; use AddChild or RemoveChild.
func Mutate[T any](s *Store, id WidgetID, fn func(*T)) bool {
	if isParentKind[T]() {
		return false
	}
	t := tableOf[T](s, false)
	if t == nil {
		return false
	}
	v, ok := t.values[id]
	if !ok {
		return false
	}
	fn(v)
	t.changed[id] = struct{}{}
	return true
}

// Changed lists, in store order, the widgets whose attribute of kind T was
// attached or mutated since the last ClearChanged.
func Changed[T any](s *Store) []WidgetID {
	t := tableOf[T](s, false)
	if t == nil || len(t.changed) == 0 {
		return nil
	}
	out := make([]WidgetID, 0, len(t.changed))
	for _, id := range s.order {
		if _, ok := t.changed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
