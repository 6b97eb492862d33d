package resource

import (
	"fmt"
	"sync"

	"github.com/wippyai/temporal-capi/errors"
)

// Table maps generation-stamped handles to Go values. Entries are either
// owned (released explicitly by the caller) or borrowed views bound to a
// parent entry; releasing a parent releases its views with it.
type Table struct {
	entries   []entry
	free      []int
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	live      int
	closed    bool
}

type entry struct {
	value   any
	views   []Handle
	typeID  TypeID
	parent  Handle
	borrows uint32
	gen     uint8
	live    bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make([]entry, 0, 64),
		free:    make([]int, 0, 16),
	}
}

// Insert stores an owned value and returns its handle.
func (t *Table) Insert(typeID TypeID, value any) (Handle, error) {
	h, err := t.insert(typeID, value)
	if err != nil {
		return 0, err
	}

	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h, nil
}

// InsertView stores a borrowed view of parent. The view stays readable only
// while parent is live.
func (t *Table) InsertView(parent Handle, typeID TypeID, value any) (Handle, error) {
	h, err := t.insertView(parent, typeID, value)
	if err != nil {
		return 0, err
	}

	t.notify(Event{Type: EventCreated, Handle: h, Parent: parent, TypeID: typeID, Value: value})
	return h, nil
}

func (t *Table) insert(typeID TypeID, value any) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(typeID, value, 0)
}

func (t *Table) insertView(parent Handle, typeID TypeID, value any) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.resolveLocked(parent)
	if err != nil {
		return 0, err
	}
	if p.parent != 0 {
		return 0, errors.InvalidHandle(uint32(parent), "views cannot be taken of a view")
	}
	h, err := t.insertLocked(typeID, value, parent)
	if err != nil {
		return 0, err
	}
	// resolve again: insertLocked may have grown the slice
	t.entries[parent.slot()].views = append(t.entries[parent.slot()].views, h)
	return h, nil
}

func (t *Table) insertLocked(typeID TypeID, value any, parent Handle) (Handle, error) {
	if t.closed {
		return 0, errors.New(errors.PhaseBoundary, errors.KindInternal).
			Detail("handle table closed").Build()
	}

	var slot int
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if len(t.entries) >= MaxSlots {
			return 0, errors.New(errors.PhaseBoundary, errors.KindInternal).
				Detail("handle table full: %d live entries", t.live).Build()
		}
		t.entries = append(t.entries, entry{})
		slot = len(t.entries) - 1
	}

	e := &t.entries[slot]
	e.value = value
	e.typeID = typeID
	e.parent = parent
	e.views = nil
	e.borrows = 0
	e.live = true
	t.live++
	return makeHandle(slot, e.gen), nil
}

// resolveLocked returns the live entry h was issued for.
func (t *Table) resolveLocked(h Handle) (*entry, error) {
	if h == 0 {
		return nil, errors.InvalidHandle(0, "null handle")
	}
	slot := h.slot()
	if slot < 0 || slot >= len(t.entries) {
		return nil, errors.InvalidHandle(uint32(h), "never issued")
	}
	e := &t.entries[slot]
	if !e.live || e.gen != h.Generation() {
		return nil, errors.InvalidHandle(uint32(h), "released")
	}
	return e, nil
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return nil, false
	}
	return e.value, true
}

// Lookup retrieves a value only if it is live and of the expected type.
func (t *Table) Lookup(h Handle, typeID TypeID) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return nil, err
	}
	if e.typeID != typeID {
		return nil, errors.InvalidHandle(uint32(h), fmt.Sprintf("handle has type %d, want %d", e.typeID, typeID))
	}
	return e.value, nil
}

// TypeOf returns the type of a live handle.
func (t *Table) TypeOf(h Handle) (TypeID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return 0, false
	}
	return e.typeID, true
}

// Parent returns the parent of a live view, or 0 for an owned entry.
func (t *Table) Parent(h Handle) (Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return 0, false
	}
	return e.parent, true
}

// Borrow pins a handle for the duration of a call. Pinned handles cannot be
// removed until every borrow is returned.
func (t *Table) Borrow(h Handle, typeID TypeID) (any, error) {
	value, err := t.pin(h, typeID)
	if err != nil {
		return nil, err
	}

	t.notify(Event{Type: EventBorrowed, Handle: h, TypeID: typeID, Value: value})
	return value, nil
}

func (t *Table) pin(h Handle, typeID TypeID) (any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return nil, err
	}
	if e.typeID != typeID {
		return nil, errors.InvalidHandle(uint32(h), fmt.Sprintf("handle has type %d, want %d", e.typeID, typeID))
	}
	e.borrows++
	return e.value, nil
}

// ReturnBorrow releases one pin taken by Borrow.
func (t *Table) ReturnBorrow(h Handle) bool {
	ev, ok := t.unpin(h)
	if ok {
		t.notify(ev)
	}
	return ok
}

func (t *Table) unpin(h Handle) (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil || e.borrows == 0 {
		return Event{}, false
	}
	e.borrows--
	return Event{Type: EventBorrowReturned, Handle: h, TypeID: e.typeID, Value: e.value}, true
}

// Remove releases an entry and, for owned entries, every view taken of it.
func (t *Table) Remove(h Handle) (any, error) {
	value, events, err := t.remove(h)
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		t.notify(ev)
	}
	return value, nil
}

func (t *Table) remove(h Handle) (any, []Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, err := t.resolveLocked(h)
	if err != nil {
		return nil, nil, err
	}
	if e.borrows > 0 {
		return nil, nil, errors.InvalidHandle(uint32(h), fmt.Sprintf("%d outstanding borrows", e.borrows))
	}
	value := e.value
	return value, t.removeLocked(h, nil), nil
}

// removeLocked frees the slot of a resolved handle and cascades to views.
func (t *Table) removeLocked(h Handle, events []Event) []Event {
	e := &t.entries[h.slot()]
	views := e.views

	events = append(events, Event{Type: EventDropped, Handle: h, Parent: e.parent, TypeID: e.typeID, Value: e.value})

	if e.parent != 0 {
		if p, err := t.resolveLocked(e.parent); err == nil {
			for i, v := range p.views {
				if v == h {
					p.views = append(p.views[:i], p.views[i+1:]...)
					break
				}
			}
		}
	}

	e.value = nil
	e.views = nil
	e.parent = 0
	e.borrows = 0
	e.live = false
	e.gen++
	t.live--
	t.free = append(t.free, h.slot())

	for _, v := range views {
		if _, err := t.resolveLocked(v); err == nil {
			events = t.removeLocked(v, events)
		}
	}
	return events
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live entries, views included.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Each iterates over live entries in slot order.
func (t *Table) Each(fn func(Handle, TypeID, any) bool) {
	t.mu.Lock()
	type item struct {
		value  any
		h      Handle
		typeID TypeID
	}
	items := make([]item, 0, t.live)
	for i := range t.entries {
		if e := &t.entries[i]; e.live {
			items = append(items, item{h: makeHandle(i, e.gen), typeID: e.typeID, value: e.value})
		}
	}
	t.mu.Unlock()

	for _, it := range items {
		if !fn(it.h, it.typeID, it.value) {
			return
		}
	}
}

// Clear releases every entry, ignoring outstanding borrows.
func (t *Table) Clear() {
	for _, ev := range t.clear() {
		t.notify(ev)
	}
}

func (t *Table) clear() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var events []Event
	for i := range t.entries {
		e := &t.entries[i]
		if e.live && e.parent == 0 {
			events = t.removeLocked(makeHandle(i, e.gen), events)
		}
	}
	return events
}

// Close releases all entries and stops accepting new ones.
func (t *Table) Close() error {
	t.Clear()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.entries = nil
	t.free = nil
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
