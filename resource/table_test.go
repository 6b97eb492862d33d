package resource

import (
	"testing"
	"time"

	"github.com/wippyai/temporal-capi/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func mustInsert(t *testing.T, table *Table, typeID TypeID, v any) Handle {
	t.Helper()
	h, err := table.Insert(typeID, v)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return h
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := mustInsert(t, table, 1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok || val != "test" {
		t.Fatalf("Get: got %v, %v", val, ok)
	}

	if _, err := table.Lookup(h, 1); err != nil {
		t.Fatalf("Lookup with correct type failed: %v", err)
	}
	if _, err := table.Lookup(h, 2); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("Lookup with wrong type: got %v", err)
	}

	val, err := table.Remove(h)
	if err != nil || val != "test" {
		t.Fatalf("Remove: got %v, %v", val, err)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_NullHandle(t *testing.T) {
	table := NewTable()
	if _, ok := table.Get(0); ok {
		t.Fatal("handle 0 must be invalid")
	}
	if _, err := table.Remove(0); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("Remove(0): got %v", err)
	}
	if _, err := table.Lookup(Handle(0x00ffffff), 1); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("Lookup of never-issued handle: got %v", err)
	}
}

func TestTable_ForgedHandles(t *testing.T) {
	table := NewTable()
	h := mustInsert(t, table, 1, "owner")

	forged := []Handle{1 << slotBits, 0xff000000, Handle(0x00ffffff)}
	for _, f := range forged {
		if _, ok := table.Get(f); ok {
			t.Errorf("Get(%#x) succeeded", uint32(f))
		}
		if _, err := table.Lookup(f, 1); errors.KindOf(err) != errors.KindInvalidHandle {
			t.Errorf("Lookup(%#x): got %v", uint32(f), err)
		}
		if _, err := table.Borrow(f, 1); errors.KindOf(err) != errors.KindInvalidHandle {
			t.Errorf("Borrow(%#x): got %v", uint32(f), err)
		}
		if table.ReturnBorrow(f) {
			t.Errorf("ReturnBorrow(%#x) succeeded", uint32(f))
		}
		if _, err := table.InsertView(f, 2, "view"); errors.KindOf(err) != errors.KindInvalidHandle {
			t.Errorf("InsertView(%#x): got %v", uint32(f), err)
		}
		if _, err := table.Remove(f); errors.KindOf(err) != errors.KindInvalidHandle {
			t.Errorf("Remove(%#x): got %v", uint32(f), err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := table.Insert(1, "after"); err != nil {
			t.Errorf("Insert after forged handles: %v", err)
		}
		if _, err := table.Remove(h); err != nil {
			t.Errorf("Remove after forged handles: %v", err)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("table locked after forged handles")
	}
}

func TestTable_GenerationDetectsStaleHandle(t *testing.T) {
	table := NewTable()

	h1 := mustInsert(t, table, 1, "first")
	if _, err := table.Remove(h1); err != nil {
		t.Fatal(err)
	}

	h2 := mustInsert(t, table, 1, "second")
	if h1.slot() != h2.slot() {
		t.Fatalf("expected slot reuse: %d vs %d", h1.slot(), h2.slot())
	}
	if h1 == h2 {
		t.Fatal("reused slot must carry a new generation")
	}
	if h2.Generation() != h1.Generation()+1 {
		t.Errorf("generation: got %d, want %d", h2.Generation(), h1.Generation()+1)
	}

	if _, ok := table.Get(h1); ok {
		t.Fatal("stale handle resolved to the new occupant")
	}
	if _, err := table.Remove(h1); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("second release: got %v", err)
	}
	if v, _ := table.Get(h2); v != "second" {
		t.Fatalf("new occupant damaged: %v", v)
	}
}

func TestTable_ViewsFollowParent(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	parent := mustInsert(t, table, 1, "zone")
	view, err := table.InsertView(parent, 2, "Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}

	if p, ok := table.Parent(view); !ok || p != parent {
		t.Fatalf("Parent: got %v, %v", p, ok)
	}
	if _, err := table.InsertView(view, 2, "nested"); err == nil {
		t.Fatal("view of a view must fail")
	}
	if v, err := table.Lookup(view, 2); err != nil || v != "Europe/Paris" {
		t.Fatalf("view read: %v, %v", v, err)
	}

	if _, err := table.Remove(parent); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Lookup(view, 2); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("view after parent release: got %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", table.Len())
	}

	var dropped []Handle
	for _, e := range obs.events {
		if e.Type == EventDropped {
			dropped = append(dropped, e.Handle)
		}
	}
	if len(dropped) != 2 || dropped[0] != parent || dropped[1] != view {
		t.Fatalf("dropped events: %v", dropped)
	}
}

func TestTable_ViewOfReleasedParent(t *testing.T) {
	table := NewTable()
	parent := mustInsert(t, table, 1, "zone")
	_, _ = table.Remove(parent)
	if _, err := table.InsertView(parent, 2, "x"); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("got %v", err)
	}
}

func TestTable_ReleaseViewKeepsParent(t *testing.T) {
	table := NewTable()
	parent := mustInsert(t, table, 1, "zone")
	view, _ := table.InsertView(parent, 2, "id")

	if _, err := table.Remove(view); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Get(parent); !ok {
		t.Fatal("parent released with its view")
	}
	if _, err := table.Remove(parent); err != nil {
		t.Fatal(err)
	}
}

func TestTable_Borrow(t *testing.T) {
	table := NewTable()
	h := mustInsert(t, table, 1, "value")

	if _, err := table.Borrow(h, 2); err == nil {
		t.Fatal("borrow with wrong type must fail")
	}
	if _, err := table.Borrow(h, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Remove(h); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("remove while borrowed: got %v", err)
	}
	if !table.ReturnBorrow(h) {
		t.Fatal("ReturnBorrow failed")
	}
	if table.ReturnBorrow(h) {
		t.Fatal("ReturnBorrow without borrow must fail")
	}
	if _, err := table.Remove(h); err != nil {
		t.Fatal(err)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := mustInsert(t, table, 1, "test")
	if len(obs.events) != 1 || obs.events[0].Type != EventCreated || obs.events[0].Handle != h {
		t.Fatalf("create events: %+v", obs.events)
	}

	_, _ = table.Remove(h)
	if len(obs.events) != 2 || obs.events[1].Type != EventDropped {
		t.Fatalf("drop events: %+v", obs.events)
	}

	table.Unsubscribe(obs)
	mustInsert(t, table, 1, "test2")
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_EachAndClear(t *testing.T) {
	table := NewTable()
	a := mustInsert(t, table, 1, "a")
	mustInsert(t, table, 2, "b")
	_, _ = table.InsertView(a, 3, "a-view")

	seen := map[TypeID]int{}
	table.Each(func(_ Handle, id TypeID, _ any) bool {
		seen[id]++
		return true
	})
	if seen[1] != 1 || seen[2] != 1 || seen[3] != 1 {
		t.Fatalf("Each: %v", seen)
	}

	table.Clear()
	if table.Len() != 0 {
		t.Fatalf("Len after Clear: %d", table.Len())
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	h := mustInsert(t, table, 1, "a")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := table.Insert(1, "c"); err == nil {
		t.Fatal("Expected Insert to fail after Close")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("handle survived Close")
	}
}

func TestHandleLayout(t *testing.T) {
	h := makeHandle(0, 0)
	if h != 1 {
		t.Fatalf("first handle: got %#x, want 1", uint32(h))
	}
	h = makeHandle(5, 3)
	if h.slot() != 5 || h.Generation() != 3 {
		t.Fatalf("got slot %d gen %d", h.slot(), h.Generation())
	}
	if uint32(h) != 3<<24|6 {
		t.Fatalf("encoding: got %#x", uint32(h))
	}
}
