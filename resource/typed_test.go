package resource

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

type zone struct{ id string }

func TestTyped(t *testing.T) {
	table := NewTable()
	zones := NewTyped[*zone](table, 7)
	names := NewTyped[string](table, 8)

	h, err := zones.Insert(&zone{id: "UTC"})
	if err != nil {
		t.Fatal(err)
	}
	z, err := zones.Get(h)
	if err != nil || z.id != "UTC" {
		t.Fatalf("Get: %v, %v", z, err)
	}

	if _, err := names.Get(h); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("cross-type Get: got %v", err)
	}
	if _, err := names.Remove(h); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("cross-type Remove: got %v", err)
	}

	v, err := names.InsertView(h, "UTC")
	if err != nil {
		t.Fatal(err)
	}
	if zones.Len() != 1 || names.Len() != 1 {
		t.Fatalf("Len: zones=%d names=%d", zones.Len(), names.Len())
	}

	got, done, err := zones.Borrow(h)
	if err != nil || got.id != "UTC" {
		t.Fatalf("Borrow: %v, %v", got, err)
	}
	if _, err := zones.Remove(h); err == nil {
		t.Fatal("Remove while borrowed must fail")
	}
	done()

	if _, err := zones.Remove(h); err != nil {
		t.Fatal(err)
	}
	if _, err := names.Get(v); errors.KindOf(err) != errors.KindInvalidHandle {
		t.Fatalf("view outlived parent: %v", err)
	}
}
