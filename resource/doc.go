// Package resource provides the handle table behind every owned value and
// borrowed view that crosses the boundary.
//
// # Handles
//
// A Handle is a u32 token: slot index plus one in the low 24 bits and a
// generation stamp in the high 8 bits. Handle 0 is never issued. Releasing
// an entry bumps the slot's generation, so a stale handle is detected until
// the slot has been reused 256 times. Detection is best effort; using a
// released handle remains a caller contract violation.
//
//	table := resource.NewTable()
//	h, err := table.Insert(typeID, value)
//	v, err := table.Lookup(h, typeID)
//	_, err = table.Remove(h)
//
// # Type Safety
//
// Each kind of value gets a TypeID. Typed binds one to a Go type:
//
//	zones := resource.NewTyped[*temporal.TimeZone](table, TypeTimeZone)
//	h, _ := zones.Insert(tz)
//	tz, err := zones.Get(h)
//
// # Views
//
// InsertView records an entry that borrows from a live parent. Removing the
// parent removes its views in the same step, after which every read through
// the view fails with an invalid-handle error rather than returning stale data.
//
// # Borrows
//
// Borrow pins an entry for the duration of a call; Remove refuses pinned
// entries. Pins are call-scoped and never cross the boundary.
//
// # Observers
//
// Register observers to track lifecycle events. NewMetricsObserver exports
// them as Prometheus counters and gauges:
//
//	obs, err := resource.NewMetricsObserver(reg, "temporal", names)
//	table.Subscribe(obs)
//
// # Memory Management
//
// Entries are not garbage collected. Callers release them explicitly, or
// call Close to release everything when the owning surface shuts down.
package resource
