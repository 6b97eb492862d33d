package resource

// Handle is an opaque reference to a table entry. The low 24 bits hold the
// slot index plus one, the high 8 bits a generation stamp that changes every
// time the slot is released. Handle 0 is reserved and always invalid.
type Handle uint32

const (
	slotBits = 24
	slotMask = 1<<slotBits - 1

	// MaxSlots is the number of simultaneously live entries a table holds.
	MaxSlots = slotMask
)

func makeHandle(slot int, gen uint8) Handle {
	return Handle(uint32(gen)<<slotBits | uint32(slot+1))
}

// slot returns the entry index, or -1 for the null handle.
func (h Handle) slot() int {
	return int(uint32(h)&slotMask) - 1
}

// Generation returns the stamp of the slot occupancy the handle was issued for.
func (h Handle) Generation() uint8 {
	return uint8(uint32(h) >> slotBits)
}

// TypeID distinguishes the kinds of value stored in one table.
type TypeID uint32

// EventType identifies a resource lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	}
	return "unknown"
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Parent Handle // non-zero for borrowed views
	TypeID TypeID
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
// Observers run after the table lock is released and may call back into it.
type Observer interface {
	OnResourceEvent(Event)
}

