package source

// ChangeKind discriminates the change records carried by collection
// events. One dispatch carries an ordered slice of changes: a single
// unheld mutation produces a one-element slice, a released hold produces
// the whole buffered run in arrival order.
type ChangeKind uint8

const (
	ChangeSet ChangeKind = iota
	ChangeInsert
	ChangeDelete
	ChangeClear
	ChangeAdd
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSet:
		return "set"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeClear:
		return "clear"
	case ChangeAdd:
		return "add"
	default:
		return "unknown"
	}
}

// ArrayChange describes one mutation of an array source. Delete carries
// the removed value.
type ArrayChange[T any] struct {
	Kind  ChangeKind
	Index int
	Value T
}

// MapChange describes one mutation of a map or associative record source.
type MapChange[K comparable, V any] struct {
	Kind  ChangeKind
	Key   K
	Value V
}

// SetChange describes one mutation of a set source.
type SetChange[T comparable] struct {
	Kind  ChangeKind
	Value T
}

// FieldChange describes one changed field of a fixed-shape record source.
type FieldChange struct {
	Kind  ChangeKind
	Field string
	Value any
}
