package catalog

// ObjectID identifies a single catalog object (table, column, index, ...)
// within its owning scope. It is a typed wrapper rather than a bare
// uint64 so that table, column, and database identifiers cannot be
// silently swapped for one another at call sites — the same "typed id"
// idiom the dittofs-style manifest reference uses for its content ids,
// adapted here for catalog object identity instead of content-addressed
// blobs.
type ObjectID uint64

// InvalidObjectID is the zero value, never assigned to a real object.
const InvalidObjectID ObjectID = 0

// DmlOperationType classifies the write that produced a master-column
// (TRID) record: an insert, an update of an existing row, or a delete.
type DmlOperationType uint8

const (
	DmlInsert DmlOperationType = iota
	DmlUpdate
	DmlDelete
)

func (t DmlOperationType) String() string {
	switch t {
	case DmlInsert:
		return "Insert"
	case DmlUpdate:
		return "Update"
	case DmlDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}
