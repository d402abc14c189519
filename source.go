package stayindex

// Source is the interface for getting listing rows one at a time. Header
// returns the column names of the extract; Row returns the cells of the
// next logical row and io.EOF once the input is exhausted. Sources are
// lazy, finite, and not restartable.
type Source interface {
	Header() ([]string, error)
	Row() ([]string, error)
}

// Destination selects one of the two index sinks managed by an Indexer.
type Destination int

const (
	// Properties is the per-listing destination, keyed by the listing id.
	Properties Destination = iota
	// Hosts is the per-host destination, keyed by host_id.
	Hosts
)

func (d Destination) String() string {
	if d == Hosts {
		return "hosts"
	}
	return "properties"
}

// Indexer applies documents to the two destinations and their paired
// taxonomy stores. Upsert replaces any stored document whose key field
// matches key - atomic from the caller's view, pending Commit from
// storage's view. The two destinations commit independently; there is no
// transaction spanning both.
type Indexer interface {
	Upsert(dest Destination, key string, doc *Document) error
	Commit(dest Destination) error
	Close() error
}

// Taxonomy maps facet label strings to small stable ordinals for
// query-time aggregation, and back. Ordinals are monotonic per dimension
// and persist across runs.
type Taxonomy interface {
	// GetID returns the ordinal for label in dim, assigning a new one on
	// first sight.
	GetID(dim string, label []byte) (uint64, error)
	// Get returns the label previously mapped to id in dim.
	Get(dim string, id uint64) ([]byte, error)
	Close() error
}
