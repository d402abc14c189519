package stayindex

// Facet is a categorical label attached to a document. Path has one
// element for flat facets and two for the hierarchical property-type
// facet (family, normalized type). Every path component must be
// registered with the destination's Taxonomy before the document is
// written.
type Facet struct {
	Dim  string
	Path []string
}

// Document is a transient value object produced by the builders and
// consumed by an Indexer. Fields map field names to typed values the
// index mapping understands; Facets carry the labels destined for the
// taxonomy store.
type Document struct {
	Fields map[string]interface{}
	Facets []Facet
}

func newDocument() *Document {
	return &Document{Fields: make(map[string]interface{})}
}

func (d *Document) addFacet(dim string, path ...string) {
	d.Facets = append(d.Facets, Facet{Dim: dim, Path: path})
}
