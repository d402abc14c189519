// Package index implements the dual-destination writer: two bleve
// indexes (properties and hosts), each paired with a taxonomy store that
// assigns stable ordinals to facet labels. The two destinations commit
// independently; nothing here pretends to be a cross-store transaction.
package index

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/pkg/errors"

	"github.com/stayindex/stayindex"
)

// Directory names under the index root, shared with the search side.
const (
	PropertiesDir     = "index_properties"
	HostsDir          = "index_hosts"
	TaxoPropertiesDir = "taxo_properties"
	TaxoHostsDir      = "taxo_hosts"
)

// facetSuffix is appended to a facet dimension to name the keyword field
// holding its label on the document.
const facetSuffix = "_facet"

// Mode controls how existing on-disk stores are treated at open.
const (
	ModeBuild   = "build"
	ModeUpdate  = "update"
	ModeRebuild = "rebuild"
)

// Config configures Open.
type Config struct {
	// Root is the directory under which the two indexes and their
	// taxonomies live.
	Root string
	// Mode is build (create fresh), update (open or create, upsert into
	// it), or rebuild (create fresh, gated by Force).
	Mode string
	// Force permits the destructive pre-clean required by rebuild.
	Force bool
	// NewTaxonomy opens the taxonomy store for a destination at the given
	// path (a file for the bolt backend, a directory for leveldb).
	NewTaxonomy func(path string) (stayindex.Taxonomy, error)
}

type dest struct {
	name  string
	idx   bleve.Index
	batch *bleve.Batch
	taxo  stayindex.Taxonomy
}

// Writer applies documents to the two destinations. It implements
// stayindex.Indexer.
type Writer struct {
	dests [2]*dest
}

var _ stayindex.Indexer = (*Writer)(nil)

// Open prepares both destinations according to cfg. Pre-cleaning for
// build/rebuild is a best-effort, non-atomic directory removal: a crash
// mid-removal leaves an inconsistent on-disk state with no rollback.
func Open(cfg Config) (*Writer, error) {
	switch cfg.Mode {
	case ModeBuild, ModeUpdate, ModeRebuild:
	default:
		return nil, errors.Errorf("unknown mode %q (want build, update, or rebuild)", cfg.Mode)
	}
	if cfg.Mode == ModeRebuild && !cfg.Force {
		return nil, errors.New("rebuild deletes the existing indexes; re-run with force to confirm")
	}
	if cfg.NewTaxonomy == nil {
		return nil, errors.New("open requires a taxonomy constructor")
	}
	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		return nil, errors.Wrap(err, "creating index root")
	}

	fresh := cfg.Mode == ModeBuild || cfg.Mode == ModeRebuild
	if fresh {
		for _, dir := range []string{PropertiesDir, HostsDir, TaxoPropertiesDir, TaxoHostsDir} {
			// Best effort; a leftover that survives will fail the open below.
			_ = os.RemoveAll(filepath.Join(cfg.Root, dir))
		}
	}

	w := &Writer{}
	specs := []struct {
		dest     stayindex.Destination
		indexDir string
		taxoDir  string
		mapping  mapping.IndexMapping
	}{
		{stayindex.Properties, PropertiesDir, TaxoPropertiesDir, propertiesMapping()},
		{stayindex.Hosts, HostsDir, TaxoHostsDir, hostsMapping()},
	}
	for _, spec := range specs {
		idx, err := openIndex(filepath.Join(cfg.Root, spec.indexDir), spec.mapping, fresh)
		if err != nil {
			w.closeOpened()
			return nil, errors.Wrapf(err, "opening %s index", spec.dest)
		}
		taxo, err := cfg.NewTaxonomy(filepath.Join(cfg.Root, spec.taxoDir))
		if err != nil {
			idx.Close()
			w.closeOpened()
			return nil, errors.Wrapf(err, "opening %s taxonomy", spec.dest)
		}
		w.dests[spec.dest] = &dest{
			name:  spec.dest.String(),
			idx:   idx,
			batch: idx.NewBatch(),
			taxo:  taxo,
		}
	}
	return w, nil
}

func openIndex(path string, im mapping.IndexMapping, fresh bool) (bleve.Index, error) {
	if fresh {
		idx, err := bleve.New(path, im)
		return idx, errors.Wrap(err, "creating index")
	}
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, im)
	}
	return idx, errors.Wrap(err, "opening index")
}

func (w *Writer) closeOpened() {
	for _, d := range w.dests {
		if d == nil {
			continue
		}
		d.idx.Close()
		d.taxo.Close()
	}
}

// Upsert replaces any stored document keyed by key in the chosen
// destination with doc. Every facet label (including each hierarchical
// prefix) is registered with the destination's taxonomy before the
// document is queued, so query-time aggregation can resolve labels via
// stable ordinals. The write is pending until Commit.
func (w *Writer) Upsert(d stayindex.Destination, key string, doc *stayindex.Document) error {
	ds := w.dests[d]

	fields := make(map[string]interface{}, len(doc.Fields)+len(doc.Facets))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	for _, facet := range doc.Facets {
		for i := range facet.Path {
			label := strings.Join(facet.Path[:i+1], "/")
			if _, err := ds.taxo.GetID(facet.Dim, []byte(label)); err != nil {
				return errors.Wrapf(err, "registering facet %s=%q", facet.Dim, label)
			}
		}
		fields[facet.Dim+facetSuffix] = strings.Join(facet.Path, "/")
	}

	ds.batch.Delete(key)
	return errors.Wrap(ds.batch.Index(key, fields), "queueing document")
}

// Commit durably applies the destination's pending batch.
func (w *Writer) Commit(d stayindex.Destination) error {
	ds := w.dests[d]
	if ds.batch.Size() == 0 {
		return nil
	}
	if err := ds.idx.Batch(ds.batch); err != nil {
		return errors.Wrapf(err, "committing %s", ds.name)
	}
	ds.batch.Reset()
	return nil
}

// Close commits any pending work on both destinations, then closes both
// indexes and both taxonomy stores. All of them are attempted; the first
// error wins.
func (w *Writer) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	for _, d := range []stayindex.Destination{stayindex.Properties, stayindex.Hosts} {
		if w.dests[d] == nil {
			continue
		}
		keep(w.Commit(d))
	}
	for _, d := range w.dests {
		if d == nil {
			continue
		}
		keep(errors.Wrapf(d.idx.Close(), "closing %s index", d.name))
		keep(errors.Wrapf(d.taxo.Close(), "closing %s taxonomy", d.name))
	}
	return first
}

// Index exposes the underlying bleve index of a destination, for the
// search side and for tests.
func (w *Writer) Index(d stayindex.Destination) bleve.Index {
	return w.dests[d].idx
}

// Taxonomy exposes the taxonomy store paired with a destination.
func (w *Writer) Taxonomy(d stayindex.Destination) stayindex.Taxonomy {
	return w.dests[d].taxo
}
