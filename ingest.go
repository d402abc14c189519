package stayindex

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Defaults for the Ingester knobs, matching the CLI defaults.
const (
	DefaultIDField   = "id"
	DefaultMaxErrors = 100
	DefaultBatchSize = 5000
)

// Ingester drives rows from a Source through the document builders into
// an Indexer. It is single-threaded: one row is fully extracted, built,
// and written before the next is read.
type Ingester struct {
	// IDField is the name of the mandatory listing id column.
	IDField string
	// MaxErrors is the ceiling on row-level errors; once exceeded the run
	// aborts and is reported as failed even though committed work stands.
	MaxErrors int
	// BatchSize is the number of rows between periodic commits of both
	// destinations, bounding the uncommitted work lost on a crash.
	BatchSize int
	// DryRun runs the full pipeline but skips persistence and the
	// indexed-document counters.
	DryRun bool

	src     Source
	indexer Indexer
}

// NewIngester returns an Ingester with default knobs reading from src and
// writing to indexer.
func NewIngester(src Source, indexer Indexer) *Ingester {
	return &Ingester{
		IDField:   DefaultIDField,
		MaxErrors: DefaultMaxErrors,
		BatchSize: DefaultBatchSize,
		src:       src,
		indexer:   indexer,
	}
}

// Result carries the run-wide counters back to the caller.
type Result struct {
	Rows       int
	Properties int
	Hosts      int
	Errors     int
	Elapsed    time.Duration
}

// Run consumes the source to exhaustion. Row-level failures are logged
// with their row index, counted, and do not halt the stream; the run only
// aborts once the error count exceeds MaxErrors. Source and storage
// failures abort immediately. Both destinations receive a final commit on
// stream exhaustion; closing the indexer is the caller's responsibility.
func (n *Ingester) Run() (Result, error) {
	start := time.Now()
	res := Result{}
	done := func() Result {
		res.Elapsed = time.Since(start)
		return res
	}

	headerCells, err := n.src.Header()
	if err != nil {
		return done(), errors.Wrap(err, "reading header")
	}
	header := NewHeader(headerCells)

	// Host documents are built at most once per host id per run; first
	// occurrence wins. Sized by distinct hosts, not rows.
	seenHosts := make(map[string]struct{})

	sinceCommit := 0
	for {
		row, err := n.src.Row()
		if err == io.EOF {
			break
		}
		if err != nil {
			return done(), errors.Wrap(err, "reading row")
		}
		res.Rows++

		if err := n.processRow(header, row, seenHosts, &res); err != nil {
			res.Errors++
			log.Printf("row %d: %v", res.Rows, err)
			if res.Errors > n.MaxErrors {
				return done(), errors.Errorf("aborting after %d row errors (max %d)", res.Errors, n.MaxErrors)
			}
		}

		sinceCommit++
		if sinceCommit >= n.BatchSize {
			if err := n.commitBoth(); err != nil {
				return done(), err
			}
			sinceCommit = 0
		}
	}

	if err := n.commitBoth(); err != nil {
		return done(), err
	}

	res.Elapsed = time.Since(start)
	if res.Errors > n.MaxErrors {
		return res, errors.Errorf("run finished with %d row errors (max %d)", res.Errors, n.MaxErrors)
	}
	return res, nil
}

func (n *Ingester) processRow(header *Header, row []string, seenHosts map[string]struct{}, res *Result) error {
	idStr := header.Get(row, n.IDField)
	if strings.TrimSpace(idStr) == "" {
		return errors.Errorf("mandatory field %q missing", n.IDField)
	}

	// A non-integer id skips the property document but not the host.
	if doc := BuildProperty(header, row, n.IDField); doc != nil && !n.DryRun {
		if err := n.indexer.Upsert(Properties, idStr, doc); err != nil {
			return errors.Wrap(err, "upserting property")
		}
		res.Properties++
	}

	hostID := header.Get(row, "host_id")
	if strings.TrimSpace(hostID) == "" {
		return nil
	}
	if _, ok := seenHosts[hostID]; ok {
		return nil
	}
	if doc := BuildHost(header, row); doc != nil {
		seenHosts[hostID] = struct{}{}
		if !n.DryRun {
			if err := n.indexer.Upsert(Hosts, hostID, doc); err != nil {
				return errors.Wrap(err, "upserting host")
			}
			res.Hosts++
		}
	}
	return nil
}

func (n *Ingester) commitBoth() error {
	if n.DryRun {
		return nil
	}
	if err := n.indexer.Commit(Properties); err != nil {
		return errors.Wrap(err, "committing properties")
	}
	if err := n.indexer.Commit(Hosts); err != nil {
		return errors.Wrap(err, "committing hosts")
	}
	return nil
}
