// Package ingest wires a row source, the dual index writer, and the
// Ingester together under one flag-bindable configuration struct.
package ingest

import (
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/stayindex/stayindex"
	"github.com/stayindex/stayindex/aws/s3"
	"github.com/stayindex/stayindex/boltdb"
	"github.com/stayindex/stayindex/csv"
	"github.com/stayindex/stayindex/index"
	"github.com/stayindex/stayindex/leveldb"
)

// Main holds the configuration surface of an ingestion run. Exported
// fields are bound to flags by commandeer in the cmd package.
type Main struct {
	Input     string `help:"Path or URL of the listings extract (local file, http(s)://, or s3://)."`
	IndexRoot string `help:"Directory where the two indexes and their taxonomies live."`
	Mode      string `help:"Ingestion mode: build, update, or rebuild."`
	Delimiter string `help:"CSV cell delimiter (single character)."`
	Encoding  string `help:"IANA name of the input character encoding."`
	IDField   string `flag:"id-field" help:"Name of the mandatory listing id column."`
	MaxErrors int    `help:"Maximum row errors before the run is reported as failed."`
	BatchSize int    `help:"Rows between periodic commits of both destinations."`
	Taxonomy  string `help:"Taxonomy store backend: bolt or leveldb."`
	DryRun    bool   `help:"Run the full pipeline but skip persistence."`
	Force     bool   `help:"Permit the destructive pre-clean required by rebuild."`
	AWSRegion string `flag:"aws-region" help:"AWS region for s3:// inputs."`

	// NewSource, when set, overrides the CSV source built from Input.
	// The kafka package uses this to feed the same pipeline from a
	// consumer group.
	NewSource func() (stayindex.Source, error)
}

// NewMain returns a Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Mode:      index.ModeBuild,
		Delimiter: ",",
		Encoding:  "utf-8",
		IDField:   stayindex.DefaultIDField,
		MaxErrors: stayindex.DefaultMaxErrors,
		BatchSize: stayindex.DefaultBatchSize,
		Taxonomy:  "bolt",
	}
}

// Run executes one ingestion run: open the source (fatal before any
// write when the input is missing), open both destinations per Mode,
// stream every row through the builders, and report the final counts.
func (m *Main) Run() error {
	if m.IndexRoot == "" {
		return errors.New("index-root is required")
	}

	src, err := m.source()
	if err != nil {
		return err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	newTaxo, err := m.taxonomyConstructor()
	if err != nil {
		return err
	}
	writer, err := index.Open(index.Config{
		Root:        m.IndexRoot,
		Mode:        m.Mode,
		Force:       m.Force,
		NewTaxonomy: newTaxo,
	})
	if err != nil {
		return errors.Wrap(err, "opening index writer")
	}

	ingester := stayindex.NewIngester(src, writer)
	ingester.IDField = m.IDField
	ingester.MaxErrors = m.MaxErrors
	ingester.BatchSize = m.BatchSize
	ingester.DryRun = m.DryRun

	res, runErr := ingester.Run()
	closeErr := writer.Close()

	log.Printf("indexed %d properties and %d hosts from %d rows (%d errors) in %v",
		res.Properties, res.Hosts, res.Rows, res.Errors, res.Elapsed)
	if runErr != nil {
		return errors.Wrap(runErr, "ingesting")
	}
	return errors.Wrap(closeErr, "closing indexes")
}

func (m *Main) source() (stayindex.Source, error) {
	if m.NewSource != nil {
		return m.NewSource()
	}
	if m.Input == "" {
		return nil, errors.New("input is required")
	}
	delim := []rune(m.Delimiter)
	if len(delim) != 1 {
		return nil, errors.Errorf("delimiter must be a single character, got %q", m.Delimiter)
	}

	var opener csv.Opener = csv.URLOpener(m.Input)
	if strings.HasPrefix(m.Input, "s3://") {
		s3Opener, err := s3.ParseURL(m.Input, m.AWSRegion)
		if err != nil {
			return nil, err
		}
		opener = s3Opener
	}

	src, err := csv.NewSource(
		csv.WithOpener(opener),
		csv.WithDelimiter(delim[0]),
		csv.WithEncoding(m.Encoding),
	)
	return src, errors.Wrapf(err, "opening input %s", m.Input)
}

func (m *Main) taxonomyConstructor() (func(path string) (stayindex.Taxonomy, error), error) {
	switch m.Taxonomy {
	case "bolt":
		return func(path string) (stayindex.Taxonomy, error) {
			return boltdb.NewTaxonomy(path)
		}, nil
	case "leveldb":
		return func(path string) (stayindex.Taxonomy, error) {
			return leveldb.NewTaxonomy(path)
		}, nil
	default:
		return nil, errors.Errorf("unknown taxonomy backend %q (want bolt or leveldb)", m.Taxonomy)
	}
}
