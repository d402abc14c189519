package kafka

import (
	"github.com/pkg/errors"

	"github.com/stayindex/stayindex"
	"github.com/stayindex/stayindex/ingest"
)

// Main wraps ingest.Main, swapping the CSV source for a kafka consumer
// group. Streaming runs always upsert into existing indexes, so the mode
// is pinned to update.
type Main struct {
	ingest.Main `flag:"!embed"`

	Hosts   []string `help:"Kafka broker addresses."`
	Topics  []string `help:"Topics carrying listing rows."`
	Group   string   `help:"Consumer group name."`
	Header  string   `help:"Delimiter-separated column names; when empty the first message is the header."`
	MaxMsgs int      `help:"Stop after this many row messages (0 = run until the stream closes)."`
}

// NewMain returns a Main with the default configuration.
func NewMain() *Main {
	m := &Main{
		Main:   *ingest.NewMain(),
		Hosts:  []string{"localhost:9092"},
		Topics: []string{"listings"},
		Group:  "stayindex",
	}
	m.Mode = "update"
	m.Main.NewSource = func() (stayindex.Source, error) {
		delim := []rune(m.Delimiter)
		if len(delim) != 1 {
			return nil, errors.Errorf("delimiter must be a single character, got %q", m.Delimiter)
		}
		src := NewSource()
		src.Hosts = m.Hosts
		src.Topics = m.Topics
		src.Group = m.Group
		src.Delimiter = delim[0]
		src.HeaderRow = m.Header
		src.MaxMsgs = m.MaxMsgs
		if err := src.Open(); err != nil {
			return nil, errors.Wrap(err, "opening kafka source")
		}
		return src, nil
	}
	return m
}

// Run executes the streaming ingestion.
func (m *Main) Run() error {
	if m.Mode != "update" {
		return errors.New("kafka ingestion only supports update mode")
	}
	return m.Main.Run()
}
