// Package kafka implements a stayindex.Source reading listing rows from
// a kafka consumer group, for keeping the indexes current between full
// extract loads. Each message value is one delimiter-separated row with
// the same columns as the CSV extract; the header either comes from the
// HeaderRow option or from the first message consumed.
package kafka

import (
	"io"
	"io/ioutil"
	"log"

	"github.com/Shopify/sarama"
	cluster "github.com/bsm/sarama-cluster"
	"github.com/pkg/errors"

	"github.com/stayindex/stayindex/csv"
)

// Source implements the stayindex.Source interface using kafka as a row
// source.
type Source struct {
	Hosts     []string
	Topics    []string
	Group     string
	Delimiter rune
	// HeaderRow, when nonempty, supplies the column names. Otherwise the
	// first message consumed is treated as the header row.
	HeaderRow string
	// MaxMsgs bounds the number of row messages consumed; 0 means
	// unbounded.
	MaxMsgs int

	numMsgs  int
	header   []string
	consumer *cluster.Consumer
}

// NewSource gets a new Source with defaults.
func NewSource() *Source {
	return &Source{
		Hosts:     []string{"localhost:9092"},
		Topics:    []string{"listings"},
		Group:     "stayindex",
		Delimiter: ',',
	}
}

// Open initializes the kafka consumer.
func (s *Source) Open() error {
	sarama.Logger = log.New(ioutil.Discard, "", 0)
	config := cluster.NewConfig()
	config.Config.Version = sarama.V0_10_0_0
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Group.Return.Notifications = true

	var err error
	s.consumer, err = cluster.NewConsumer(s.Hosts, s.Group, s.Topics, config)
	if err != nil {
		return errors.Wrap(err, "getting new consumer")
	}

	go func() {
		for err := range s.consumer.Errors() {
			log.Printf("kafka consumer error: %v", err)
		}
	}()
	go func() {
		for note := range s.consumer.Notifications() {
			log.Printf("kafka rebalance: %+v", note)
		}
	}()
	return nil
}

// Header returns the column names, consuming the first message when no
// HeaderRow was configured.
func (s *Source) Header() ([]string, error) {
	if s.header != nil {
		return s.header, nil
	}
	if s.HeaderRow != "" {
		s.header = csv.Split(s.HeaderRow, s.Delimiter)
		return s.header, nil
	}
	line, err := s.next()
	if err != nil {
		return nil, errors.Wrap(err, "consuming header message")
	}
	s.header = csv.Split(line, s.Delimiter)
	return s.header, nil
}

// Row returns the cells of the next row message, or io.EOF once MaxMsgs
// is reached.
func (s *Source) Row() ([]string, error) {
	line, err := s.next()
	if err != nil {
		return nil, err
	}
	return csv.Split(line, s.Delimiter), nil
}

func (s *Source) next() (string, error) {
	if s.MaxMsgs > 0 {
		s.numMsgs++
		if s.numMsgs > s.MaxMsgs {
			return "", io.EOF
		}
	}
	msg, ok := <-s.consumer.Messages()
	if !ok {
		return "", io.EOF
	}
	s.consumer.MarkOffset(msg, "") // mark message as processed
	return string(msg.Value), nil
}

// Close shuts down the consumer.
func (s *Source) Close() error {
	return errors.Wrap(s.consumer.Close(), "closing consumer")
}
