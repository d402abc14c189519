// Package csv reads delimiter-separated listing extracts as logical
// rows. A logical row may span multiple physical lines when a quoted
// field contains newlines; the reader folds those lines back together by
// tracking quote parity. It is not a drop-in for encoding/csv: the
// parser is deliberately lenient (an unbalanced quote at end of stream
// yields the accumulated partial row rather than an error) because real
// listing extracts are ragged.
package csv

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Opener is a resource which can be opened for reading: a local file, an
// HTTP URL, an S3 object. The returned ReadCloser reads from the
// beginning of the resource.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// URLOpener turns a URL or file path (string) into an Opener.
type URLOpener string

// Open opens the URL via HTTP when it has an http(s) scheme, otherwise as
// a local file.
func (u URLOpener) Open() (io.ReadCloser, error) {
	url := string(u)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		resp, err := http.Get(url)
		if err != nil {
			return nil, errors.Wrap(err, "getting via http")
		}
		return resp.Body, nil
	}
	f, err := os.Open(url)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}

func (u URLOpener) String() string { return string(u) }

// Source yields the logical rows of one extract: Header returns the
// column names read eagerly at construction, Row returns the cells of
// each subsequent row and io.EOF at end of stream. A Source is lazy,
// finite, and not restartable.
type Source struct {
	delimiter rune
	encoding  string
	opener    Opener

	rc     io.ReadCloser
	scan   *bufio.Scanner
	header []string
}

// Option is a functional option to pass to NewSource.
type Option func(*Source)

// WithDelimiter sets the cell delimiter (default ',').
func WithDelimiter(d rune) Option {
	return func(s *Source) { s.delimiter = d }
}

// WithEncoding sets the IANA name of the input character encoding
// (default utf-8).
func WithEncoding(name string) Option {
	return func(s *Source) { s.encoding = name }
}

// WithOpener sets the Opener providing the raw byte stream. URLOpener
// covers files and HTTP; the aws/s3 package provides one for s3://
// objects.
func WithOpener(o Opener) Option {
	return func(s *Source) { s.opener = o }
}

// NewSource opens the input and reads its header row. The error is fatal:
// no destination has been touched yet when it is returned.
func NewSource(opts ...Option) (*Source, error) {
	s := &Source{delimiter: ','}
	for _, opt := range opts {
		opt(s)
	}
	if s.opener == nil {
		return nil, errors.New("source requires an opener")
	}

	rc, err := s.opener.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	s.rc = rc

	var r io.Reader = rc
	if s.encoding != "" && !strings.EqualFold(s.encoding, "utf-8") && !strings.EqualFold(s.encoding, "utf8") {
		enc, err := ianaindex.IANA.Encoding(s.encoding)
		if err != nil || enc == nil {
			rc.Close()
			return nil, errors.Errorf("unknown encoding %q", s.encoding)
		}
		r = transform.NewReader(rc, enc.NewDecoder())
	}

	s.scan = bufio.NewScanner(r)
	s.scan.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	headerLine, err := s.logicalRow()
	if err == io.EOF {
		rc.Close()
		return nil, errors.New("input is empty")
	}
	if err != nil {
		rc.Close()
		return nil, errors.Wrap(err, "reading header")
	}
	s.header = Split(headerLine, s.delimiter)
	return s, nil
}

// Header returns the column names of the extract.
func (s *Source) Header() ([]string, error) {
	return s.header, nil
}

// Row returns the cells of the next logical row, or io.EOF.
func (s *Source) Row() ([]string, error) {
	line, err := s.logicalRow()
	if err != nil {
		return nil, err
	}
	return Split(line, s.delimiter), nil
}

// Close closes the underlying stream.
func (s *Source) Close() error {
	return s.rc.Close()
}

// logicalRow reads one logical row: a physical line, plus - while its
// unescaped quote count is odd - every following physical line joined by
// newline. At end of stream with unbalanced quotes the partial row is
// returned as-is. Empty physical lines outside a quoted region are
// skipped.
func (s *Source) logicalRow() (string, error) {
	for {
		if !s.scan.Scan() {
			if err := s.scan.Err(); err != nil {
				return "", errors.Wrap(err, "scanning input")
			}
			return "", io.EOF
		}
		line := s.scan.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		quotes := countUnescapedQuotes(line)
		if quotes%2 == 0 {
			return line, nil
		}

		var row strings.Builder
		row.WriteString(line)
		for quotes%2 != 0 {
			if !s.scan.Scan() {
				if err := s.scan.Err(); err != nil {
					return "", errors.Wrap(err, "scanning continuation line")
				}
				// End of stream inside a quoted field: keep what we have.
				break
			}
			next := s.scan.Text()
			row.WriteByte('\n')
			row.WriteString(next)
			quotes += countUnescapedQuotes(next)
		}
		return row.String(), nil
	}
}

// countUnescapedQuotes counts the double-quote characters in line that
// toggle quoting state. A doubled quote ("") is one literal quote and
// does not count.
func countUnescapedQuotes(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		if i+1 < len(line) && line[i+1] == '"' {
			i++
			continue
		}
		count++
	}
	return count
}

// Split splits one logical row into cells on the delimiter, respecting
// quotes. Doubled quotes inside a quoted cell unescape to a single
// literal quote. Quote characters themselves are not part of the cell
// value.
func Split(line string, delimiter rune) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delimiter && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	out = append(out, cur.String())
	return out
}
