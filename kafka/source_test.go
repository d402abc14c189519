package kafka

import (
	"reflect"
	"testing"
)

func TestHeaderFromHeaderRow(t *testing.T) {
	s := NewSource()
	s.HeaderRow = `id,name,"host location"`

	header, err := s.Header()
	if err != nil {
		t.Fatalf("reading header: %v", err)
	}
	want := []string{"id", "name", "host location"}
	if !reflect.DeepEqual(header, want) {
		t.Fatalf("header = %v, want %v", header, want)
	}

	// repeated calls return the cached header without touching kafka
	again, err := s.Header()
	if err != nil {
		t.Fatalf("rereading header: %v", err)
	}
	if !reflect.DeepEqual(again, want) {
		t.Fatalf("header changed on second read: %v", again)
	}
}

func TestHeaderRowCustomDelimiter(t *testing.T) {
	s := NewSource()
	s.Delimiter = ';'
	s.HeaderRow = "id;name"

	header, err := s.Header()
	if err != nil {
		t.Fatalf("reading header: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"id", "name"}) {
		t.Fatalf("header = %v", header)
	}
}
