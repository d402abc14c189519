package stayindex

import (
	"reflect"
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"3.0", 3, true}, // extracts carry integer columns in float form
		{"3.7", 3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
	}
	for _, tst := range tests {
		got, ok := parseInt(tst.in)
		if got != tst.want || ok != tst.ok {
			t.Fatalf("parseInt(%q) = %d, %v; want %d, %v", tst.in, got, ok, tst.want, tst.ok)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$275.00", 275, true},
		{"$1,250.00", 1250, true},
		{"150", 150, true},
		{"", 0, false},
		{"$", 0, false},
	}
	for _, tst := range tests {
		got, ok := parsePrice(tst.in)
		if got != tst.want || ok != tst.ok {
			t.Fatalf("parsePrice(%q) = %v, %v; want %v, %v", tst.in, got, ok, tst.want, tst.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	ms, ok := parseDate("2015-01-02")
	if !ok {
		t.Fatalf("expected 2015-01-02 to parse")
	}
	if ms != 1420156800000 {
		t.Fatalf("wrong epoch millis: %d", ms)
	}
	if _, ok := parseDate("not-a-date"); ok {
		t.Fatalf("expected parse failure")
	}
	if _, ok := parseDate(""); ok {
		t.Fatalf("expected parse failure on empty")
	}
}

func TestStripHTML(t *testing.T) {
	in := "cozy<br />bright<br>and&nbsp;quiet <b>keep this</b>"
	want := "cozy bright and quiet <b>keep this</b>"
	if got := stripHTML(in); got != want {
		t.Fatalf("stripHTML = %q, want %q", got, want)
	}
}

func TestParseSuperhost(t *testing.T) {
	truthy := []string{"t", "T", "true", "True", "TRUE", "yes", "1", " t "}
	for _, s := range truthy {
		if parseSuperhost(s) != 1 {
			t.Fatalf("expected %q to be superhost", s)
		}
	}
	falsy := []string{"", "f", "false", "no", "0", "maybe"}
	for _, s := range falsy {
		if parseSuperhost(s) != 0 {
			t.Fatalf("expected %q to not be superhost", s)
		}
	}
}

func TestParseAmenities(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["Wifi", "Free parking", "Kitchen"]`, []string{"Wifi", "Free parking", "Kitchen"}},
		{`["Sound system, surround", "TV"]`, []string{"Sound system, surround", "TV"}},
		{`[]`, nil},
		{``, nil},
		{`["", "Wifi"]`, []string{"Wifi"}},
	}
	for _, tst := range tests {
		got := parseAmenities(tst.in)
		if !reflect.DeepEqual(got, tst.want) {
			t.Fatalf("parseAmenities(%q) = %#v, want %#v", tst.in, got, tst.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(3.5); got != "3.5" {
		t.Fatalf("formatFloat(3.5) = %q", got)
	}
	if got := formatFloat(275); got != "275" {
		t.Fatalf("formatFloat(275) = %q", got)
	}
}
