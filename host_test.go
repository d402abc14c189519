package stayindex

import "testing"

var hostHeader = NewHeader([]string{
	"host_id", "host_url", "host_name", "host_since", "host_location",
	"host_neighbourhood", "host_about", "host_response_time",
	"host_is_superhost",
})

func hostRow() []string {
	return []string{
		"42",
		"https://example.com/users/show/42",
		"Marta",
		"2015-01-02",
		"Barcelona, Spain",
		"Gràcia",
		"I love&nbsp;hosting",
		"Within an Hour",
		"t",
	}
}

func TestBuildHostRequiresHostID(t *testing.T) {
	row := hostRow()
	row[0] = ""
	if doc := BuildHost(hostHeader, row); doc != nil {
		t.Fatalf("expected nil document for blank host_id")
	}
	row[0] = "   "
	if doc := BuildHost(hostHeader, row); doc != nil {
		t.Fatalf("expected nil document for whitespace host_id")
	}
}

func TestBuildHostFields(t *testing.T) {
	doc := BuildHost(hostHeader, hostRow())
	if doc == nil {
		t.Fatalf("expected a document")
	}
	if doc.Fields["host_id"] != "42" {
		t.Fatalf("host_id = %v", doc.Fields["host_id"])
	}
	if doc.Fields["host_since"] != int64(1420156800000) {
		t.Fatalf("host_since = %v", doc.Fields["host_since"])
	}
	if doc.Fields["host_since_original"] != "2015-01-02" {
		t.Fatalf("host_since_original = %v", doc.Fields["host_since_original"])
	}
	if doc.Fields["host_about"] != "I love hosting" {
		t.Fatalf("host_about = %v", doc.Fields["host_about"])
	}
	if doc.Fields["host_response_time"] != "within an hour" {
		t.Fatalf("host_response_time = %v", doc.Fields["host_response_time"])
	}
	if doc.Fields["host_response_time_original"] != "Within an Hour" {
		t.Fatalf("host_response_time_original = %v", doc.Fields["host_response_time_original"])
	}
	if doc.Fields["host_is_superhost"] != 1 {
		t.Fatalf("host_is_superhost = %v", doc.Fields["host_is_superhost"])
	}

	facets := map[string]bool{}
	for _, f := range doc.Facets {
		facets[f.Dim] = true
	}
	if !facets["host_response_time"] {
		t.Fatalf("expected host_response_time facet, got %v", doc.Facets)
	}
}

func TestBuildHostContents(t *testing.T) {
	doc := BuildHost(hostHeader, hostRow())
	if doc == nil {
		t.Fatalf("expected a document")
	}
	want := "Marta Barcelona, Spain Gràcia I love hosting Within an Hour superhost"
	if doc.Fields["contents"] != want {
		t.Fatalf("contents = %q, want %q", doc.Fields["contents"], want)
	}

	row := hostRow()
	row[8] = "f"
	doc = BuildHost(hostHeader, row)
	want = "Marta Barcelona, Spain Gràcia I love hosting Within an Hour"
	if doc.Fields["contents"] != want {
		t.Fatalf("contents for non-superhost = %q", doc.Fields["contents"])
	}
}

func TestBuildHostBadDateSkipsField(t *testing.T) {
	row := hostRow()
	row[3] = "01/02/2015"
	doc := BuildHost(hostHeader, row)
	if doc == nil {
		t.Fatalf("expected a document")
	}
	if _, ok := doc.Fields["host_since"]; ok {
		t.Fatalf("unparseable date should not produce a field")
	}
	if _, ok := doc.Fields["host_since_original"]; ok {
		t.Fatalf("original companion should track the parsed field")
	}
}
