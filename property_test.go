package stayindex

import (
	"strings"
	"testing"
)

var propertyHeader = NewHeader([]string{
	"id", "listing_url", "name", "description", "neighborhood_overview",
	"neighbourhood_cleansed", "neighbourhood_group_cleansed",
	"latitude", "longitude", "property_type", "amenities",
	"price", "number_of_reviews", "review_scores_rating",
	"bathrooms", "bathrooms_text", "bedrooms", "host_id",
})

func propertyRow() []string {
	return []string{
		"12345",
		"https://example.com/rooms/12345",
		"Sunny Loft Downtown",
		"Bright space<br />close to everything",
		"Quiet&nbsp;streets",
		"Venice Beach",
		"City of Los Angeles",
		"34.05", "-118.25",
		"Entire rental unit",
		`["Wifi", "Kitchen"]`,
		"$275.00",
		"40",
		"4.6",
		"3.5",
		"3.5 shared baths",
		"6",
		"42",
	}
}

func TestBuildPropertyRequiresIntegerID(t *testing.T) {
	row := propertyRow()
	row[0] = "not-a-number"
	if doc := BuildProperty(propertyHeader, row, "id"); doc != nil {
		t.Fatalf("expected nil document for non-integer id, got %v", doc.Fields)
	}
	row[0] = ""
	if doc := BuildProperty(propertyHeader, row, "id"); doc != nil {
		t.Fatalf("expected nil document for missing id")
	}
}

func TestBuildPropertyFields(t *testing.T) {
	doc := BuildProperty(propertyHeader, propertyRow(), "id")
	if doc == nil {
		t.Fatalf("expected a document")
	}

	if doc.Fields["id"] != 12345 {
		t.Fatalf("id = %v", doc.Fields["id"])
	}
	// normalized equals the lowercase-trimmed source, original the
	// untouched source
	if doc.Fields["neighbourhood_cleansed"] != "venice beach" {
		t.Fatalf("neighbourhood = %v", doc.Fields["neighbourhood_cleansed"])
	}
	if doc.Fields["neighbourhood_cleansed_original"] != "Venice Beach" {
		t.Fatalf("neighbourhood original = %v", doc.Fields["neighbourhood_cleansed_original"])
	}
	if doc.Fields["property_type"] != "entire rental unit" {
		t.Fatalf("property_type = %v", doc.Fields["property_type"])
	}
	if doc.Fields["property_type_original"] != "Entire rental unit" {
		t.Fatalf("property_type original = %v", doc.Fields["property_type_original"])
	}
	if doc.Fields["bedrooms_category"] != "5+" {
		t.Fatalf("bedrooms_category = %v", doc.Fields["bedrooms_category"])
	}
	if doc.Fields["bathrooms"] != 3 {
		t.Fatalf("bathrooms should truncate, got %v", doc.Fields["bathrooms"])
	}
	if doc.Fields["description"] != "Bright space close to everything" {
		t.Fatalf("description = %v", doc.Fields["description"])
	}
	if doc.Fields["host_id"] != "42" {
		t.Fatalf("host_id = %v", doc.Fields["host_id"])
	}
	if _, ok := doc.Fields["geohash"]; !ok {
		t.Fatalf("expected a geohash field when coordinates parse")
	}
	loc, ok := doc.Fields["location"].(map[string]interface{})
	if !ok || loc["lat"] != 34.05 || loc["lon"] != -118.25 {
		t.Fatalf("location = %v", doc.Fields["location"])
	}
}

func TestBuildPropertyFacets(t *testing.T) {
	doc := BuildProperty(propertyHeader, propertyRow(), "id")
	if doc == nil {
		t.Fatalf("expected a document")
	}

	want := map[string]string{
		"neighbourhood_cleansed":       "venice beach",
		"neighbourhood_group_cleansed": "city of los angeles",
		"property_type":                "rental unit/entire rental unit",
		"property_type_simple":         "entire rental unit",
		"price_range":                  "asequible",
		"reviews_range":                "35-110",
		"rating_range":                 "4.5-5",
	}
	got := map[string]string{}
	for _, f := range doc.Facets {
		got[f.Dim] = strings.Join(f.Path, "/")
	}
	for dim, path := range want {
		if got[dim] != path {
			t.Fatalf("facet %s = %q, want %q", dim, got[dim], path)
		}
	}
	// hierarchical path has two levels
	for _, f := range doc.Facets {
		if f.Dim == "property_type" && len(f.Path) != 2 {
			t.Fatalf("property_type facet path = %v, want two levels", f.Path)
		}
	}
}

func TestBuildPropertyContents(t *testing.T) {
	doc := BuildProperty(propertyHeader, propertyRow(), "id")
	if doc == nil {
		t.Fatalf("expected a document")
	}
	contents, ok := doc.Fields["contents"].(string)
	if !ok {
		t.Fatalf("contents missing")
	}
	want := "Sunny Loft Downtown " +
		"Bright space close to everything " +
		"Quiet streets " +
		"Venice Beach " +
		"Entire rental unit " +
		"Wifi Kitchen " +
		"3.5 bathrooms " +
		"3.5 shared baths " +
		"6 bedrooms " +
		"price 275 " +
		"40 reviews " +
		"rating 4.6"
	if contents != want {
		t.Fatalf("contents =\n%q\nwant\n%q", contents, want)
	}
}

func TestBuildPropertyAbsentFieldsContributeNothing(t *testing.T) {
	h := NewHeader([]string{"id", "name"})
	doc := BuildProperty(h, []string{"9", "Tiny studio"}, "id")
	if doc == nil {
		t.Fatalf("expected a document")
	}
	if doc.Fields["contents"] != "Tiny studio" {
		t.Fatalf("contents = %q", doc.Fields["contents"])
	}
	if _, ok := doc.Fields["price"]; ok {
		t.Fatalf("absent price should not appear")
	}
	if len(doc.Facets) != 0 {
		t.Fatalf("no facets expected, got %v", doc.Facets)
	}
}
