package boltdb

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestTaxonomyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxo.bolt")
	taxo, err := NewTaxonomy(path, "price_range")
	if err != nil {
		t.Fatalf("opening taxonomy: %v", err)
	}
	defer taxo.Close()

	id1, err := taxo.GetID("price_range", []byte("barato"))
	if err != nil {
		t.Fatalf("getting id: %v", err)
	}
	id2, err := taxo.GetID("price_range", []byte("caro"))
	if err != nil {
		t.Fatalf("getting id: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("distinct labels share ordinal %d", id1)
	}

	// repeated label keeps its ordinal
	again, err := taxo.GetID("price_range", []byte("barato"))
	if err != nil {
		t.Fatalf("getting id again: %v", err)
	}
	if again != id1 {
		t.Fatalf("ordinal changed: %d then %d", id1, again)
	}

	label, err := taxo.Get("price_range", id2)
	if err != nil {
		t.Fatalf("getting label: %v", err)
	}
	if !bytes.Equal(label, []byte("caro")) {
		t.Fatalf("label = %q", label)
	}
}

func TestTaxonomyLazyDimension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxo.bolt")
	taxo, err := NewTaxonomy(path)
	if err != nil {
		t.Fatalf("opening taxonomy: %v", err)
	}
	defer taxo.Close()

	id, err := taxo.GetID("rating_range", []byte("4.5-5"))
	if err != nil {
		t.Fatalf("getting id in new dimension: %v", err)
	}
	label, err := taxo.Get("rating_range", id)
	if err != nil {
		t.Fatalf("getting label: %v", err)
	}
	if string(label) != "4.5-5" {
		t.Fatalf("label = %q", label)
	}
}

func TestTaxonomyDimensionsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxo.bolt")
	taxo, err := NewTaxonomy(path, "a", "b")
	if err != nil {
		t.Fatalf("opening taxonomy: %v", err)
	}
	defer taxo.Close()

	idA, err := taxo.GetID("a", []byte("shared"))
	if err != nil {
		t.Fatalf("getting id: %v", err)
	}
	idB, err := taxo.GetID("b", []byte("shared"))
	if err != nil {
		t.Fatalf("getting id: %v", err)
	}
	// both dimensions start their own sequence
	if idA != idB {
		t.Fatalf("first ordinals differ across dimensions: %d vs %d", idA, idB)
	}
	if _, err := taxo.GetID("a", []byte("only-a")); err != nil {
		t.Fatalf("getting id: %v", err)
	}
	if _, err := taxo.Get("b", 2); err == nil {
		t.Fatalf("ordinal 2 should not exist in dimension b")
	}
}

func TestTaxonomyUnknownLookups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxo.bolt")
	taxo, err := NewTaxonomy(path, "price_range")
	if err != nil {
		t.Fatalf("opening taxonomy: %v", err)
	}
	defer taxo.Close()

	if _, err := taxo.Get("nope", 1); err == nil {
		t.Fatalf("expected an error for an unknown dimension")
	}
	if _, err := taxo.Get("price_range", 99); err == nil {
		t.Fatalf("expected an error for an unassigned ordinal")
	}
}

func TestTaxonomyPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxo.bolt")
	taxo, err := NewTaxonomy(path, "price_range")
	if err != nil {
		t.Fatalf("opening taxonomy: %v", err)
	}
	id, err := taxo.GetID("price_range", []byte("asequible"))
	if err != nil {
		t.Fatalf("getting id: %v", err)
	}
	if err := taxo.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	taxo, err = NewTaxonomy(path, "price_range")
	if err != nil {
		t.Fatalf("reopening taxonomy: %v", err)
	}
	defer taxo.Close()
	again, err := taxo.GetID("price_range", []byte("asequible"))
	if err != nil {
		t.Fatalf("getting id after reopen: %v", err)
	}
	if again != id {
		t.Fatalf("ordinal changed across reopen: %d then %d", id, again)
	}
	fresh, err := taxo.GetID("price_range", []byte("caro"))
	if err != nil {
		t.Fatalf("getting fresh id: %v", err)
	}
	if fresh <= id {
		t.Fatalf("sequence did not resume: %d after %d", fresh, id)
	}
}
