package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field mapping helpers. The shapes mirror how the documents are built:
// prose fields get the english analyzer, normalized categoricals are
// keyword-analyzed so exact-match and sorting see one token, "_original"
// display companions are stored but never indexed, and the contents
// aggregate is indexed but never stored.

func englishField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = en.AnalyzerName
	return fm
}

func textField() *mapping.FieldMapping {
	return bleve.NewTextFieldMapping()
}

func keywordField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = keyword.Name
	return fm
}

func storedOnlyField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Index = false
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

func numericField() *mapping.FieldMapping {
	return bleve.NewNumericFieldMapping()
}

func storedNumericField() *mapping.FieldMapping {
	fm := bleve.NewNumericFieldMapping()
	fm.Index = false
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

func contentsField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = en.AnalyzerName
	fm.Store = false
	return fm
}

// propertiesMapping describes the per-listing destination.
func propertiesMapping() mapping.IndexMapping {
	dm := bleve.NewDocumentMapping()

	dm.AddFieldMappingsAt("id", numericField())
	dm.AddFieldMappingsAt("listing_url", keywordField())
	dm.AddFieldMappingsAt("name", textField())
	dm.AddFieldMappingsAt("description", englishField())
	dm.AddFieldMappingsAt("neighborhood_overview", englishField())

	dm.AddFieldMappingsAt("neighbourhood_cleansed", keywordField())
	dm.AddFieldMappingsAt("neighbourhood_cleansed_original", storedOnlyField())
	dm.AddFieldMappingsAt("neighbourhood_group_cleansed", keywordField())
	dm.AddFieldMappingsAt("neighbourhood_group_cleansed_original", storedOnlyField())

	dm.AddFieldMappingsAt("location", bleve.NewGeoPointFieldMapping())
	dm.AddFieldMappingsAt("latitude", storedNumericField())
	dm.AddFieldMappingsAt("longitude", storedNumericField())
	dm.AddFieldMappingsAt("geohash", keywordField())

	dm.AddFieldMappingsAt("property_type", keywordField())
	dm.AddFieldMappingsAt("property_type_original", storedOnlyField())

	dm.AddFieldMappingsAt("amenity", englishField())

	dm.AddFieldMappingsAt("price", numericField())
	dm.AddFieldMappingsAt("number_of_reviews", numericField())
	dm.AddFieldMappingsAt("review_scores_rating", numericField())
	dm.AddFieldMappingsAt("bathrooms", numericField())
	dm.AddFieldMappingsAt("bathrooms_text", englishField())
	dm.AddFieldMappingsAt("bedrooms", numericField())
	dm.AddFieldMappingsAt("bedrooms_category", keywordField())

	dm.AddFieldMappingsAt("host_id", keywordField())
	dm.AddFieldMappingsAt("contents", contentsField())

	for _, facet := range []string{
		"neighbourhood_cleansed", "neighbourhood_group_cleansed",
		"property_type", "property_type_simple",
		"price_range", "reviews_range", "rating_range",
	} {
		dm.AddFieldMappingsAt(facet+facetSuffix, keywordField())
	}

	im := bleve.NewIndexMapping()
	im.DefaultMapping = dm
	return im
}

// hostsMapping describes the per-host destination.
func hostsMapping() mapping.IndexMapping {
	dm := bleve.NewDocumentMapping()

	dm.AddFieldMappingsAt("host_id", keywordField())
	dm.AddFieldMappingsAt("host_url", keywordField())
	dm.AddFieldMappingsAt("host_name", textField())
	dm.AddFieldMappingsAt("host_since", numericField())
	dm.AddFieldMappingsAt("host_since_original", storedOnlyField())
	dm.AddFieldMappingsAt("host_location", englishField())
	dm.AddFieldMappingsAt("host_neighbourhood", textField())
	dm.AddFieldMappingsAt("host_about", englishField())
	dm.AddFieldMappingsAt("host_response_time", keywordField())
	dm.AddFieldMappingsAt("host_response_time_original", storedOnlyField())
	dm.AddFieldMappingsAt("host_response_time"+facetSuffix, keywordField())
	dm.AddFieldMappingsAt("host_is_superhost", numericField())
	dm.AddFieldMappingsAt("contents", contentsField())

	im := bleve.NewIndexMapping()
	im.DefaultMapping = dm
	return im
}
