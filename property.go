package stayindex

import (
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// geohashPrecision is the number of geohash characters kept for the
// location cell label, roughly a 1.2km x 600m cell.
const geohashPrecision = 6

// BuildProperty turns one raw row into a property document. The id column
// (idField) is mandatory: if its value does not parse as an integer no
// document is built and nil is returned. Every other column is optional
// and contributes nothing when absent.
func BuildProperty(h *Header, row []string, idField string) *Document {
	idStr := h.Get(row, idField)
	id, ok := parseInt(idStr)
	if !ok {
		return nil
	}

	doc := newDocument()
	doc.Fields["id"] = id

	if v := h.Get(row, "listing_url"); strings.TrimSpace(v) != "" {
		doc.Fields["listing_url"] = strings.TrimSpace(v)
	}

	name := h.Get(row, "name")
	if name != "" {
		doc.Fields["name"] = name
	}
	description := h.Get(row, "description")
	if description != "" {
		doc.Fields["description"] = stripHTML(description)
	}
	overview := h.Get(row, "neighborhood_overview")
	if overview != "" {
		doc.Fields["neighborhood_overview"] = stripHTML(overview)
	}

	neighbourhood := h.Get(row, "neighbourhood_cleansed")
	addNormalized(doc, "neighbourhood_cleansed", neighbourhood)

	addNormalized(doc, "neighbourhood_group_cleansed", h.Get(row, "neighbourhood_group_cleansed"))

	lat, latOK := parseFloat(h.Get(row, "latitude"))
	lon, lonOK := parseFloat(h.Get(row, "longitude"))
	if latOK && lonOK {
		doc.Fields["location"] = map[string]interface{}{"lat": lat, "lon": lon}
		doc.Fields["latitude"] = lat
		doc.Fields["longitude"] = lon
		doc.Fields["geohash"] = geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
	}

	propertyType := h.Get(row, "property_type")
	if strings.TrimSpace(propertyType) != "" {
		normalized := strings.ToLower(strings.TrimSpace(propertyType))
		doc.Fields["property_type"] = normalized
		doc.Fields["property_type_original"] = propertyType
		doc.addFacet("property_type", PropertyFamily(propertyType), normalized)
		doc.addFacet("property_type_simple", normalized)
	}

	amenitiesRaw := h.Get(row, "amenities")
	amenities := parseAmenities(amenitiesRaw)
	if len(amenities) > 0 {
		doc.Fields["amenity"] = amenities
	}

	price, priceOK := parsePrice(h.Get(row, "price"))
	if priceOK {
		doc.Fields["price"] = price
		doc.addFacet("price_range", PriceLabel(price))
	}

	numReviews, reviewsOK := parseInt(h.Get(row, "number_of_reviews"))
	if reviewsOK {
		doc.Fields["number_of_reviews"] = numReviews
		doc.addFacet("reviews_range", ReviewsLabel(numReviews))
	}

	rating, ratingOK := parseFloat(h.Get(row, "review_scores_rating"))
	if ratingOK {
		doc.Fields["review_scores_rating"] = rating
		doc.addFacet("rating_range", RatingLabel(rating))
	}

	bathrooms, bathroomsOK := parseFloat(h.Get(row, "bathrooms"))
	if bathroomsOK {
		doc.Fields["bathrooms"] = int(bathrooms)
	}
	bathroomsText := h.Get(row, "bathrooms_text")
	if bathroomsText != "" {
		doc.Fields["bathrooms_text"] = bathroomsText
	}

	bedrooms, bedroomsOK := parseInt(h.Get(row, "bedrooms"))
	if bedroomsOK {
		doc.Fields["bedrooms"] = bedrooms
		doc.Fields["bedrooms_category"] = BedroomsLabel(bedrooms, true)
	}

	if hostID := h.Get(row, "host_id"); strings.TrimSpace(hostID) != "" {
		doc.Fields["host_id"] = hostID
	}

	// The aggregate free-text field: a fixed-order concatenation of the
	// searchable subset, indexed but never stored.
	var parts []string
	if name != "" {
		parts = append(parts, name)
	}
	if description != "" {
		parts = append(parts, stripHTML(description))
	}
	if overview != "" {
		parts = append(parts, stripHTML(overview))
	}
	if neighbourhood != "" {
		parts = append(parts, neighbourhood)
	}
	if propertyType != "" {
		parts = append(parts, propertyType)
	}
	parts = append(parts, amenities...)
	if bathroomsOK {
		parts = append(parts, formatFloat(bathrooms)+" bathrooms")
	}
	if bathroomsText != "" {
		parts = append(parts, bathroomsText)
	}
	if bedroomsOK {
		parts = append(parts, strconv.Itoa(bedrooms)+" bedrooms")
	}
	if priceOK {
		parts = append(parts, "price "+formatFloat(price))
	}
	if reviewsOK {
		parts = append(parts, strconv.Itoa(numReviews)+" reviews")
	}
	if ratingOK {
		parts = append(parts, "rating "+formatFloat(rating))
	}
	doc.Fields["contents"] = strings.Join(parts, " ")

	return doc
}

// addNormalized stores a categorical value in its lowercase-trimmed
// normalized form for exact-match/sort lookups, keeps the untouched
// original under a companion field for display, and registers the flat
// facet.
func addNormalized(doc *Document, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	normalized := strings.ToLower(strings.TrimSpace(value))
	doc.Fields[field] = normalized
	doc.Fields[field+"_original"] = value
	doc.addFacet(field, normalized)
}
