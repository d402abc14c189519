package stayindex

import "strings"

// familyRule maps any of a set of substring patterns to a property
// family. Rules are evaluated in order and the first match wins, so more
// specific patterns ("rental unit") must precede broader ones ("home",
// "house").
type familyRule struct {
	patterns []string
	family   string
}

var familyRules = []familyRule{
	{[]string{"rental unit"}, "rental unit"},
	{[]string{"condo"}, "condo"},
	{[]string{"guesthouse"}, "guesthouse"},
	{[]string{"guest suite"}, "guest suite"},
	{[]string{"home", "house"}, "home"},
	{[]string{"hotel"}, "hotel"},
	{[]string{"bungalow"}, "bungalow"},
	{[]string{"villa"}, "villa"},
	{[]string{"townhouse"}, "townhouse"},
	{[]string{"loft"}, "loft"},
	{[]string{"serviced apartment"}, "serviced apartment"},
	{[]string{"cabin"}, "cabin"},
	{[]string{"cottage"}, "cottage"},
	{[]string{"resort"}, "resort"},
	{[]string{"vacation home"}, "vacation home"},
	{[]string{"barn"}, "barn"},
	{[]string{"boat", "houseboat"}, "boat"},
	{[]string{"camper", "rv"}, "camper"},
	{[]string{"campsite", "tent"}, "campsite"},
	{[]string{"castle"}, "castle"},
	{[]string{"cave"}, "cave"},
	{[]string{"dome"}, "dome"},
	{[]string{"farm stay"}, "farm stay"},
	{[]string{"hostel"}, "hostel"},
	{[]string{"hut", "shepherd"}, "hut"},
	{[]string{"treehouse"}, "treehouse"},
	{[]string{"yurt"}, "yurt"},
	{[]string{"tiny home"}, "tiny home"},
	{[]string{"aparthotel"}, "aparthotel"},
	{[]string{"bed and breakfast"}, "bed and breakfast"},
	{[]string{"nature lodge"}, "nature lodge"},
	{[]string{"ranch"}, "ranch"},
	{[]string{"lighthouse"}, "lighthouse"},
	{[]string{"tower"}, "tower"},
	{[]string{"train"}, "train"},
	{[]string{"shipping container"}, "shipping container"},
	{[]string{"tipi"}, "tipi"},
	{[]string{"island"}, "island"},
	{[]string{"floor"}, "floor"},
	{[]string{"minsu"}, "minsu"},
	{[]string{"casa particular"}, "casa particular"},
	{[]string{"earthen home"}, "earthen home"},
}

// PropertyFamily classifies a raw property_type value into its family for
// the first level of the hierarchical property-type facet. Blank or
// unrecognized values classify as "other".
func PropertyFamily(propertyType string) string {
	v := strings.ToLower(propertyType)
	if strings.TrimSpace(v) == "" {
		return "other"
	}
	for _, rule := range familyRules {
		for _, pat := range rule.patterns {
			if strings.Contains(v, pat) {
				return rule.family
			}
		}
	}
	return "other"
}

// PriceLabel buckets a nightly price into one of three facet labels.
// Boundaries sit at the P25/P75 of the source extract.
func PriceLabel(price float64) string {
	switch {
	case price < 150:
		return "barato"
	case price <= 300:
		return "asequible"
	default:
		return "caro"
	}
}

// RatingLabel buckets a review score into one of five star-range labels.
func RatingLabel(rating float64) string {
	switch {
	case rating >= 0 && rating < 2:
		return "0-2"
	case rating >= 2 && rating < 3:
		return "2-3"
	case rating >= 3 && rating < 4:
		return "3-4"
	case rating >= 4 && rating < 4.5:
		return "4-4.5"
	default:
		return "4.5-5"
	}
}

// ReviewsLabel buckets a review count into one of five labels. The
// boundaries follow the extract's median/P75/P90.
func ReviewsLabel(n int) string {
	switch {
	case n == 0:
		return "0"
	case n >= 1 && n <= 5:
		return "1-5"
	case n >= 6 && n <= 34:
		return "6-34"
	case n >= 35 && n <= 110:
		return "35-110"
	default:
		return "111+"
	}
}

// BedroomsLabel discretizes a bedroom count into "0".."4" or "5+". An
// absent or unparseable count (ok == false) maps to "0" rather than
// erroring.
func BedroomsLabel(n int, ok bool) string {
	if !ok || n <= 0 {
		return "0"
	}
	if n >= 5 {
		return "5+"
	}
	return []string{"1", "2", "3", "4"}[n-1]
}
