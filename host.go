package stayindex

import "strings"

// BuildHost turns one raw row into a host document. host_id is mandatory:
// a missing or blank value yields nil. De-duplication of rows sharing a
// host_id is the Ingester's job, not this builder's.
func BuildHost(h *Header, row []string) *Document {
	hostID := h.Get(row, "host_id")
	if strings.TrimSpace(hostID) == "" {
		return nil
	}

	doc := newDocument()
	doc.Fields["host_id"] = hostID

	if v := h.Get(row, "host_url"); strings.TrimSpace(v) != "" {
		doc.Fields["host_url"] = strings.TrimSpace(v)
	}

	hostName := h.Get(row, "host_name")
	if hostName != "" {
		doc.Fields["host_name"] = hostName
	}

	hostSinceStr := h.Get(row, "host_since")
	if hostSince, ok := parseDate(hostSinceStr); ok {
		doc.Fields["host_since"] = hostSince
		doc.Fields["host_since_original"] = hostSinceStr
	}

	hostLocation := h.Get(row, "host_location")
	if hostLocation != "" {
		doc.Fields["host_location"] = hostLocation
	}
	hostNeighbourhood := h.Get(row, "host_neighbourhood")
	if hostNeighbourhood != "" {
		doc.Fields["host_neighbourhood"] = hostNeighbourhood
	}
	hostAbout := h.Get(row, "host_about")
	if hostAbout != "" {
		doc.Fields["host_about"] = stripHTML(hostAbout)
	}

	responseTime := h.Get(row, "host_response_time")
	addNormalized(doc, "host_response_time", responseTime)

	superhost := parseSuperhost(h.Get(row, "host_is_superhost"))
	doc.Fields["host_is_superhost"] = superhost

	var parts []string
	if hostName != "" {
		parts = append(parts, hostName)
	}
	if hostLocation != "" {
		parts = append(parts, hostLocation)
	}
	if hostNeighbourhood != "" {
		parts = append(parts, hostNeighbourhood)
	}
	if hostAbout != "" {
		parts = append(parts, stripHTML(hostAbout))
	}
	if responseTime != "" {
		parts = append(parts, responseTime)
	}
	if superhost == 1 {
		parts = append(parts, "superhost")
	}
	doc.Fields["contents"] = strings.Join(parts, " ")

	return doc
}
