package stayindex

import (
	"strconv"
	"strings"
	"time"
)

// parseInt parses an integer cell. Extracts sometimes carry integer
// columns in float form ("3.0"), so the value is parsed as a float and
// truncated.
func parseInt(s string) (int, bool) {
	f, ok := parseFloat(s)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parsePrice parses a price cell, tolerating a currency symbol and
// thousands separators ("$1,250.00").
func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return parseFloat(s)
}

// parseDate parses a "2006-01-02" date cell to epoch milliseconds.
func parseDate(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.UnixNano() / int64(time.Millisecond), true
}

// stripHTML replaces the handful of literal tag substrings that appear in
// listing prose with spaces. It is deliberately not a markup parser.
func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br />", " ")
	s = strings.ReplaceAll(s, "<br>", " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return s
}

// parseSuperhost maps the extract's truthy tokens to 1, anything else
// (including absent) to 0. Never an error.
func parseSuperhost(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "yes", "1":
		return 1
	}
	return 0
}

// parseAmenities splits an amenities cell, which arrives as a JSON-style
// quoted list (`["Wifi", "Free parking", ...]`), into individual tokens.
// Commas inside quoted tokens are preserved and escaped quotes (\")
// unescaped. Empty tokens are dropped.
func parseAmenities(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}

	var out []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		tok := strings.TrimSpace(cur.String())
		if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
			tok = tok[1 : len(tok)-1]
		}
		tok = strings.ReplaceAll(tok, `\"`, `"`)
		if tok != "" {
			out = append(out, tok)
		}
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

// formatFloat renders a float the way the aggregate field wants it:
// shortest representation that round-trips ("3.5", "275").
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
