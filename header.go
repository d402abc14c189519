package stayindex

// Header resolves column names to positions for one extract. It is built
// once from the header row and shared by every row of the same file.
type Header struct {
	pos map[string]int
}

// NewHeader builds a Header from the cells of the header row. If a name
// appears more than once, the first registration wins.
func NewHeader(cells []string) *Header {
	h := &Header{pos: make(map[string]int, len(cells))}
	for i, name := range cells {
		if _, ok := h.pos[name]; ok {
			continue
		}
		h.pos[name] = i
	}
	return h
}

// Get returns the raw value of the named column in row. It returns ""
// when the name is unknown, the position is out of range for this row,
// or the cell is empty - callers treat "" as absent.
func (h *Header) Get(row []string, name string) string {
	idx, ok := h.pos[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
