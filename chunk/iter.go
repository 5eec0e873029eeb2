package chunk

// SectionIter is a double-ended, exact-size, fused iterator over a
// chunk's populated sections in ascending SectionY order. It is backed by
// the chunk's sorted entry slice rather than a B-tree or ordered-map
// library — none appears anywhere in the reference corpus, and a sorted
// slice gives the same ordered, double-ended, known-length semantics the
// top-layer scanner needs at the cost of one sort at construction time.
type SectionIter struct {
	entries    []SectionEntry
	front, back int // remaining range is entries[front:back]
}

// Sections returns an iterator positioned at the start of the chunk's
// sections.
func (c *Chunk) Sections() *SectionIter {
	return &SectionIter{entries: c.entries, front: 0, back: len(c.entries)}
}

// Len reports the number of sections remaining in the iterator.
func (it *SectionIter) Len() int {
	return it.back - it.front
}

// Next returns the next section in ascending Y order, or false once
// exhausted. Once exhausted it keeps returning false (fused).
func (it *SectionIter) Next() (SectionEntry, bool) {
	if it.front >= it.back {
		return SectionEntry{}, false
	}
	e := it.entries[it.front]
	it.front++
	return e, true
}

// NextBack returns the next section in descending Y order, or false once
// exhausted. The top-layer scanner drives the chunk top-down via this.
func (it *SectionIter) NextBack() (SectionEntry, bool) {
	if it.front >= it.back {
		return SectionEntry{}, false
	}
	it.back--
	return it.entries[it.back], true
}
