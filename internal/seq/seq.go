// Package seq provides run-scoped identifier sequences.
//
// A Sequence is created at the start of one analysis run and threaded through
// every stage that mints ids, so two runs never share counters.
package seq

import "strconv"

// Sequence hands out monotonically increasing numbers per prefix.
// It is not safe for concurrent use; a run is single-threaded.
type Sequence struct {
	next map[string]int
	base int
}

// New creates a sequence whose first value for every prefix is base.
func New(base int) *Sequence {
	return &Sequence{
		next: make(map[string]int),
		base: base,
	}
}

// Next returns the next number for prefix.
func (s *Sequence) Next(prefix string) int {
	n, ok := s.next[prefix]
	if !ok {
		n = s.base
	}
	s.next[prefix] = n + 1
	return n
}

// NextID returns prefix followed by the next number, e.g. "comp_3".
func (s *Sequence) NextID(prefix string) string {
	return prefix + strconv.Itoa(s.Next(prefix))
}

// Peek reports the number the next call for prefix would return.
func (s *Sequence) Peek(prefix string) int {
	if n, ok := s.next[prefix]; ok {
		return n
	}
	return s.base
}
