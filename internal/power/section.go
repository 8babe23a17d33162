package power

// Status says whether an analysis section was actually computed.
type Status string

const (
	Computed    Status = "computed"
	NotComputed Status = "not_computed"
)

// Section wraps a result list that the heuristic model may not produce.
// A NotComputed section is distinct from a computed section with no items.
type Section[T any] struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Items  []T    `json:"items,omitempty"`
}

// Skipped returns a section marked as not computed.
func Skipped[T any](reason string) Section[T] {
	return Section[T]{Status: NotComputed, Reason: reason}
}

// IsComputed reports whether the section carries real results.
func (s Section[T]) IsComputed() bool {
	return s.Status == Computed
}
