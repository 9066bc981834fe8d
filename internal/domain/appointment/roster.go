package appointment

import "strings"

var defaultDoctors = []string{
	"Dr. John Smith",
	"Dr. Jane Doe",
	"Dr. Emily Johnson",
	"Dr. Michael Brown",
	"Dr. Sarah Davis",
}

// Roster is the fixed set of doctors appointments can be booked with.
// It is immutable after construction.
type Roster struct {
	names []string
	set   map[string]struct{}
}

// NewRoster keeps the given order, trimming names and dropping blanks and
// duplicates.
func NewRoster(names ...string) *Roster {
	r := &Roster{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.set[n]; ok {
			continue
		}
		r.set[n] = struct{}{}
		r.names = append(r.names, n)
	}
	return r
}

func DefaultRoster() *Roster {
	return NewRoster(defaultDoctors...)
}

// Contains matches names exactly; no case folding.
func (r *Roster) Contains(name string) bool {
	_, ok := r.set[name]
	return ok
}

func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
