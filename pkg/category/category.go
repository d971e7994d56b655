// Package category defines the campsite site categories tracked per date and
// the rule that turns a raw availability count into a display status.
package category

// Category is one campsite site classification.
type Category struct {
	// ID is a stable ASCII identifier.
	ID string
	// Label is the name used by the backend as the JSON key and shown to users.
	Label string
}

var (
	Premium  = Category{ID: "premium", Label: "고급"}
	Standard = Category{ID: "standard", Label: "일반"}
	Gravel   = Category{ID: "gravel", Label: "자갈"}
	Deck     = Category{ID: "deck", Label: "데크"}
)

var all = []Category{Premium, Standard, Gravel, Deck}

// All returns the categories in display order.
func All() []Category {
	return append([]Category(nil), all...)
}

// ByLabel finds a category by its backend label.
func ByLabel(label string) (Category, bool) {
	for _, c := range all {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}

// ByID finds a category by its ASCII identifier.
func ByID(id string) (Category, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ErrorCount is the sentinel count reported when the backend failed to
// fetch or parse a category.
const ErrorCount = -1

// Status is the availability state derived from a count.
type Status int

const (
	Unavailable Status = iota
	Available
	Error
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Error:
		return "error"
	}
	return "unknown"
}

// StatusOf maps a count to its status: -1 is an error, 0 unavailable and
// anything positive available.
func StatusOf(count int) Status {
	switch {
	case count < 0:
		return Error
	case count == 0:
		return Unavailable
	default:
		return Available
	}
}

// Normalize clamps every negative count to ErrorCount.
func Normalize(count int) int {
	if count < 0 {
		return ErrorCount
	}
	return count
}

// Count pairs a category with its count for one date.
type Count struct {
	Category Category
	Value    int
}

// Status returns the status of the count.
func (c Count) Status() Status { return StatusOf(c.Value) }

// Counts orders the recognised categories present in raw, keyed by backend
// label, into display order. Unknown labels are ignored.
func Counts(raw map[string]int) []Count {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Count, 0, len(all))
	for _, c := range all {
		v, ok := raw[c.Label]
		if !ok {
			continue
		}
		out = append(out, Count{Category: c, Value: Normalize(v)})
	}
	return out
}

// HasAvailability reports whether any recognised category has a positive count.
func HasAvailability(raw map[string]int) bool {
	for _, c := range Counts(raw) {
		if c.Status() == Available {
			return true
		}
	}
	return false
}
