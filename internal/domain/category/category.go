package category

// Category groups questions for study views and progress summaries.
// The set is fixed by the question bank.
type Category string

const (
	Government Category = "government"
	History    Category = "history"
	Civics     Category = "civics"
)

var labels = map[Category]string{
	Government: "American Government",
	History:    "American History",
	Civics:     "Symbols and Holidays",
}

// All returns every category in display order.
func All() []Category {
	return []Category{Government, History, Civics}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label returns the human readable name, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}
