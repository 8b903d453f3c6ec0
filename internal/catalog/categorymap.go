package catalog

// AllCategories is the category wildcard the storefront selector starts on.
const AllCategories = "All"

// CategoryMap is the ordered category -> sub-category mapping. Categories keep
// registration order, and so does each sub-category list, which is what makes
// the derived option lists stable across calls.
type CategoryMap struct {
	names []string
	subs  map[string][]string
}

func NewCategoryMap() *CategoryMap {
	return &CategoryMap{subs: make(map[string][]string)}
}

// Add registers a category. Re-adding an existing one is a no-op.
func (m *CategoryMap) Add(category string) bool {
	if _, ok := m.subs[category]; ok {
		return false
	}
	m.names = append(m.names, category)
	m.subs[category] = nil
	return true
}

// AddSub appends a sub-category under category, registering the category if
// needed. Duplicates within one category are dropped.
func (m *CategoryMap) AddSub(category, sub string) bool {
	m.Add(category)
	for _, s := range m.subs[category] {
		if s == sub {
			return false
		}
	}
	m.subs[category] = append(m.subs[category], sub)
	return true
}

func (m *CategoryMap) Categories() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *CategoryMap) Subs(category string) []string {
	out := make([]string, len(m.subs[category]))
	copy(out, m.subs[category])
	return out
}

func (m *CategoryMap) Has(category, sub string) bool {
	for _, s := range m.subs[category] {
		if s == sub {
			return true
		}
	}
	return false
}

// CategoryOf returns the first registered category containing sub.
func (m *CategoryMap) CategoryOf(sub string) (string, bool) {
	for _, name := range m.names {
		if m.Has(name, sub) {
			return name, true
		}
	}
	return "", false
}
