package namer

// mapping assigns each element the first name candidate that no
// conflicting element already holds. Assignments are memoized.
type mapping[T comparable] struct {
	elementToName  map[T]string
	nameToElements map[string][]T

	conflict func(a, b T) bool
	reserved func(name string) bool
	mangle   func(name string) string
}

func newMapping[T comparable](conflict func(a, b T) bool, mangle func(string) string) *mapping[T] {
	return &mapping[T]{
		elementToName:  make(map[T]string),
		nameToElements: make(map[string][]T),
		conflict:       conflict,
		mangle:         mangle,
	}
}

func (m *mapping[T]) getOrPut(e T, base func() string) string {
	if name, ok := m.elementToName[e]; ok {
		return name
	}
	candidate := base()
	for !m.available(e, candidate) {
		candidate = m.mangle(candidate)
	}
	m.elementToName[e] = candidate
	m.nameToElements[candidate] = append(m.nameToElements[candidate], e)
	return candidate
}

// put records a fixed name for e without checking for conflicts.
func (m *mapping[T]) put(e T, name string) string {
	if existing, ok := m.elementToName[e]; ok {
		return existing
	}
	m.elementToName[e] = name
	m.nameToElements[name] = append(m.nameToElements[name], e)
	return name
}

func (m *mapping[T]) available(e T, name string) bool {
	if m.reserved != nil && m.reserved(name) {
		return false
	}
	for _, other := range m.nameToElements[name] {
		if other != e && m.conflict(e, other) {
			return false
		}
	}
	return true
}

// nameTaken reports whether any element holds name.
func (m *mapping[T]) nameTaken(name string) bool {
	return len(m.nameToElements[name]) > 0
}

func appendUnderscore(s string) string { return s + "_" }

// mangleSelector inserts an underscore before the trailing colon, or
// appends one to a unary selector.
func mangleSelector(s string) string {
	if n := len(s); n > 0 && s[n-1] == ':' {
		return s[:n-1] + "_:"
	}
	return s + "_"
}

// mangleSwiftName inserts an underscore before the argument list.
func mangleSwiftName(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '(' {
			return s[:i] + "_" + s[i:]
		}
	}
	return s + "_"
}
