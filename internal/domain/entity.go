package domain

// Kind classifies a test entity within a source file.
type Kind string

const (
	KindModule   Kind = "module"
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindMethod   Kind = "method"
)

// Separator joins a class name and a method name into a runner-addressable
// selector (pytest's `File.py::TestClass::test_method` convention).
const Separator = "::"

// TestEntity is one discoverable, independently-runnable unit found in a test
// file: a module-level test function, a test class, or a method inside one.
// Entities are never mutated after construction; a changed file yields a new tree.
type TestEntity struct {
	Name          string        `json:"name"`
	QualifiedName string        `json:"qualified_name"`
	Kind          Kind          `json:"kind"`
	StartLine     int           `json:"start_line"`         // 1-based
	EndLine       int           `json:"end_line,omitempty"` // 0 when unknown
	Async         bool          `json:"async,omitempty"`
	Parametrized  bool          `json:"parametrized,omitempty"`
	Fixtures      []string      `json:"fixtures,omitempty"`
	Children      []*TestEntity `json:"children,omitempty"`
}

// Contains reports whether line falls inside this entity's span. When the end
// line is unknown only the declaration line itself matches.
func (e *TestEntity) Contains(line int) bool {
	if e.EndLine > 0 {
		return line >= e.StartLine && line <= e.EndLine
	}
	return line == e.StartLine
}

// CountRunnable returns the number of directly runnable entities (functions and
// methods) in the subtree rooted at e.
func (e *TestEntity) CountRunnable() int {
	count := 0
	if e.Kind == KindFunction || e.Kind == KindMethod {
		count = 1
	}
	for _, c := range e.Children {
		count += c.CountRunnable()
	}
	return count
}
