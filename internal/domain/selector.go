package domain

import "strings"

// Selector is the transient output of position resolution: the runner-addressable
// qualified name of one entity plus its kind. A nil *Selector means "no entity
// matched; operate on the whole file".
type Selector struct {
	QualifiedName string
	Kind          Kind
}

// Split returns the class and method parts of a compound selector. For a bare
// selector the class part is empty.
func (s *Selector) Split() (class, name string) {
	if idx := strings.Index(s.QualifiedName, Separator); idx >= 0 {
		return s.QualifiedName[:idx], s.QualifiedName[idx+len(Separator):]
	}
	return "", s.QualifiedName
}
