package discovery

import (
	"strings"

	"ptx/internal/domain"
)

// Resolve maps a cursor position or explicit text selection to the most
// specific test entity. An explicit selection always wins and is used verbatim
// as the qualified name, with enclosing quotes trimmed. A nil result means no
// entity matched and the caller should operate on the whole file.
func Resolve(tree []*domain.TestEntity, cursorLine int, selectedText string) *domain.Selector {
	if trimmed := strings.Trim(strings.TrimSpace(selectedText), `"'`); trimmed != "" {
		kind := domain.KindFunction
		if strings.Contains(trimmed, domain.Separator) {
			kind = domain.KindMethod
		}
		return &domain.Selector{QualifiedName: trimmed, Kind: kind}
	}
	return resolveLine(tree, cursorLine)
}

// resolveLine returns the deepest entity whose span contains the line.
// Children are consulted first so a method wins over its enclosing class.
// Under the sibling-uniqueness invariant at most one entity matches per level;
// a violating tree resolves to the first match in traversal order.
func resolveLine(entities []*domain.TestEntity, line int) *domain.Selector {
	for _, entity := range entities {
		if child := resolveLine(entity.Children, line); child != nil {
			return child
		}
		if entity.Contains(line) {
			return &domain.Selector{QualifiedName: entity.QualifiedName, Kind: entity.Kind}
		}
	}
	return nil
}
