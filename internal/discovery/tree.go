package discovery

import (
	"sort"

	"ptx/internal/domain"
)

// buildTree normalizes a flat strategy output into an entity tree. Grouping is
// a two-pass, best-effort heuristic: first collect class entities by name, then
// attach methods to the class they declare. A method whose class was never
// emitted stays at top level rather than being invented.
func buildTree(raws []RawTest) []*domain.TestEntity {
	classes := make(map[string]*domain.TestEntity)
	var roots []*domain.TestEntity

	for _, raw := range raws {
		if raw.Type != "class" || raw.Name == "" {
			continue
		}
		if _, exists := classes[raw.Name]; exists {
			// Duplicate class name in one file; first declaration wins.
			continue
		}
		entity := &domain.TestEntity{
			Name:          raw.Name,
			QualifiedName: raw.Name,
			Kind:          domain.KindClass,
			StartLine:     raw.Line,
			EndLine:       raw.EndLine,
		}
		classes[raw.Name] = entity
		roots = append(roots, entity)
	}

	for _, raw := range raws {
		if raw.Type == "class" || raw.Name == "" {
			continue
		}
		entity := &domain.TestEntity{
			Name:         raw.Name,
			Kind:         domain.KindFunction,
			StartLine:    raw.Line,
			EndLine:      raw.EndLine,
			Async:        raw.Async,
			Parametrized: raw.Parametrized,
			Fixtures:     raw.Fixtures,
		}
		if parent, ok := classes[raw.Class]; ok && raw.Class != "" {
			entity.Kind = domain.KindMethod
			entity.QualifiedName = parent.Name + domain.Separator + entity.Name
			if !containsName(parent.Children, entity.Name) {
				parent.Children = append(parent.Children, entity)
			}
			continue
		}
		entity.QualifiedName = entity.Name
		if !containsName(roots, entity.Name) {
			roots = append(roots, entity)
		}
	}

	sortByStartLine(roots)
	for _, class := range classes {
		sortByStartLine(class.Children)
	}
	return roots
}

// containsName enforces sibling name uniqueness; a violating duplicate is
// dropped, first occurrence wins.
func containsName(entities []*domain.TestEntity, name string) bool {
	for _, e := range entities {
		if e.Name == name {
			return true
		}
	}
	return false
}

func sortByStartLine(entities []*domain.TestEntity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].StartLine < entities[j].StartLine
	})
}
