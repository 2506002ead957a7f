package schema

import (
	"fmt"
	"slices"
)

// Transform is a component that reshapes events in flight. Alternatives is
// derived after every transform exists: transforms sharing at least one
// function category suggest each other.
type Transform struct {
	Component
	FunctionCategories []string
	Alternatives       []*Transform
}

func newTransform(name string, raw map[string]any) (*Transform, error) {
	if err := checkKeys(raw, "title", "description", "beta", "common",
		"options", "sections", "resources", "function_categories"); err != nil {
		return nil, err
	}
	base, err := newComponent(name, raw)
	if err != nil {
		return nil, err
	}
	t := &Transform{Component: base}
	cats, err := stringList(raw, "function_categories")
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("function_categories: %w", ErrMissingField)
	}
	for i, c := range cats {
		if !optionNameRE.MatchString(c) {
			return nil, fmt.Errorf("function_categories[%d] %q: must be snake_case", i, c)
		}
		if slices.Contains(cats[:i], c) {
			return nil, fmt.Errorf("function_categories: %q duplicated: %w", c, ErrInvalidEnum)
		}
	}
	t.FunctionCategories = cats
	sortSections(t.Sections)
	return t, nil
}

func (t *Transform) sharesCategory(u *Transform) bool {
	for _, c := range t.FunctionCategories {
		if slices.Contains(u.FunctionCategories, c) {
			return true
		}
	}
	return false
}

// AlternativeNames returns the names of the derived alternatives in the
// order they were linked, which is sorted by name.
func (t *Transform) AlternativeNames() []string {
	out := make([]string, 0, len(t.Alternatives))
	for _, a := range t.Alternatives {
		out = append(out, a.Name)
	}
	return out
}
