package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Section is one titled documentation block. Components collect sections
// from their raw metadata and from derivation rules, then sort them by
// title so rendering order never depends on which rule appended first.
type Section struct {
	Title string
	Body  string
}

func newSection(title, body string) (Section, error) {
	if strings.TrimSpace(title) == "" {
		return Section{}, fmt.Errorf("section title: %w", ErrMissingField)
	}
	if strings.TrimSpace(body) == "" {
		return Section{}, fmt.Errorf("section %q: body: %w", title, ErrMissingField)
	}
	return Section{Title: title, Body: body}, nil
}

func buildSections(raw []any) ([]Section, error) {
	out := make([]Section, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sections[%d]: expected a table, got %T", i, v)
		}
		if err := checkKeys(m, "title", "body"); err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		title, err := optString(m, "title")
		if err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		body, err := optString(m, "body")
		if err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		s, err := newSection(title, body)
		if err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func sortSections(sections []Section) {
	slices.SortFunc(sections, func(a, b Section) int {
		return strings.Compare(a.Title, b.Title)
	})
}
