package schema

import (
	"fmt"
	"slices"
)

// Enums holds the global named value lists other parts of the document
// reference, keyed by list name.
type Enums map[string][]string

func buildEnums(raw map[string]any) (Enums, error) {
	out := make(Enums, len(raw))
	for _, name := range sortedKeys(raw) {
		if !optionNameRE.MatchString(name) {
			return nil, fmt.Errorf("enums: name %q: must be snake_case", name)
		}
		values, err := stringList(raw, name)
		if err != nil {
			return nil, fmt.Errorf("enums: %w", err)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("enums: %s: %w", name, ErrMissingField)
		}
		for i, v := range values {
			if slices.Contains(values[:i], v) {
				return nil, fmt.Errorf("enums: %s: value %q duplicated: %w", name, v, ErrInvalidEnum)
			}
		}
		out[name] = values
	}
	return out, nil
}

// Contains reports whether the named list exists and holds the value.
func (e Enums) Contains(list, value string) bool {
	return slices.Contains(e[list], value)
}

// Names returns the enum list names in sorted order.
func (e Enums) Names() []string { return sortedKeys(e) }
