package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Raw metadata decodes to nested map[string]any. The accessors below replace
// ad-hoc key fishing with checked reads; each caller owns a closed key set
// enforced through checkKeys, so a typoed key fails the build instead of
// silently vanishing.

func checkKeys(m map[string]any, allowed ...string) error {
	for _, k := range sortedKeys(m) {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("unrecognized key %q", k)
		}
	}
	return nil
}

// reqString reads a mandatory non-empty string; absent and blank are the
// same defect.
func reqString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", key, v)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	return s, nil
}

func optString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", key, v)
	}
	return s, nil
}

func optBool(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected bool, got %T", key, v)
	}
	return b, nil
}

// subMap reads an optional nested table. Absent yields nil, nil.
func subMap(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	mm, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a table, got %T", key, v)
	}
	return mm, nil
}

// anyList reads an optional list. Absent yields nil, nil.
func anyList(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
	}
	return l, nil
}

func stringList(m map[string]any, key string) ([]string, error) {
	l, err := anyList(m, key)
	if err != nil || l == nil {
		return nil, err
	}
	out := make([]string, 0, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %T", key, i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// stringMap reads an optional table whose values are all strings.
func stringMap(m map[string]any, key string) (map[string]string, error) {
	mm, err := subMap(m, key)
	if err != nil || mm == nil {
		return nil, err
	}
	out := make(map[string]string, len(mm))
	for _, k := range sortedKeys(mm) {
		s, ok := mm[k].(string)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected string, got %T", key, k, mm[k])
		}
		out[k] = s
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
