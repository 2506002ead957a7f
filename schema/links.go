package schema

import (
	"fmt"
	"net/url"
	"strings"
)

// Links is the cross-reference table, built after every component exists so
// references can be checked. docs entries are site paths; urls and tests are
// absolute URLs. A docs name shaped like sources.X, transforms.X, or sinks.X
// must reference a real component, and a tests name must appear in the
// correctness_tests or performance_tests enum.
type Links struct {
	docs  map[string]string
	urls  map[string]string
	tests map[string]string
}

func newLinks(raw map[string]any, s *Schema) (*Links, error) {
	if err := checkKeys(raw, "docs", "urls", "tests"); err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	l := &Links{}
	var err error
	if l.docs, err = stringMap(raw, "docs"); err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	if l.urls, err = stringMap(raw, "urls"); err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	if l.tests, err = stringMap(raw, "tests"); err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}

	for _, name := range sortedKeys(l.docs) {
		path := l.docs[name]
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("links: docs.%s: path %q must start with /", name, path)
		}
		if err := l.checkComponentRef(name, s); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(l.urls) {
		if err := checkURL(l.urls[name]); err != nil {
			return nil, fmt.Errorf("links: urls.%s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(l.tests) {
		if err := checkURL(l.tests[name]); err != nil {
			return nil, fmt.Errorf("links: tests.%s: %w", name, err)
		}
		if !s.Enums.Contains("correctness_tests", name) && !s.Enums.Contains("performance_tests", name) {
			return nil, fmt.Errorf("links: tests.%s: not a known correctness or performance test: %w", name, ErrInvalidEnum)
		}
	}
	return l, nil
}

func (l *Links) checkComponentRef(name string, s *Schema) error {
	kind, comp, ok := strings.Cut(name, ".")
	if !ok {
		return nil
	}
	switch kind {
	case "sources":
		if _, ok := s.Sources[comp]; !ok {
			return fmt.Errorf("links: docs.%s: unknown source %q", name, comp)
		}
	case "transforms":
		if _, ok := s.Transforms[comp]; !ok {
			return fmt.Errorf("links: docs.%s: unknown transform %q", name, comp)
		}
	case "sinks":
		if _, ok := s.Sinks[comp]; !ok {
			return fmt.Errorf("links: docs.%s: unknown sink %q", name, comp)
		}
	}
	return nil
}

// Fetch resolves one link. Unknown categories and names report the known
// keys so authors can spot typos without digging through the metadata.
func (l *Links) Fetch(category, name string) (string, error) {
	var m map[string]string
	switch category {
	case "docs":
		m = l.docs
	case "urls":
		m = l.urls
	case "tests":
		m = l.tests
	default:
		return "", fmt.Errorf("unknown link category %q, want docs, urls, or tests", category)
	}
	v, ok := m[name]
	if !ok {
		return "", fmt.Errorf("unknown %s link %q, known: %s", category, name, strings.Join(sortedKeys(m), ", "))
	}
	return v, nil
}

// checkURL accepts absolute http or https URLs only.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q: must be absolute http or https", raw)
	}
	return nil
}
