package schema

import (
	"fmt"
	"io/fs"
)

// Schema is the fully validated, cross-linked object graph built from one
// merged metadata document. Construction is a single pass in dependency
// order; the first defect aborts the whole build and no partial schema is
// ever exposed. The graph is read-only afterwards.
type Schema struct {
	Options    map[string]*Option
	Sections   []Section
	Enums      Enums
	Sources    map[string]*Source
	Transforms map[string]*Transform
	Sinks      map[string]*Sink
	Guides     []Guide
	Links      *Links
}

// New builds the schema from one merged raw document. guides supplies the
// guide markdown files and may be nil for none. The raw map is only read.
func New(raw map[string]any, guides fs.FS) (*Schema, error) {
	if err := checkKeys(raw, "enums", "options", "sections", "sources",
		"transforms", "sinks", "links"); err != nil {
		return nil, err
	}
	s := &Schema{}

	enums, err := subMap(raw, "enums")
	if err != nil {
		return nil, err
	}
	if s.Enums, err = buildEnums(enums); err != nil {
		return nil, err
	}

	opts, err := subMap(raw, "options")
	if err != nil {
		return nil, err
	}
	if s.Options, err = buildOptions(opts); err != nil {
		return nil, err
	}

	secs, err := anyList(raw, "sections")
	if err != nil {
		return nil, err
	}
	if s.Sections, err = buildSections(secs); err != nil {
		return nil, err
	}
	sortSections(s.Sections)

	if s.Sources, err = buildComponents(raw, "sources", newSource); err != nil {
		return nil, err
	}
	if s.Transforms, err = buildComponents(raw, "transforms", newTransform); err != nil {
		return nil, err
	}
	if s.Sinks, err = buildComponents(raw, "sinks", newSink); err != nil {
		return nil, err
	}

	linkAlternatives(s.Transforms)

	if s.Guides, err = loadGuides(guides); err != nil {
		return nil, fmt.Errorf("guides: %w", err)
	}

	links, err := subMap(raw, "links")
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = map[string]any{}
	}
	if s.Links, err = newLinks(links, s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildComponents[T any](raw map[string]any, key string, build func(string, map[string]any) (T, error)) (map[string]T, error) {
	sub, err := subMap(raw, key)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(sub))
	for _, name := range sortedKeys(sub) {
		m, ok := sub[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected a table, got %T", key, name, sub[name])
		}
		c, err := build(name, m)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", key, name, err)
		}
		out[name] = c
	}
	return out, nil
}

// linkAlternatives runs strictly after every transform exists. Two distinct
// transforms suggest each other when their function categories intersect;
// the result is sorted by name.
func linkAlternatives(transforms map[string]*Transform) {
	names := sortedKeys(transforms)
	for _, tn := range names {
		t := transforms[tn]
		var alts []*Transform
		for _, un := range names {
			if un == tn {
				continue
			}
			if u := transforms[un]; t.sharesCategory(u) {
				alts = append(alts, u)
			}
		}
		t.Alternatives = alts
	}
}

// SourceNames returns the source names in sorted order. The sibling
// accessors below do the same for transforms and sinks, giving renderers a
// deterministic iteration order over the component maps.
func (s *Schema) SourceNames() []string { return sortedKeys(s.Sources) }

func (s *Schema) TransformNames() []string { return sortedKeys(s.Transforms) }

func (s *Schema) SinkNames() []string { return sortedKeys(s.Sinks) }

// OptionNames returns the global option names in sorted order.
func (s *Schema) OptionNames() []string { return sortedKeys(s.Options) }

func (s *Schema) Source(name string) (*Source, error) {
	src, ok := s.Sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return src, nil
}

func (s *Schema) Transform(name string) (*Transform, error) {
	t, ok := s.Transforms[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q", name)
	}
	return t, nil
}

func (s *Schema) Sink(name string) (*Sink, error) {
	sink, ok := s.Sinks[name]
	if !ok {
		return nil, fmt.Errorf("unknown sink %q", name)
	}
	return sink, nil
}
