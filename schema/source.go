package schema

import "slices"

// Source is a component that ingests events into the pipeline.
type Source struct {
	Component
	DeliveryGuarantee  DeliveryGuarantee
	ThroughDescription string
	Outputs            []Output
}

func newSource(name string, raw map[string]any) (*Source, error) {
	if err := checkKeys(raw, "title", "description", "beta", "common",
		"options", "sections", "resources", "delivery_guarantee",
		"through_description", "outputs", "tls"); err != nil {
		return nil, err
	}
	base, err := newComponent(name, raw)
	if err != nil {
		return nil, err
	}
	s := &Source{Component: base}

	dg, err := reqString(raw, "delivery_guarantee")
	if err != nil {
		return nil, err
	}
	if s.DeliveryGuarantee, err = parseDeliveryGuarantee(dg); err != nil {
		return nil, err
	}
	if s.ThroughDescription, err = reqString(raw, "through_description"); err != nil {
		return nil, err
	}
	if err := checkNoTrailingPeriod("through_description", s.ThroughDescription); err != nil {
		return nil, err
	}
	outs, err := anyList(raw, "outputs")
	if err != nil {
		return nil, err
	}
	if s.Outputs, err = buildOutputs(outs); err != nil {
		return nil, err
	}
	if err := s.attachTLS(raw); err != nil {
		return nil, err
	}
	sortSections(s.Sections)
	return s, nil
}

// OutputTypes returns the event types the source emits, deduplicated and
// sorted.
func (s *Source) OutputTypes() []EventType {
	seen := make(map[EventType]bool, len(s.Outputs))
	var out []EventType
	for _, o := range s.Outputs {
		if !seen[o.Type] {
			seen[o.Type] = true
			out = append(out, o.Type)
		}
	}
	slices.Sort(out)
	return out
}
