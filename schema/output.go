package schema

import "fmt"

// Output declares one event stream a source emits: the event type plus the
// metadata fields stamped onto each event.
type Output struct {
	Type        EventType
	Description string
	Fields      map[string]*Option
}

func newOutput(raw map[string]any) (Output, error) {
	if err := checkKeys(raw, "type", "description", "fields"); err != nil {
		return Output{}, err
	}
	typ, err := reqString(raw, "type")
	if err != nil {
		return Output{}, err
	}
	et, err := parseEventType(typ)
	if err != nil {
		return Output{}, err
	}
	desc, err := optString(raw, "description")
	if err != nil {
		return Output{}, err
	}
	fields, err := subMap(raw, "fields")
	if err != nil {
		return Output{}, err
	}
	opts, err := buildOptions(fields)
	if err != nil {
		return Output{}, fmt.Errorf("fields: %w", err)
	}
	return Output{Type: et, Description: desc, Fields: opts}, nil
}

// buildOutputs requires at least one declared output.
func buildOutputs(raw []any) ([]Output, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("outputs: %w", ErrMissingField)
	}
	out := make([]Output, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("outputs[%d]: expected a table, got %T", i, v)
		}
		o, err := newOutput(m)
		if err != nil {
			return nil, fmt.Errorf("outputs[%d]: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}
