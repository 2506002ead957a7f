package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Sink is a component that writes events out of the pipeline. Sinks always
// carry the implicit buffer option; batching sinks additionally carry batch
// and request options. Implicit options win over raw options of the same
// name so component authors cannot redefine shared behavior.
type Sink struct {
	Component
	DeliveryGuarantee  DeliveryGuarantee
	InputTypes         []EventType
	WriteStyle         WriteStyle
	WriteToDescription string
	ServiceProvider    string
	ServiceLimitsURL   string
}

func newSink(name string, raw map[string]any) (*Sink, error) {
	if err := checkKeys(raw, "title", "description", "beta", "common",
		"options", "sections", "resources", "delivery_guarantee",
		"input_types", "write_style", "write_to_description",
		"service_provider", "service_limits_url", "tls"); err != nil {
		return nil, err
	}
	base, err := newComponent(name, raw)
	if err != nil {
		return nil, err
	}
	s := &Sink{Component: base}

	dg, err := reqString(raw, "delivery_guarantee")
	if err != nil {
		return nil, err
	}
	if s.DeliveryGuarantee, err = parseDeliveryGuarantee(dg); err != nil {
		return nil, err
	}

	types, err := stringList(raw, "input_types")
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("input_types: %w", ErrMissingField)
	}
	if s.InputTypes, err = parseEventTypes(types); err != nil {
		return nil, fmt.Errorf("input_types: %w", err)
	}
	for i, t := range s.InputTypes {
		if slices.Contains(s.InputTypes[:i], t) {
			return nil, fmt.Errorf("input_types: %q duplicated: %w", t, ErrInvalidEnum)
		}
	}

	style, err := reqString(raw, "write_style")
	if err != nil {
		return nil, err
	}
	if s.WriteStyle, err = parseWriteStyle(style); err != nil {
		return nil, err
	}
	if s.WriteToDescription, err = reqString(raw, "write_to_description"); err != nil {
		return nil, err
	}
	if err := checkNoTrailingPeriod("write_to_description", s.WriteToDescription); err != nil {
		return nil, err
	}

	if s.ServiceProvider, err = optString(raw, "service_provider"); err != nil {
		return nil, err
	}
	if s.ServiceLimitsURL, err = optString(raw, "service_limits_url"); err != nil {
		return nil, err
	}
	if s.ServiceLimitsURL != "" {
		if err := checkURL(s.ServiceLimitsURL); err != nil {
			return nil, fmt.Errorf("service_limits_url: %w", err)
		}
		s.Resources = append(s.Resources, Resource{Name: "Service Limits", URL: s.ServiceLimitsURL})
	}

	if err := s.attachTLS(raw); err != nil {
		return nil, err
	}
	s.Options["buffer"] = bufferOption()
	if s.Batching() {
		s.Options["batch"] = batchOption()
		s.Options["request"] = requestOption()
	}

	derived, err := deriveSinkSections(s)
	if err != nil {
		return nil, err
	}
	s.Sections = append(s.Sections, derived...)
	sortSections(s.Sections)
	return s, nil
}

// Batching reports whether the sink batches and flushes. The write style is
// a closed enum; a corrupted value is a programming error, not a fallback.
func (s *Sink) Batching() bool {
	switch s.WriteStyle {
	case WriteBatching:
		return true
	case WriteStreaming:
		return false
	}
	panic(fmt.Sprintf("unknown write style %q", s.WriteStyle))
}

func (s *Sink) Streaming() bool { return !s.Batching() }

// WriteVerb returns the singular verb for the sink's write style, used by
// renderers to splice write_to_description into sentences.
func (s *Sink) WriteVerb() string {
	switch s.WriteStyle {
	case WriteBatching:
		return "batch and flush"
	case WriteStreaming:
		return "stream"
	}
	panic(fmt.Sprintf("unknown write style %q", s.WriteStyle))
}

func (s *Sink) PluralWriteVerb() string {
	switch s.WriteStyle {
	case WriteBatching:
		return "batches and flushes"
	case WriteStreaming:
		return "streams"
	}
	panic(fmt.Sprintf("unknown write style %q", s.WriteStyle))
}

// --- implicit options ---

func bufferOption() *Option {
	return mustOption("buffer", map[string]any{
		"description": "Configures the sink specific buffer.",
		"type":        "table",
		"options": map[string]any{
			"type": map[string]any{
				"description": "The buffer's type and storage mechanism. `disk` buffers are persisted across restarts.",
				"type":        "string",
				"default":     "memory",
				"enum":        []any{"memory", "disk"},
			},
			"when_full": map[string]any{
				"description": "The behavior when the buffer becomes full.",
				"type":        "string",
				"default":     "block",
				"enum":        []any{"block", "drop_newest"},
			},
			"max_size": map[string]any{
				"description":   "The maximum size of the buffer on the disk.",
				"type":          "int",
				"unit":          "bytes",
				"examples":      []any{104900000},
				"relevant_when": `type == "disk"`,
			},
			"num_items": map[string]any{
				"description":   "The maximum number of events allowed in the buffer.",
				"type":          "int",
				"default":       500,
				"unit":          "events",
				"relevant_when": `type == "memory"`,
			},
		},
	})
}

func batchOption() *Option {
	return mustOption("batch", map[string]any{
		"description": "Configures the sink batching behavior.",
		"type":        "table",
		"options": map[string]any{
			"max_events": map[string]any{
				"description": "The maximum number of events in a batch before it is flushed.",
				"type":        "int",
				"unit":        "events",
			},
			"max_bytes": map[string]any{
				"description": "The maximum size of a batch before it is flushed.",
				"type":        "int",
				"unit":        "bytes",
			},
			"timeout_secs": map[string]any{
				"description": "The maximum age of a batch before it is flushed.",
				"type":        "int",
				"default":     1,
				"unit":        "seconds",
			},
		},
	})
}

func requestOption() *Option {
	return mustOption("request", map[string]any{
		"description": "Configures the sink request behavior.",
		"type":        "table",
		"options": map[string]any{
			"in_flight_limit": map[string]any{
				"description": "The maximum number of in-flight requests allowed at any given time.",
				"type":        "int",
				"default":     5,
				"unit":        "requests",
			},
			"timeout_secs": map[string]any{
				"description": "The maximum time a request can take before being aborted.",
				"type":        "int",
				"default":     60,
				"unit":        "seconds",
			},
			"rate_limit_duration_secs": map[string]any{
				"description": "The window used for the `rate_limit_num` option.",
				"type":        "int",
				"default":     1,
				"unit":        "seconds",
			},
			"rate_limit_num": map[string]any{
				"description": "The maximum number of requests allowed within the `rate_limit_duration_secs` window.",
				"type":        "int",
				"default":     5,
			},
			"retry_attempts": map[string]any{
				"description": "The maximum number of retries to make for failed requests.",
				"type":        "int",
			},
			"retry_backoff_secs": map[string]any{
				"description": "The amount of time to wait before attempting a failed request again.",
				"type":        "int",
				"default":     1,
				"unit":        "seconds",
			},
		},
	})
}

// --- derived sections ---

// Compression and encoding values render through closed lookup tables. A
// value outside its table is an authoring defect that fails the build, so
// the tables stay in sync with the enums by force.
var compressionDescriptions = map[string]string{
	"none": "No compression",
	"gzip": "Gzip standard DEFLATE compression",
}

var encodingDescriptions = map[string]string{
	"text":   "The message field only, new line delimited",
	"json":   "Each event encoded as JSON, one object per payload",
	"ndjson": "Each event encoded as JSON, new line delimited",
}

// deriveSinkSections computes the full derived section set in one pass.
// The caller sorts afterwards, so nothing here depends on append order.
func deriveSinkSections(s *Sink) ([]Section, error) {
	var out []Section
	add := func(title, body string) error {
		sec, err := newSection(title, body)
		if err != nil {
			return err
		}
		out = append(out, sec)
		return nil
	}

	buffers := fmt.Sprintf("The `%s` sink buffers events as configured by the `buffer` option. "+
		"When the buffer fills it either blocks new events or drops them, keeping back pressure explicit.", s.Name)
	if err := add("Buffers", buffers); err != nil {
		return nil, err
	}

	health := fmt.Sprintf("The `%s` sink verifies the downstream service during boot and refuses to start if the check fails.", s.Name)
	if _, ok := s.Options["healthcheck_uri"]; ok {
		health = fmt.Sprintf("If the `healthcheck_uri` option is provided, the `%s` sink checks that endpoint "+
			"during boot and refuses to start if the check fails.", s.Name)
	}
	if err := add("Health Checks", health); err != nil {
		return nil, err
	}

	if s.Batching() {
		body := fmt.Sprintf("The `%s` sink %s events as governed by the `batch` and `request` options. "+
			"A batch is flushed when it reaches `max_events` or `max_bytes`, or ages past `timeout_secs`.",
			s.Name, s.PluralWriteVerb())
		if err := add("Batching", body); err != nil {
			return nil, err
		}
	} else {
		body := fmt.Sprintf("The `%s` sink %s events, writing each one downstream as it arrives instead of accumulating batches.",
			s.Name, s.PluralWriteVerb())
		if err := add("Streaming", body); err != nil {
			return nil, err
		}
	}

	if s.ServiceProvider == "AWS" {
		body := "Credentials are resolved through the standard AWS chain, checking environment variables " +
			"before the shared credentials file and the instance role."
		if err := add("Authentication", body); err != nil {
			return nil, err
		}
	}

	if opt, ok := s.Options["compression"]; ok {
		list, err := enumSectionBody("compression", opt, compressionDescriptions)
		if err != nil {
			return nil, err
		}
		body := fmt.Sprintf("The `%s` sink compresses payloads before flushing. The `compression` option accepts:\n\n%s", s.Name, list)
		if err := add("Compression", body); err != nil {
			return nil, err
		}
	}

	if opt, ok := s.Options["encoding"]; ok {
		list, err := enumSectionBody("encoding", opt, encodingDescriptions)
		if err != nil {
			return nil, err
		}
		body := fmt.Sprintf("The `%s` sink encodes events before writing them downstream. The `encoding` option accepts:\n\n%s", s.Name, list)
		if err := add("Encodings", body); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func enumSectionBody(name string, opt *Option, descriptions map[string]string) (string, error) {
	if opt.Enum == nil {
		return "", fmt.Errorf("%s option must enumerate its values: %w", name, ErrMissingField)
	}
	var b strings.Builder
	for _, v := range opt.Enum {
		sv, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%s enum value %v: expected string, got %T", name, v, v)
		}
		desc, ok := descriptions[sv]
		if !ok {
			return "", fmt.Errorf("%s value %q has no description: %w", name, sv, ErrInvalidEnum)
		}
		fmt.Fprintf(&b, "* `%s`: %s\n", sv, desc)
	}
	return b.String(), nil
}
