package schema

import "fmt"

// EventType is the kind of event a component emits or accepts.
type EventType string

const (
	EventLog    EventType = "log"
	EventMetric EventType = "metric"
	EventTrace  EventType = "trace"
)

func parseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventLog, EventMetric, EventTrace:
		return t, nil
	}
	return "", fmt.Errorf("event type %q: %w", s, ErrInvalidEnum)
}

func parseEventTypes(raw []string) ([]EventType, error) {
	out := make([]EventType, 0, len(raw))
	for _, s := range raw {
		t, err := parseEventType(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// DeliveryGuarantee states how hard a component tries not to lose events.
type DeliveryGuarantee string

const (
	AtLeastOnce DeliveryGuarantee = "at_least_once"
	BestEffort  DeliveryGuarantee = "best_effort"
)

func parseDeliveryGuarantee(s string) (DeliveryGuarantee, error) {
	switch g := DeliveryGuarantee(s); g {
	case AtLeastOnce, BestEffort:
		return g, nil
	}
	return "", fmt.Errorf("delivery guarantee %q: %w", s, ErrInvalidEnum)
}

// WriteStyle is how a sink forwards events downstream.
type WriteStyle string

const (
	WriteBatching  WriteStyle = "batching"
	WriteStreaming WriteStyle = "streaming"
)

func parseWriteStyle(s string) (WriteStyle, error) {
	switch w := WriteStyle(s); w {
	case WriteBatching, WriteStreaming:
		return w, nil
	}
	return "", fmt.Errorf("write style %q: %w", s, ErrInvalidEnum)
}
