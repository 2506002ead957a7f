package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"pipemeta/schema"
)

// Report collects everything wrong with a configuration. Errors block the
// config, warnings are advisory. Check never stops at the first problem, so
// one run shows the whole picture.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the configuration passed.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check verifies a pipeline configuration against the component schema:
// the overall shape, every component's type and options, the input wiring
// between components, and the event types flowing across each edge.
func Check(f *File, s *schema.Schema) *Report {
	r := &Report{}

	checkShape(r, f)
	checkGlobals(r, f.Globals, s)

	sourceDefs := make(map[string]*schema.Source, len(f.Sources))
	for _, name := range sortedKeys(f.Sources) {
		c := orEmpty(f.Sources[name])
		path := "sources." + name
		if len(c.Inputs) > 0 {
			r.errorf("%s: sources cannot have inputs", path)
		}
		def, ok := resolveType(r, path, c, s.Sources)
		if !ok {
			continue
		}
		sourceDefs[name] = def
		checkOptions(r, path, def.Options, c.Options)
	}

	for _, name := range sortedKeys(f.Transforms) {
		c := orEmpty(f.Transforms[name])
		path := "transforms." + name
		checkInputs(r, f, "transform", name, c)
		def, ok := resolveType(r, path, c, s.Transforms)
		if !ok {
			continue
		}
		checkOptions(r, path, def.Options, c.Options)
	}

	for _, name := range sortedKeys(f.Sinks) {
		c := orEmpty(f.Sinks[name])
		path := "sinks." + name
		checkInputs(r, f, "sink", name, c)
		def, ok := resolveType(r, path, c, s.Sinks)
		if !ok {
			continue
		}
		checkOptions(r, path, def.Options, sinkOptions(r, path, c))

		// Event types are only declared on sources and sinks, so edges
		// through a transform cannot be checked.
		for _, in := range c.Inputs {
			src, ok := sourceDefs[in]
			if !ok {
				continue
			}
			if !typesIntersect(src.OutputTypes(), def.InputTypes) {
				r.errorf("data type mismatch between source %q (%s) and sink %q (%s)",
					in, typeList(src.OutputTypes()), name, typeList(def.InputTypes))
			}
		}
	}

	checkCycles(r, f)
	checkConsumers(r, f)
	return r
}

func checkShape(r *Report, f *File) {
	if len(f.Sources) == 0 {
		r.errorf("no sources defined in the config")
	}
	if len(f.Sinks) == 0 {
		r.errorf("no sinks defined in the config")
	}

	kinds := map[string][]string{}
	for name := range f.Sources {
		kinds[name] = append(kinds[name], "source")
	}
	for name := range f.Transforms {
		kinds[name] = append(kinds[name], "transform")
	}
	for name := range f.Sinks {
		kinds[name] = append(kinds[name], "sink")
	}
	for _, name := range sortedKeys(kinds) {
		if strings.Contains(name, ".") {
			r.errorf("component name %q must not contain %q", name, ".")
		}
		if uses := kinds[name]; len(uses) > 1 {
			r.errorf("more than one component named %q (%s)", name, strings.Join(uses, ", "))
		}
	}
}

func checkGlobals(r *Report, globals map[string]any, s *schema.Schema) {
	for _, k := range sortedKeys(globals) {
		opt, ok := s.Options[k]
		if !ok {
			r.errorf("unknown global option %q", k)
			continue
		}
		checkValue(r, k, opt, globals[k])
	}
}

// orEmpty returns c, or an empty component for a bare stanza that decoded
// as nil.
func orEmpty(c *Component) *Component {
	if c == nil {
		return &Component{}
	}
	return c
}

func resolveType[T any](r *Report, path string, c *Component, defs map[string]T) (T, bool) {
	var zero T
	if c.Type == "" {
		r.errorf("%s: missing type", path)
		return zero, false
	}
	def, ok := defs[c.Type]
	if !ok {
		r.errorf("%s: unknown type %q", path, c.Type)
		return zero, false
	}
	return def, true
}

func checkInputs(r *Report, f *File, kind, name string, c *Component) {
	if len(c.Inputs) == 0 {
		r.errorf("%s %q has no inputs", kind, name)
		return
	}
	for i, in := range c.Inputs {
		if slices.Contains(c.Inputs[:i], in) {
			r.errorf("%s %q lists input %q more than once", kind, name, in)
			continue
		}
		_, isSource := f.Sources[in]
		_, isTransform := f.Transforms[in]
		if !isSource && !isTransform {
			r.errorf("input %q for %s %q doesn't match any components", in, kind, name)
		}
	}
}

// sinkOptions strips the runtime-level healthcheck switch before the
// schema-declared options are checked.
func sinkOptions(r *Report, path string, c *Component) map[string]any {
	v, ok := c.Options["healthcheck"]
	if !ok {
		return c.Options
	}
	if _, isBool := v.(bool); !isBool {
		r.errorf("%s.healthcheck: expected bool, got %T", path, v)
	}
	opts := make(map[string]any, len(c.Options))
	for k, ov := range c.Options {
		if k != "healthcheck" {
			opts[k] = ov
		}
	}
	return opts
}

// checkOptions verifies the written values against the declared options in
// both directions: every written key must be declared (or matched by a "*"
// wildcard child), and every required option that is relevant given the
// written values must be present.
func checkOptions(r *Report, prefix string, defs map[string]*schema.Option, values map[string]any) {
	for _, k := range sortedKeys(values) {
		opt, ok := defs[k]
		if !ok {
			opt, ok = defs["*"]
		}
		if !ok {
			r.errorf("%s: unknown option %q", prefix, k)
			continue
		}
		checkValue(r, prefix+"."+k, opt, values[k])
	}
	for _, k := range sortedKeys(defs) {
		opt := defs[k]
		if k == "*" || !opt.Required {
			continue
		}
		if _, ok := values[k]; ok {
			continue
		}
		relevant, err := opt.Relevant(values)
		if err != nil {
			r.errorf("%s.%s: %v", prefix, k, err)
			continue
		}
		if relevant {
			r.errorf("%s: missing required option %q", prefix, k)
		}
	}
}

func checkValue(r *Report, path string, opt *schema.Option, v any) {
	if opt.Type == schema.TypeTable {
		// A bare key with no body decodes as nil and counts as empty.
		m, ok := v.(map[string]any)
		if !ok && v != nil {
			r.errorf("%s: expected a table, got %T", path, v)
			return
		}
		checkOptions(r, path, opt.Options, m)
		return
	}
	if err := opt.Accepts(v); err != nil {
		r.errorf("%s: %v", path, err)
	}
}

// checkCycles runs a depth-first search over the transform graph. Only
// transforms can participate in a cycle, since sources have no inputs and
// sinks have no outputs. The first cycle found is reported.
func checkCycles(r *Report, f *File) {
	const (
		white = iota
		grey
		black
	)
	color := map[string]int{}
	var path []string

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = grey
		path = append(path, name)
		for _, in := range orEmpty(f.Transforms[name]).Inputs {
			if _, ok := f.Transforms[in]; !ok {
				continue
			}
			switch color[in] {
			case grey:
				i := slices.Index(path, in)
				cycle := append(slices.Clone(path[i:]), in)
				r.errorf("cyclic dependency detected in the chain [ %s ]", strings.Join(cycle, " -> "))
				return true
			case white:
				if visit(in) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return false
	}

	for _, name := range sortedKeys(f.Transforms) {
		if color[name] == white && visit(name) {
			return
		}
	}
}

func checkConsumers(r *Report, f *File) {
	consumed := map[string]bool{}
	for _, c := range f.Transforms {
		for _, in := range orEmpty(c).Inputs {
			consumed[in] = true
		}
	}
	for _, c := range f.Sinks {
		for _, in := range orEmpty(c).Inputs {
			consumed[in] = true
		}
	}
	for _, name := range sortedKeys(f.Sources) {
		if !consumed[name] {
			r.warnf("source %q has no consumers", name)
		}
	}
	for _, name := range sortedKeys(f.Transforms) {
		if !consumed[name] {
			r.warnf("transform %q has no consumers", name)
		}
	}
}

func typesIntersect(out, in []schema.EventType) bool {
	for _, t := range out {
		if slices.Contains(in, t) {
			return true
		}
	}
	return false
}

func typeList(ts []schema.EventType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
