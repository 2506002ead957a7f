package schema

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// OptionType is the closed set of value kinds an option can take. List
// kinds use the bracket form from the metadata files.
type OptionType string

const (
	TypeString     OptionType = "string"
	TypeInt        OptionType = "int"
	TypeFloat      OptionType = "float"
	TypeBool       OptionType = "bool"
	TypeTable      OptionType = "table"
	TypeStringList OptionType = "[string]"
	TypeIntList    OptionType = "[int]"
	TypeFloatList  OptionType = "[float]"
	TypeBoolList   OptionType = "[bool]"
)

func parseOptionType(s string) (OptionType, error) {
	switch t := OptionType(s); t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeTable,
		TypeStringList, TypeIntList, TypeFloatList, TypeBoolList:
		return t, nil
	}
	return "", fmt.Errorf("option type %q: %w", s, ErrInvalidEnum)
}

// optionNameRE also covers component and enum names. The single "*" wildcard
// is additionally allowed for table children whose keys are user-defined.
var optionNameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Option is one named, typed configuration field. Table options nest child
// Options; scalar options may carry a default, an enum of permitted values,
// and examples. Every shape rule is enforced while the option is built, so
// a constructed Option is internally consistent and never mutated again.
type Option struct {
	Name         string
	Description  string
	Type         OptionType
	Required     bool
	Default      any
	Enum         []any
	Examples     []any
	Unit         string
	RelevantWhen string
	Options      map[string]*Option

	relevant *vm.Program
}

func newOption(name string, raw map[string]any) (*Option, error) {
	if err := checkKeys(raw, "description", "type", "required", "default",
		"enum", "examples", "unit", "relevant_when", "options"); err != nil {
		return nil, err
	}
	if name != "*" && !optionNameRE.MatchString(name) {
		return nil, fmt.Errorf("name %q: must be snake_case", name)
	}

	o := &Option{Name: name}
	var err error
	if o.Description, err = reqString(raw, "description"); err != nil {
		return nil, err
	}
	typ, err := reqString(raw, "type")
	if err != nil {
		return nil, err
	}
	if o.Type, err = parseOptionType(typ); err != nil {
		return nil, err
	}
	if o.Required, err = optBool(raw, "required"); err != nil {
		return nil, err
	}
	if o.Unit, err = optString(raw, "unit"); err != nil {
		return nil, err
	}

	// A literal `default: null` counts as no default.
	if v, ok := raw["default"]; ok && v != nil {
		if o.Required {
			return nil, fmt.Errorf("required option carries a default: %w", ErrConflictingConstraint)
		}
		if o.Type == TypeTable {
			return nil, fmt.Errorf("table option carries a default: %w", ErrConflictingConstraint)
		}
		if !valueMatches(o.Type, v) {
			return nil, fmt.Errorf("default %v does not match type %s", v, o.Type)
		}
		o.Default = v
	}

	if o.Enum, err = anyList(raw, "enum"); err != nil {
		return nil, err
	}
	if o.Enum != nil {
		if err := o.checkEnum(); err != nil {
			return nil, err
		}
	}

	if o.Examples, err = anyList(raw, "examples"); err != nil {
		return nil, err
	}
	for _, ex := range o.Examples {
		if !valueMatches(o.Type, ex) {
			return nil, fmt.Errorf("example %v does not match type %s", ex, o.Type)
		}
		if o.Enum != nil && !enumHas(o.Enum, ex) {
			return nil, fmt.Errorf("example %v not in enum: %w", ex, ErrInvalidEnum)
		}
	}

	if o.RelevantWhen, err = optString(raw, "relevant_when"); err != nil {
		return nil, err
	}
	if o.RelevantWhen != "" {
		// Identifiers in a predicate are sibling option names. Builtins are
		// disabled so a sibling named like one (`type`) resolves to its value.
		o.relevant, err = expr.Compile(o.RelevantWhen,
			expr.AsBool(),
			expr.AllowUndefinedVariables(),
			expr.DisableAllBuiltins())
		if err != nil {
			return nil, fmt.Errorf("relevant_when: %w", err)
		}
	}

	children, err := subMap(raw, "options")
	if err != nil {
		return nil, err
	}
	if children != nil && o.Type != TypeTable {
		return nil, fmt.Errorf("%s option nests child options: %w", o.Type, ErrConflictingConstraint)
	}
	if o.Options, err = buildOptions(children); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Option) checkEnum() error {
	switch o.Type {
	case TypeString, TypeInt, TypeFloat, TypeBool:
	default:
		return fmt.Errorf("%s option enumerates values: %w", o.Type, ErrConflictingConstraint)
	}
	if len(o.Enum) == 0 {
		return fmt.Errorf("enum: %w", ErrMissingField)
	}
	for i, v := range o.Enum {
		if !valueMatches(o.Type, v) {
			return fmt.Errorf("enum value %v does not match type %s", v, o.Type)
		}
		if enumHas(o.Enum[:i], v) {
			return fmt.Errorf("enum value %v duplicated: %w", v, ErrInvalidEnum)
		}
	}
	if o.Default != nil && !enumHas(o.Enum, o.Default) {
		return fmt.Errorf("default %v not in enum: %w", o.Default, ErrInvalidEnum)
	}
	return nil
}

// OptionNames returns the names of nested options in sorted order.
func (o *Option) OptionNames() []string { return sortedKeys(o.Options) }

// Relevant reports whether the option applies given the values of its
// sibling options. Options without a relevant_when predicate always apply.
func (o *Option) Relevant(siblings map[string]any) (bool, error) {
	if o.relevant == nil {
		return true, nil
	}
	v, err := expr.Run(o.relevant, siblings)
	if err != nil {
		return false, fmt.Errorf("relevant_when %q: %w", o.RelevantWhen, err)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("relevant_when %q: expected bool, got %T", o.RelevantWhen, v)
	}
	return b, nil
}

// Accepts reports whether v is a legal concrete value for the option,
// applying the same type and enum rules as defaults and examples.
func (o *Option) Accepts(v any) error {
	if !valueMatches(o.Type, v) {
		return fmt.Errorf("value %v does not match type %s", v, o.Type)
	}
	if o.Enum != nil && !enumHas(o.Enum, v) {
		return fmt.Errorf("value %v not in enum: %w", v, ErrInvalidEnum)
	}
	return nil
}

// buildOptions constructs a named option set from a raw `options` table.
// Keys are visited in sorted order so the first defect reported is stable.
func buildOptions(raw map[string]any) (map[string]*Option, error) {
	out := make(map[string]*Option, len(raw))
	for _, name := range sortedKeys(raw) {
		m, ok := raw[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("option %q: expected a table, got %T", name, raw[name])
		}
		opt, err := newOption(name, m)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		out[name] = opt
	}
	return out, nil
}

func valueMatches(t OptionType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInt:
		switch v.(type) {
		case int, int64, uint64:
			return true
		}
		return false
	case TypeFloat:
		// Whole numbers decode as ints; accept them where a float is due.
		_, ok := normNumber(v)
		return ok
	case TypeTable:
		_, ok := v.(map[string]any)
		return ok
	case TypeStringList, TypeIntList, TypeFloatList, TypeBoolList:
		l, ok := v.([]any)
		if !ok {
			return false
		}
		for _, e := range l {
			if !valueMatches(elemType(t), e) {
				return false
			}
		}
		return true
	}
	return false
}

func elemType(t OptionType) OptionType {
	switch t {
	case TypeStringList:
		return TypeString
	case TypeIntList:
		return TypeInt
	case TypeFloatList:
		return TypeFloat
	case TypeBoolList:
		return TypeBool
	}
	panic(fmt.Sprintf("not a list type: %s", t))
}

// valueEqual treats int and float spellings of the same number as equal so
// authors can write 1 where 1.0 is meant.
func valueEqual(a, b any) bool {
	if na, ok := normNumber(a); ok {
		nb, ok := normNumber(b)
		return ok && na == nb
	}
	return a == b
}

func normNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func enumHas(enum []any, v any) bool {
	for _, e := range enum {
		if valueEqual(e, v) {
			return true
		}
	}
	return false
}
