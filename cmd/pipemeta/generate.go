package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pipemeta/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate EXPRESSION",
	Short: "Generate an example pipeline configuration",
	Long: `Generate an example configuration containing the given components.

EXPRESSION holds comma-separated lists of source, transform, and sink
types, divided by forward slashes or pipes. Dividers for trailing unused
component kinds can be omitted:

  /sampler          one sampler transform
  //console,http    a console and an http sink
  stdin//http       a stdin source and an http sink

Components are named source0, transform0, and so on; prefix an entry
with <name>: to pick a name, e.g. in:stdin/out:console. The first
transform consumes every source, later transforms consume their
predecessor, and sinks consume the last transform or, without any
transforms, every source.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Bool("fragment", false, "omit global fields from the output")
	generateCmd.Flags().String("file", "", "write the config to a new file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := buildSchema()
	if err != nil {
		return err
	}
	fragment, _ := cmd.Flags().GetBool("fragment")
	path, _ := cmd.Flags().GetString("file")

	body, err := generateExample(s, args[0], !fragment)
	if err != nil {
		return err
	}
	if path != "" {
		if err := writeConfig(path, body); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓"), "config written to", path)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), body)
	return nil
}

// generateExample builds an example configuration for the expression. All
// generation defects are collected and reported together so an author sees
// every bad component type in one run.
func generateExample(s *schema.Schema, expression string, includeGlobals bool) (string, error) {
	groups := splitExpression(expression)
	if len(groups) > 3 {
		return "", fmt.Errorf("expression has %d component groups, want at most sources/transforms/sinks", len(groups))
	}
	group := func(i int) []string {
		if i < len(groups) {
			return groups[i]
		}
		return nil
	}

	var errs []error
	root := newMapping()

	if includeGlobals {
		if opt, ok := s.Options["data_dir"]; ok && opt.Default != nil {
			n, err := anyNode(opt.Default)
			if err != nil {
				return "", err
			}
			root.set("data_dir", n)
		}
	}

	var sourceNames []string
	if refs := group(0); len(refs) > 0 {
		sources := newMapping()
		for i, ref := range refs {
			name, typ, err := splitRef(ref, "source", i)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			src, err := s.Source(typ)
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to generate source %q: %w", ref, err))
				continue
			}
			sourceNames = append(sourceNames, name)

			m := newMapping()
			m.set("type", strNode(typ))
			if err := addRequiredOptions(m, src.Options); err != nil {
				return "", err
			}
			sources.set(name, m.node)
		}
		if len(sources.node.Content) > 0 {
			root.set("sources", sources.node)
		}
	}

	var transformNames []string
	if refs := group(1); len(refs) > 0 {
		transforms := newMapping()
		for i, ref := range refs {
			name, typ, err := splitRef(ref, "transform", i)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			tr, err := s.Transform(typ)
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to generate transform %q: %w", ref, err))
				continue
			}

			inputs := sourceNames
			if len(transformNames) > 0 {
				inputs = transformNames[len(transformNames)-1:]
			}
			transformNames = append(transformNames, name)

			m := newMapping()
			m.set("inputs", seqNode(inputs))
			m.set("type", strNode(typ))
			if err := addRequiredOptions(m, tr.Options); err != nil {
				return "", err
			}
			transforms.set(name, m.node)
		}
		if len(transforms.node.Content) > 0 {
			root.set("transforms", transforms.node)
		}
	}

	if refs := group(2); len(refs) > 0 {
		sinks := newMapping()
		for i, ref := range refs {
			name, typ, err := splitRef(ref, "sink", i)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			sk, err := s.Sink(typ)
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to generate sink %q: %w", ref, err))
				continue
			}

			inputs := sourceNames
			if len(transformNames) > 0 {
				inputs = transformNames[len(transformNames)-1:]
			}

			m := newMapping()
			m.set("inputs", seqNode(inputs))
			m.set("type", strNode(typ))
			if err := addRequiredOptions(m, sk.Options); err != nil {
				return "", err
			}
			m.set("healthcheck", boolNode(true))
			buf, err := defaultsNode(sk.Options["buffer"])
			if err != nil {
				return "", err
			}
			m.set("buffer", buf)
			sinks.set(name, m.node)
		}
		if len(sinks.node.Content) > 0 {
			root.set("sinks", sinks.node)
		}
	}

	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(root.node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// splitExpression keeps empty groups so the sources/transforms/sinks
// positions stay fixed when leading dividers are present.
func splitExpression(expression string) [][]string {
	var groups [][]string
	for _, grp := range strings.Split(strings.ReplaceAll(expression, "|", "/"), "/") {
		var refs []string
		for _, c := range strings.Split(grp, ",") {
			if c = strings.TrimSpace(c); c != "" {
				refs = append(refs, c)
			}
		}
		groups = append(groups, refs)
	}
	return groups
}

func splitRef(ref, kind string, i int) (name, typ string, err error) {
	if before, after, ok := strings.Cut(ref, ":"); ok {
		if before == "" {
			return "", "", fmt.Errorf("failed to generate %s %q: empty name is not allowed", kind, ref)
		}
		return before, after, nil
	}
	return fmt.Sprintf("%s%d", kind, i), ref, nil
}

// addRequiredOptions fills the mapping with every required option, using
// the first example, then the default, then the type's zero value. Optional
// options are left for the user.
func addRequiredOptions(m *mapping, opts map[string]*schema.Option) error {
	names := make([]string, 0, len(opts))
	for n := range opts {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		opt := opts[n]
		if n == "*" || !opt.Required {
			continue
		}
		node, err := exampleValue(opt)
		if err != nil {
			return err
		}
		m.set(n, node)
	}
	return nil
}

func exampleValue(opt *schema.Option) (*yaml.Node, error) {
	if opt.Type == schema.TypeTable {
		child := newMapping()
		if err := addRequiredOptions(child, opt.Options); err != nil {
			return nil, err
		}
		return child.node, nil
	}
	if len(opt.Examples) > 0 {
		return anyNode(opt.Examples[0])
	}
	if opt.Default != nil {
		return anyNode(opt.Default)
	}
	return anyNode(zeroValue(opt.Type))
}

func zeroValue(t schema.OptionType) any {
	switch t {
	case schema.TypeString:
		return ""
	case schema.TypeInt:
		return 0
	case schema.TypeFloat:
		return 0.0
	case schema.TypeBool:
		return false
	}
	return []any{}
}

// defaultsNode renders a table option's defaulted children, dropping any
// child whose relevant_when predicate rejects the default sibling values.
func defaultsNode(opt *schema.Option) (*yaml.Node, error) {
	siblings := make(map[string]any, len(opt.Options))
	for _, n := range opt.OptionNames() {
		if d := opt.Options[n].Default; d != nil {
			siblings[n] = d
		}
	}
	m := newMapping()
	for _, n := range opt.OptionNames() {
		c := opt.Options[n]
		if c.Default == nil {
			continue
		}
		ok, err := c.Relevant(siblings)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		node, err := anyNode(c.Default)
		if err != nil {
			return nil, err
		}
		m.set(n, node)
	}
	return m.node, nil
}

// writeConfig refuses to clobber an existing file.
func writeConfig(path, body string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

// --- ordered YAML construction ---

type mapping struct {
	node *yaml.Node
}

func newMapping() *mapping {
	return &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
}

func (m *mapping) set(key string, val *yaml.Node) {
	m.node.Content = append(m.node.Content, strNode(key), val)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func boolNode(b bool) *yaml.Node {
	n := &yaml.Node{}
	if err := n.Encode(b); err != nil {
		panic(err)
	}
	return n
}

func seqNode(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		n.Content = append(n.Content, strNode(v))
	}
	return n
}

func anyNode(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
