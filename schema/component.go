package schema

import (
	"fmt"
	"strings"
)

// Component carries the identity and documentation every source, transform,
// and sink shares. Name comes from the registry key the component is defined
// under, never from the raw map itself.
type Component struct {
	Name        string
	Title       string
	Description string
	Beta        bool
	Common      bool
	Options     map[string]*Option
	Sections    []Section
	Resources   []Resource
}

// Resource is an external reference attached to a component, such as a
// sink's service limits page.
type Resource struct {
	Name string
	URL  string
}

func newComponent(name string, raw map[string]any) (Component, error) {
	if !optionNameRE.MatchString(name) {
		return Component{}, fmt.Errorf("name %q: must be snake_case", name)
	}
	c := Component{Name: name}
	var err error
	if c.Title, err = optString(raw, "title"); err != nil {
		return Component{}, err
	}
	if c.Description, err = reqString(raw, "description"); err != nil {
		return Component{}, err
	}
	if c.Beta, err = optBool(raw, "beta"); err != nil {
		return Component{}, err
	}
	if c.Common, err = optBool(raw, "common"); err != nil {
		return Component{}, err
	}
	opts, err := subMap(raw, "options")
	if err != nil {
		return Component{}, err
	}
	if c.Options, err = buildOptions(opts); err != nil {
		return Component{}, err
	}
	secs, err := anyList(raw, "sections")
	if err != nil {
		return Component{}, err
	}
	if c.Sections, err = buildSections(secs); err != nil {
		return Component{}, err
	}
	res, err := anyList(raw, "resources")
	if err != nil {
		return Component{}, err
	}
	if c.Resources, err = buildResources(res); err != nil {
		return Component{}, err
	}
	return c, nil
}

func buildResources(raw []any) ([]Resource, error) {
	out := make([]Resource, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("resources[%d]: expected a table, got %T", i, v)
		}
		if err := checkKeys(m, "name", "url"); err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		name, err := reqString(m, "name")
		if err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		url, err := reqString(m, "url")
		if err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
		if err := checkURL(url); err != nil {
			return nil, fmt.Errorf("resources[%d]: %s: %w", i, name, err)
		}
		out = append(out, Resource{Name: name, URL: url})
	}
	return out, nil
}

// OptionNames returns the component's option names in sorted order.
func (c *Component) OptionNames() []string { return sortedKeys(c.Options) }

// checkNoTrailingPeriod enforces the house style for connective description
// fragments that renderers splice into larger sentences.
func checkNoTrailingPeriod(field, s string) error {
	if strings.HasSuffix(strings.TrimSpace(s), ".") {
		return fmt.Errorf("%s %q ends with a period: %w", field, s, ErrStyleViolation)
	}
	return nil
}

// attachTLS adds the shared tls option table when the component declares
// `tls: true`. The table wins over any raw option of the same name.
func (c *Component) attachTLS(raw map[string]any) error {
	on, err := optBool(raw, "tls")
	if err != nil {
		return err
	}
	if on {
		c.Options["tls"] = tlsOption()
	}
	return nil
}

func tlsOption() *Option {
	return mustOption("tls", map[string]any{
		"description": "Configures TLS for connections to the remote.",
		"type":        "table",
		"options": map[string]any{
			"enabled": map[string]any{
				"description": "Enable TLS during connections to the remote.",
				"type":        "bool",
				"default":     false,
			},
			"ca_file": map[string]any{
				"description": "Absolute path to an additional CA certificate file, in DER or PEM format (X.509).",
				"type":        "string",
				"examples":    []any{"/path/to/certificate_authority.crt"},
			},
			"crt_file": map[string]any{
				"description": "Absolute path to a certificate file used to identify this connection, in DER or PEM format (X.509) or PKCS#12.",
				"type":        "string",
				"examples":    []any{"/path/to/host_certificate.crt"},
			},
			"key_file": map[string]any{
				"description": "Absolute path to a certificate key file used to identify this connection, in DER or PEM format (X.509) or PKCS#8.",
				"type":        "string",
				"examples":    []any{"/path/to/host_certificate.key"},
			},
			"key_pass": map[string]any{
				"description": "Pass phrase used to unlock the encrypted key file.",
				"type":        "string",
				"examples":    []any{"PassWord1"},
			},
			"verify_certificate": map[string]any{
				"description": "If true, the remote certificate chain must be valid against the configured or system authorities.",
				"type":        "bool",
				"default":     true,
			},
			"verify_hostname": map[string]any{
				"description": "If true, the remote certificate must name the host being connected to.",
				"type":        "bool",
				"default":     true,
			},
		},
	})
}

// mustOption builds one of the fixed option tables components attach during
// construction. The literals live in this package, so a failure here is a
// programming error rather than an authoring defect.
func mustOption(name string, raw map[string]any) *Option {
	o, err := newOption(name, raw)
	if err != nil {
		panic(fmt.Sprintf("built-in option %s: %v", name, err))
	}
	return o
}
