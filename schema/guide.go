package schema

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Guide is one markdown document from the guides directory.
type Guide struct {
	Name  string
	Title string
	Body  string
}

// loadGuides reads every *.md file except README.md from the injected
// filesystem, one Guide per file. A nil filesystem means no guides. Any
// unreadable or malformed file fails the whole load.
func loadGuides(fsys fs.FS) ([]Guide, error) {
	if fsys == nil {
		return nil, nil
	}
	var out []Guide
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" || path.Base(p) == "README.md" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		g, err := parseGuide(p, data)
		if err != nil {
			return fmt.Errorf("guide %s: %w", p, err)
		}
		out = append(out, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b Guide) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// parseGuide takes the title from YAML front matter when present, else the
// first heading, else the file stem.
func parseGuide(p string, data []byte) (Guide, error) {
	name := strings.TrimSuffix(path.Base(p), ".md")
	if name == "" {
		return Guide{}, fmt.Errorf("name: %w", ErrMissingField)
	}
	body := string(data)
	title := ""

	if rest, ok := strings.CutPrefix(body, "---\n"); ok {
		fm, after, ok := strings.Cut(rest, "\n---\n")
		if !ok {
			return Guide{}, fmt.Errorf("unterminated front matter")
		}
		var meta struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Guide{}, fmt.Errorf("front matter: %w", err)
		}
		title = meta.Title
		body = after
	}
	if title == "" {
		for _, line := range strings.Split(body, "\n") {
			if h, ok := strings.CutPrefix(line, "# "); ok {
				title = strings.TrimSpace(h)
				break
			}
		}
	}
	if title == "" {
		title = name
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Guide{}, fmt.Errorf("body: %w", ErrMissingField)
	}
	return Guide{Name: name, Title: title, Body: body}, nil
}
