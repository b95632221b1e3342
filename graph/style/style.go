// Package style loads prompt style templates from YAML files and
// applies them to user prompts. A style file is a category
// (<name>.yaml) holding a list of named styles; each style carries a
// template prompt and an optional negative prompt. Templates may embed
// the literal "{prompt}" placeholder to position the user's text.
package style

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// None is the style name that leaves prompts untouched.
const None = "none"

// Style is one named prompt template within a style file.
type Style struct {
	Name           string `yaml:"name"`
	Prompt         string `yaml:"prompt"`
	NegativePrompt string `yaml:"negative_prompt,omitempty"`
}

// Library holds the styles loaded from a directory of YAML files,
// grouped by file (category). A Library is immutable after Load.
type Library struct {
	files  map[string][]Style
	sorted []string
}

// Load reads every .yaml/.yml file at the root of fsys. The file's base
// name without extension becomes the category name.
func Load(fsys fs.FS) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read style dir: %w", err)
	}

	lib := &Library{files: make(map[string][]Style)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		raw, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read style file %s: %w", entry.Name(), err)
		}
		var styles []Style
		if err := yaml.Unmarshal(raw, &styles); err != nil {
			return nil, fmt.Errorf("parse style file %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		lib.files[name] = styles
		lib.sorted = append(lib.sorted, name)
	}
	sort.Strings(lib.sorted)
	return lib, nil
}

// Files lists the loaded categories in sorted order.
func (l *Library) Files() []string {
	out := make([]string, len(l.sorted))
	copy(out, l.sorted)
	return out
}

// Styles returns the styles in a category.
func (l *Library) Styles(file string) []Style {
	styles := l.files[file]
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Find looks up a style by category and name.
func (l *Library) Find(file, name string) (Style, bool) {
	for _, s := range l.files[file] {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

// Apply composes the named style with a user prompt. The style name
// "none", an unknown category, or an unknown name all pass the prompt
// through unchanged. Templates containing "{prompt}" substitute the
// user text in place; otherwise the style prompt is appended after the
// user text. A negative prompt, when present, is appended as an
// avoidance instruction.
func (l *Library) Apply(file, name, prompt string) string {
	if name == "" || name == None {
		return prompt
	}
	s, ok := l.Find(file, name)
	if !ok {
		return prompt
	}

	out := s.Prompt
	if strings.Contains(out, "{prompt}") {
		out = strings.ReplaceAll(out, "{prompt}", prompt)
	} else if prompt != "" {
		out = prompt + ", " + out
	}
	if s.NegativePrompt != "" {
		out += ". Avoid: " + s.NegativePrompt
	}
	return out
}
