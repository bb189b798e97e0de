// Package prompts renders the embedded review prompt templates.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// set is one parsed prompt file. Each key becomes a named template.
type set struct {
	root *template.Template
	keys []string
}

var (
	sets   = make(map[string]*set)
	setsMu sync.Mutex
)

// Render executes the prompt stored under key in filename with data.
// Placeholders use text/template syntax ({{.Field}}); a placeholder with no value is an error.
func Render(filename, key string, data any) (string, error) {
	s, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl := s.root.Lookup(key)
	if tmpl == nil {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return buf.String(), nil
}

// Keys returns the prompt keys defined in filename, sorted.
func Keys(filename string) ([]string, error) {
	s, err := load(filename)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), s.keys...), nil
}

func load(filename string) (*set, error) {
	setsMu.Lock()
	defer setsMu.Unlock()

	if s, ok := sets[filename]; ok {
		return s, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s := &set{root: template.New(filename).Option("missingkey=error")}
	for key, text := range raw {
		if _, err := s.root.New(key).Parse(text); err != nil {
			return nil, fmt.Errorf("invalid prompt %s/%s: %w", filename, key, err)
		}
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)

	sets[filename] = s
	return s, nil
}
