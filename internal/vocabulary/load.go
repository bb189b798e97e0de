package vocabulary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cert-roadmap/internal/schemas"
	"github.com/jonathan/cert-roadmap/internal/types"
)

// Sources names the files a Vocabulary is loaded from. DenyListPath is optional.
type Sources struct {
	SkillsPath   string
	CatalogPath  string
	DenyListPath string
}

// Load reads, validates and assembles the vocabulary. Any failure is a *ConfigurationError.
func Load(src Sources) (*Vocabulary, error) {
	skills, err := LoadSkills(src.SkillsPath)
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(src.CatalogPath)
	if err != nil {
		return nil, err
	}

	var deny []string
	if src.DenyListPath != "" {
		deny, err = LoadDenyList(src.DenyListPath)
		if err != nil {
			return nil, err
		}
	}

	return New(skills, deny, catalog)
}

// LoadSkills reads a known-skills document from path.
func LoadSkills(path string) ([]string, error) {
	data, err := readSource("skills", path)
	if err != nil {
		return nil, err
	}
	return ParseSkills(data)
}

// LoadCatalog reads a certification catalog document from path.
func LoadCatalog(path string) ([]types.Certification, error) {
	data, err := readSource("catalog", path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// LoadDenyList reads a generic-skill deny list from path.
func LoadDenyList(path string) ([]string, error) {
	data, err := readSource("deny list", path)
	if err != nil {
		return nil, err
	}
	return ParseDenyList(data)
}

// ParseSkills accepts an array of names or an object whose values are names, in document order.
func ParseSkills(data []byte) ([]string, error) {
	if err := schemas.Validate(schemas.SkillsList, data); err != nil {
		return nil, &ConfigurationError{Source: "skills", Message: "invalid document", Cause: err}
	}

	raws, err := elements(data)
	if err != nil {
		return nil, &ConfigurationError{Source: "skills", Message: "invalid document", Cause: err}
	}

	skills := make([]string, 0, len(raws))
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &ConfigurationError{Source: "skills", Message: "skill is not a string", Cause: err}
		}
		skills = append(skills, s)
	}
	return skills, nil
}

// ParseCatalog accepts an array of certifications or an object keyed by primary skill.
// Object keys are ignored; entry order follows the document.
func ParseCatalog(data []byte) ([]types.Certification, error) {
	if err := schemas.Validate(schemas.CertificationCatalog, data); err != nil {
		return nil, &ConfigurationError{Source: "catalog", Message: "invalid document", Cause: err}
	}

	raws, err := elements(data)
	if err != nil {
		return nil, &ConfigurationError{Source: "catalog", Message: "invalid document", Cause: err}
	}

	catalog := make([]types.Certification, 0, len(raws))
	for _, raw := range raws {
		var c types.Certification
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, &ConfigurationError{Source: "catalog", Message: "invalid certification", Cause: err}
		}
		catalog = append(catalog, c)
	}
	return catalog, nil
}

// ParseDenyList accepts an array of phrases.
func ParseDenyList(data []byte) ([]string, error) {
	if err := schemas.Validate(schemas.DenyList, data); err != nil {
		return nil, &ConfigurationError{Source: "deny list", Message: "invalid document", Cause: err}
	}
	var deny []string
	if err := json.Unmarshal(data, &deny); err != nil {
		return nil, &ConfigurationError{Source: "deny list", Message: "invalid document", Cause: err}
	}
	return deny, nil
}

func readSource(source, path string) ([]byte, error) {
	if path == "" {
		return nil, &ConfigurationError{Source: source, Message: "path is empty"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Source: source, Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return data, nil
}

// elements returns the members of a top-level array, or the values of a top-level
// object in document order (encoding/json maps lose it).
func elements(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] == '[' {
		var out []json.RawMessage
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected array or object")
	}

	var out []json.RawMessage
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}
