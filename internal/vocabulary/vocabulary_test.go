package vocabulary

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "python", Normalize("  Python "))
	assert.Equal(t, "machine learning", Normalize("Machine Learning"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNew_NormalizesAndDeduplicates(t *testing.T) {
	v, err := New([]string{"Python", " python", "AWS", ""}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"aws", "python"}, v.Skills())
	assert.True(t, v.IsKnown("python"))
	assert.False(t, v.IsKnown("Python"), "lookups take normalized input")
}

func TestNew_DefaultDenyList(t *testing.T) {
	v, err := New([]string{"python", "communication", "teamwork"}, nil, nil)
	require.NoError(t, err)

	assert.True(t, v.IsGeneric("communication"))
	assert.False(t, v.Accepts("communication"))
	assert.True(t, v.Accepts("python"))
	assert.Equal(t, []string{"python"}, v.Extractable())
}

func TestNew_EmptySkillSet(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "skills", cfgErr.Source)
}

func TestNew_UnnamedCertification(t *testing.T) {
	_, err := New([]string{"python"}, nil, []types.Certification{{Name: " "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 0")
}

func TestNew_CopiesCatalog(t *testing.T) {
	catalog := []types.Certification{{Name: "A", RelevantSkills: []string{"python"}}}
	v, err := New([]string{"python"}, nil, catalog)
	require.NoError(t, err)

	catalog[0].RelevantSkills[0] = "mutated"
	assert.Equal(t, "python", v.Certifications()[0].RelevantSkills[0])
}

func TestLoad(t *testing.T) {
	v, err := Load(Sources{
		SkillsPath:   filepath.Join("testdata", "skills-list.json"),
		CatalogPath:  filepath.Join("testdata", "certificationMap.json"),
		DenyListPath: filepath.Join("testdata", "deny.json"),
	})
	require.NoError(t, err)

	skills, certs := v.Size()
	assert.Equal(t, 6, skills)
	assert.Equal(t, 3, certs)

	// Object keys are ignored but order follows the document.
	names := make([]string, 0, certs)
	for _, c := range v.Certifications() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"AWS Certified Developer", "Certified Kubernetes Administrator", "Docker Certified Associate"}, names)

	assert.False(t, v.Accepts("docker"), "deny list file overrides the default")
	assert.True(t, v.Accepts("machine learning"))
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		src  Sources
	}{
		{name: "missing skills path", src: Sources{CatalogPath: filepath.Join("testdata", "certificationMap.json")}},
		{name: "unreadable skills", src: Sources{SkillsPath: filepath.Join("testdata", "nope.json"), CatalogPath: filepath.Join("testdata", "certificationMap.json")}},
		{name: "malformed catalog", src: Sources{SkillsPath: filepath.Join("testdata", "skills-list.json"), CatalogPath: filepath.Join("testdata", "catalog-missing-skills.json")}},
		{name: "unreadable deny list", src: Sources{
			SkillsPath:   filepath.Join("testdata", "skills-list.json"),
			CatalogPath:  filepath.Join("testdata", "certificationMap.json"),
			DenyListPath: filepath.Join("testdata", "nope.json"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %T", err)
		})
	}
}

func TestParseSkills_ArrayForm(t *testing.T) {
	skills, err := ParseSkills([]byte(`["Go", "Rust"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, skills)
}

func TestParseCatalog_ArrayForm(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`[
		{"name": "B", "relevant_skills": ["b"]},
		{"name": "A", "relevant_skills": ["a"], "link": "https://a.example"}
	]`))
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "B", catalog[0].Name)
	assert.Equal(t, "https://a.example", catalog[1].Link)
}
