package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cat := Default()

	if len(cat.AcademicLevels) != 3 {
		t.Errorf("academic levels = %d, want 3", len(cat.AcademicLevels))
	}
	if len(cat.Modalities) != 3 {
		t.Errorf("modalities = %d, want 3", len(cat.Modalities))
	}
	if len(cat.CulturalContexts) != 4 {
		t.Errorf("cultural contexts = %d, want 4", len(cat.CulturalContexts))
	}
	if len(cat.TopicSuggestions) == 0 {
		t.Error("topic suggestions should not be empty")
	}
	if cat.AcademicLevels[0] != "High School (Introductory)" {
		t.Errorf("first level = %q", cat.AcademicLevels[0])
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.AcademicLevels) != 3 {
		t.Errorf("empty path should yield defaults, got %+v", cat)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Modalities) != 3 {
		t.Errorf("missing file should yield defaults, got %+v", cat)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `academic_levels:
  - "Primary School"
  - "Middle School"
topic_suggestions:
  - "Fractions"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cat.AcademicLevels) != 2 || cat.AcademicLevels[0] != "Primary School" {
		t.Errorf("academic levels = %v", cat.AcademicLevels)
	}
	if len(cat.TopicSuggestions) != 1 || cat.TopicSuggestions[0] != "Fractions" {
		t.Errorf("topic suggestions = %v", cat.TopicSuggestions)
	}
	// Keys absent from the file keep their defaults.
	if len(cat.Modalities) != 3 {
		t.Errorf("modalities = %v, want defaults", cat.Modalities)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("academic_levels: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}
