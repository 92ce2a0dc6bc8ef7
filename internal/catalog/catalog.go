// Package catalog serves the lesson parameter options (academic levels,
// learning modalities, cultural contexts) the UI presents in its selects.
// Options load from a YAML file so deployments can localize them without a
// rebuild; missing files fall back to the built-in defaults.
package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the selectable lesson parameters.
type Catalog struct {
	AcademicLevels   []string `yaml:"academic_levels" json:"academic_levels"`
	Modalities       []string `yaml:"modalities" json:"modalities"`
	CulturalContexts []string `yaml:"cultural_contexts" json:"cultural_contexts"`
	TopicSuggestions []string `yaml:"topic_suggestions" json:"topic_suggestions"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		AcademicLevels: []string{
			"High School (Introductory)",
			"University (Undergraduate)",
			"Postgraduate (Specialized)",
		},
		Modalities: []string{
			"Balanced (Visual, Auditory, Kinesthetic)",
			"Visual & Theoretical",
			"Interactive & Project-Based",
		},
		CulturalContexts: []string{
			"Standard/Global",
			"Include Historical Context (Asian)",
			"Include Historical Context (European)",
			"Focus on Modern Applications",
		},
		TopicSuggestions: []string{
			"Photosynthesis",
			"The Roman Empire",
			"Introduction to Python",
			"Newton's Laws of Motion",
			"Literary Devices",
			"The Water Cycle",
		},
	}
}

// Load reads the catalog from path. An empty path or a missing file yields
// the defaults; a present but invalid file is an error.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("catalog file not found, using defaults", "path", path)
			return Default(), nil
		}
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	cat := Default()
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	slog.Info("catalog loaded", "path", path,
		"levels", len(cat.AcademicLevels),
		"modalities", len(cat.Modalities),
		"contexts", len(cat.CulturalContexts),
	)
	return cat, nil
}
