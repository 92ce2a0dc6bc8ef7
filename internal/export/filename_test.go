package export

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Photosynthesis", "Photosynthesis"},
		{"spaces and punctuation", "The Water Cycle: An Overview!", "TheWaterCycleAnOverview"},
		{"accents decompose", "Écologie à l'école", "Ecologiealecole"},
		{"digits kept", "Algebra 101", "Algebra101"},
		{"cjk stripped", "日本の歴史", "LessonPlan"},
		{"empty", "", "LessonPlan"},
		{"symbols only", "!!!???", "LessonPlan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.title); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
