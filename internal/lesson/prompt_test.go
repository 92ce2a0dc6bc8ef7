package lesson

import (
	"strings"
	"testing"
)

func testRequest() GenerationRequest {
	return GenerationRequest{
		Topic:      "Photosynthesis",
		Grade:      "High School (Introductory)",
		Subject:    "Biology",
		Modalities: "Balanced (Visual, Auditory, Kinesthetic)",
		Context:    "Standard/Global",
	}
}

func TestBuildPrompt_Base(t *testing.T) {
	system, user := BuildPrompt(testRequest())

	if system != SystemPrompt {
		t.Errorf("system prompt = %q", system)
	}

	for _, want := range []string{
		`"Photosynthesis"`,
		"High School (Introductory) level",
		"in Biology",
		"Learning modalities: Balanced (Visual, Auditory, Kinesthetic)",
		"Context: Standard/Global",
		"4 learning objectives",
		"5 stages: Introduction, Core Concept 1, Core Concept 2, Activity, Conclusion",
		"4-question multiple-choice quiz with 4 options",
		"extension task",
		"Return ONLY valid JSON",
		`"extension_task": "string"`,
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}

	for _, unwanted := range []string{"visual aid", "slides", "source material"} {
		if strings.Contains(user, unwanted) {
			t.Errorf("base prompt should not contain %q", unwanted)
		}
	}
}

func TestBuildPrompt_Extended(t *testing.T) {
	req := testRequest()
	req.Extended = true

	_, user := BuildPrompt(req)

	for _, want := range []string{
		"5 visual aid suggestions",
		"8-10 slides",
		"3-5 content bullet points, and speaker notes",
		"4 interactive classroom activities",
		`"visual_aids"`,
		`"speaker_notes": "string"`,
		`"activities"`,
	} {
		if !strings.Contains(user, want) {
			t.Errorf("extended prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_SourceMaterial(t *testing.T) {
	req := testRequest()
	req.PDFContent = "Chapter 3: Chloroplasts convert light energy."

	_, user := BuildPrompt(req)

	if !strings.Contains(user, "authoritative basis for the lesson") {
		t.Error("prompt missing source material instruction")
	}
	if !strings.HasSuffix(user, "Chapter 3: Chloroplasts convert light energy.") {
		t.Error("source material should be appended last")
	}
}
