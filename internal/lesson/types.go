// Package lesson defines the lesson plan document model and the pipeline
// that turns a generation request into a structured, persisted document.
package lesson

import "time"

// GenerationRequest holds the user-supplied parameters for a lesson plan.
// Topic and Subject are required; everything else refines the prompt.
type GenerationRequest struct {
	Topic      string `json:"topic"`
	Grade      string `json:"grade"`
	Subject    string `json:"subject"`
	Modalities string `json:"modalities"`
	Context    string `json:"context"`
	PDFContent string `json:"pdfContent,omitempty"`
	Extended   bool   `json:"extended,omitempty"`
}

// TimelineStage is one stage of the lesson timeline.
type TimelineStage struct {
	Stage       string `json:"stage"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuizItem is a single multiple-choice question.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Homework is the take-home assignment with an extension for advanced students.
type Homework struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ExtensionTask string `json:"extension_task"`
}

// VisualAid describes a suggested classroom visual.
type VisualAid struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Slide is one presentation slide in the extended document.
type Slide struct {
	Number       int      `json:"number"`
	Title        string   `json:"title"`
	Content      []string `json:"content"`
	SpeakerNotes string   `json:"speaker_notes,omitempty"`
}

// Activity describes an interactive classroom activity.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Document is the structured lesson plan produced by one generation call.
// It is immutable after creation; slide images are attached out-of-band via
// SlideImageResult and never written back into the document.
type Document struct {
	Title              string          `json:"title"`
	LearningObjectives []string        `json:"learning_objectives"`
	Timeline           []TimelineStage `json:"timeline"`
	VisualAids         []VisualAid     `json:"visual_aids,omitempty"`
	Slides             []Slide         `json:"slides,omitempty"`
	Activities         []Activity      `json:"activities,omitempty"`
	Quiz               []QuizItem      `json:"quiz"`
	Homework           Homework        `json:"homework"`
}

// SlideImageResult is the outcome of one slide image generation attempt.
// Image is a data URL on success; Error carries a short tag on failure.
// Results are matched back to slides by SlideIndex, not by position.
type SlideImageResult struct {
	SlideIndex int    `json:"slideIndex"`
	Image      string `json:"image,omitempty"`
	Error      string `json:"error,omitempty"`
}

// StoredRecord is a persisted lesson plan owned by a user.
type StoredRecord struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Document  Document          `json:"document"`
	Metadata  GenerationRequest `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
