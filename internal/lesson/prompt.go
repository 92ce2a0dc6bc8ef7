package lesson

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed instruction sent with every generation request.
const SystemPrompt = `You are an advanced educational AI that creates comprehensive, engaging lesson plans.
Generate detailed and dynamic lesson plans that follow best practices in pedagogy.
Always structure the response as valid JSON matching the exact schema provided.`

const baseSchema = `{
  "title": "string",
  "learning_objectives": ["string", "string", "string", "string"],
  "timeline": [
    {"stage": "string", "title": "string", "description": "string"}
  ],
  "quiz": [
    {"question": "string", "options": ["string", "string", "string", "string"], "answer": "string"}
  ],
  "homework": {
    "title": "string",
    "description": "string",
    "extension_task": "string"
  }
}`

const extendedSchema = `{
  "title": "string",
  "learning_objectives": ["string", "string", "string", "string"],
  "timeline": [
    {"stage": "string", "title": "string", "description": "string"}
  ],
  "visual_aids": [
    {"title": "string", "description": "string"}
  ],
  "slides": [
    {"number": 1, "title": "string", "content": ["string", "string"], "speaker_notes": "string"}
  ],
  "activities": [
    {"title": "string", "description": "string"}
  ],
  "quiz": [
    {"question": "string", "options": ["string", "string", "string", "string"], "answer": "string"}
  ],
  "homework": {
    "title": "string",
    "description": "string",
    "extension_task": "string"
  }
}`

// BuildPrompt assembles the system and user instruction strings for a
// generation request. The user prompt embeds the request parameters verbatim
// and pins down the exact section counts and JSON schema the model must
// return. When source text is present it is appended as authoritative
// context; no truncation happens here.
func BuildPrompt(req GenerationRequest) (system, user string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate an advanced, dynamic, and engaging lesson plan on %q for %s level in %s.\n\n",
		req.Topic, req.Grade, req.Subject)
	fmt.Fprintf(&b, "Learning modalities: %s\n", req.Modalities)
	fmt.Fprintf(&b, "Context: %s\n\n", req.Context)

	b.WriteString(`Create a lesson plan with:
1. A clear, engaging title
2. 4 learning objectives (phrased as "Students will be able to...")
3. A detailed timeline with 5 stages: Introduction, Core Concept 1, Core Concept 2, Activity, Conclusion
4. A 4-question multiple-choice quiz with 4 options each and correct answers
5. A creative homework assignment with an extension task for advanced students
`)

	schema := baseSchema
	if req.Extended {
		schema = extendedSchema
		b.WriteString(`6. 5 visual aid suggestions with titles and descriptions
7. A presentation deck of 8-10 slides, each with a title, 3-5 content bullet points, and speaker notes
8. 4 interactive classroom activities with titles and descriptions
`)
	}

	b.WriteString("\nReturn ONLY valid JSON in this exact structure:\n")
	b.WriteString(schema)

	if req.PDFContent != "" {
		b.WriteString("\n\nUse the following source material as the authoritative basis for the lesson. Ground every section in it:\n\n")
		b.WriteString(req.PDFContent)
	}

	return SystemPrompt, b.String()
}
