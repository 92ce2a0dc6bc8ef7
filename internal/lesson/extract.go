package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrMalformedResponse means the model reply could not be parsed as JSON.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrSchemaViolation means the JSON parsed but lacks required lesson fields.
	ErrSchemaViolation = errors.New("lesson schema violation")
)

// Models frequently wrap their JSON reply in a markdown code fence, with or
// without a language tag. Try the tagged fence first, then a bare fence, then
// fall back to the raw text.
var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	bareFenceRe = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// documentSchema lists the top-level keys downstream rendering depends on.
// Section counts are deliberately not constrained: an out-of-contract model
// reply (3 options, 12 slides) is accepted as-is rather than rejected.
const documentSchema = `{
  "type": "object",
  "required": ["title", "learning_objectives", "timeline", "quiz", "homework"],
  "properties": {
    "title": {"type": "string"},
    "learning_objectives": {
      "type": "array",
      "items": {"type": "string"}
    },
    "timeline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["stage", "title", "description"]
      }
    },
    "quiz": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "options", "answer"]
      }
    },
    "homework": {
      "type": "object",
      "required": ["title", "description", "extension_task"]
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ExtractDocument pulls the JSON payload out of a free-form model reply and
// parses it into a Document. It never returns a partial document: on any
// parse failure the result is nil and the error wraps ErrMalformedResponse;
// on a missing required section it wraps ErrSchemaViolation.
func ExtractDocument(raw string) (*Document, error) {
	candidate := extractCandidate(raw)

	if err := validateSchema(candidate); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &doc, nil
}

// extractCandidate returns the fenced block interior if one exists, else the
// trimmed raw text.
func extractCandidate(raw string) string {
	if m := jsonFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := bareFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return strings.TrimSpace(raw)
}

func validateSchema(candidate string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(candidate))
	if err != nil {
		// gojsonschema only errors here when the document is not valid JSON.
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
	}

	return nil
}
