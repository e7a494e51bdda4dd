package store

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// settingsSchema describes the shape of a user settings file. Unknown
// keys are allowed so hosts can carry their own settings alongside ours.
const settingsSchema = `{
	"type": "object",
	"properties": {
		"markdown_extensions": {
			"type": "array",
			"items": {
				"oneOf": [
					{"type": "string"},
					{"type": "object"}
				]
			}
		},
		"css": {
			"type": "array",
			"items": {"type": "string"}
		},
		"js": {
			"type": "array",
			"items": {"type": "string"}
		},
		"highlight_theme":     {"type": "string"},
		"enable_highlight":    {"type": "boolean"},
		"enable_mathjax":      {"type": "boolean"},
		"enable_uml":          {"type": "boolean"},
		"html_template":       {"type": "string"},
		"title_from_heading":  {"type": "boolean"},
		"preview_on_save":     {"type": "boolean"},
		"build_action":        {"type": "string", "enum": ["build", "browser", "clipboard", "save"]},
		"temp_preview_suffix": {"type": "string"}
	}
}`

// Validate checks a raw settings document against the settings schema
// and returns one message per violation. A nil slice means the document
// is valid.
func Validate(data []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(settingsSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// ValidateFile reads and validates the settings file at path.
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read settings file: %w", err)
	}
	return Validate(data)
}
