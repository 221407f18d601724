package course

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lessonplay/course.json"

// courseSchema is the JSON Schema every course file must satisfy before it
// is decoded. Cross-field rules (ordering, overlap, option range) live in
// Validate.
var courseSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "title", "media", "topics"},
	"properties": map[string]any{
		"id":     map[string]any{"type": "string", "minLength": 1},
		"title":  map[string]any{"type": "string", "minLength": 1},
		"module": map[string]any{"type": "string"},
		"media": map[string]any{
			"type":     "object",
			"required": []any{"url"},
			"properties": map[string]any{
				"url":        map[string]any{"type": "string", "minLength": 1},
				"poster_url": map[string]any{"type": "string"},
			},
		},
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "start", "end"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"title":       map[string]any{"type": "string"},
					"start":       map[string]any{"type": "number", "minimum": 0},
					"end":         map[string]any{"type": "number", "exclusiveMinimum": 0},
					"description": map[string]any{"type": "string"},
					"locked":      map[string]any{"type": "boolean"},
				},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "prompt", "options", "correct"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "minLength": 1},
					"prompt":  map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
					"correct": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go literal through encoding/json first.
		b, err := json.Marshal(courseSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal course schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse course schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded course document against the schema.
func validateDocument(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
