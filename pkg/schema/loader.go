// Package schema validates harness documents (config, persisted reports)
// against their JSON schemas.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks doc against the schema at schemaPath and returns the list
// of violations, empty when the document is valid.
func Validate(schemaPath string, doc any) ([]string, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("resolve schema path %s: %w", schemaPath, err)
	}
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + abs)
	docLoader := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", schemaPath, err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}

// ValidateJSONFile checks a JSON document on disk against the schema.
func ValidateJSONFile(schemaPath, docPath string) ([]string, error) {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", docPath, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", docPath, err)
	}
	return Validate(schemaPath, doc)
}
