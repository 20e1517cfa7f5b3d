package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// FromJSON decodes and validates a RawExtraction document.
func FromJSON(data []byte) (*RawExtraction, error) {
	var d RawExtraction
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse extraction JSON: %w", err)
	}
	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FromFile loads a RawExtraction from a JSON or YAML file.
func FromFile(path string) (*RawExtraction, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- caller supplies the document path
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		var d RawExtraction
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to parse extraction YAML: %w", err)
		}
		if err := Validate(&d); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return FromJSON(data)
	}
}

// Validate checks the producer contract: source URL, harvest timestamp, and
// category membership for any categorized sections.
func Validate(d *RawExtraction) error {
	if err := validate.Struct(d); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("invalid extraction: field %s failed %q", e.Field(), e.Tag())
		}
		return fmt.Errorf("invalid extraction: %w", err)
	}

	for i, sec := range d.Sections {
		if sec.Category != "" && !sec.Category.Known() && sec.Category != CategoryOther {
			return fmt.Errorf("invalid extraction: section %d has unknown category %q", i, sec.Category)
		}
	}
	return nil
}
