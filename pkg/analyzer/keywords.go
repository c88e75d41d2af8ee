package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords drives column inference and the food filter. Matching is
// substring containment against canonical (trimmed, lowercased) text, so
// entries must be lowercase.
type Keywords struct {
	Amount   []string `yaml:"amount"`
	Category []string `yaml:"category"`
	Date     []string `yaml:"date"`
	Food     []string `yaml:"food"`
}

// DefaultKeywords returns the built-in keyword tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Amount:   []string{"amount", "cost", "price", "total", "spend", "expense"},
		Category: []string{"category", "type", "class", "group"},
		Date:     []string{"date", "time", "day"},
		Food: []string{
			"food", "restaurant", "grocery", "dining", "meal", "lunch",
			"dinner", "breakfast", "cafe", "fast food", "takeout",
		},
	}
}

// LoadKeywords reads keyword overrides from a YAML file. Lists absent from
// the file keep their defaults.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()

	data, err := os.ReadFile(path)
	if err != nil {
		return kw, fmt.Errorf("failed to read keywords file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return kw, fmt.Errorf("failed to parse keywords file %s: %w", path, err)
	}
	return kw, nil
}
