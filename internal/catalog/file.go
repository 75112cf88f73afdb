package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Tests []Entry `yaml:"tests"`
}

// LoadFile reads a YAML seed file of catalog entries:
//
//	tests:
//	  - name: hemoglobin
//	    unit: g/dL
//	    ref_low: 12.0
//	    ref_high: 15.0
//	    explanation_low: ...
//	    explanation_high: ...
func LoadFile(path string) ([]Entry, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed seedFile
	if err := yaml.Unmarshal(blob, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	if len(seed.Tests) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no tests", path)
	}
	return seed.Tests, nil
}
