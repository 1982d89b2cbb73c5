package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

type catalogFile struct {
	Metadata  Metadata                   `json:"metadata"`
	Questions []types.QuestionDefinition `json:"questions"`
}

// LoadFromFile reads a catalog definition from a JSON file and runs the
// startup validation pass on it. Used when a deployment overrides the
// built-in question set.
func LoadFromFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	if len(file.Questions) == 0 {
		return nil, &types.ConfigurationError{Problems: []string{"catalog file contains no questions"}}
	}

	if file.Metadata.DefaultLanguage == "" {
		file.Metadata.DefaultLanguage = types.DEFAULT_LANGUAGE
	}
	return New(file.Metadata, file.Questions)
}
