package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadVocabularies reads the category vocabulary artifact: a JSON object
// mapping feature name to its ordered category list. The artifact is
// produced by the training pipeline; a missing or corrupt file is a startup
// failure, never a runtime fallback.
func LoadVocabularies(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary artifact %s: %w", path, err)
	}

	var vocabs map[string][]string
	if err := json.Unmarshal(data, &vocabs); err != nil {
		return nil, fmt.Errorf("parse vocabulary artifact %s: %w", path, err)
	}
	if len(vocabs) == 0 {
		return nil, fmt.Errorf("vocabulary artifact %s holds no vocabularies", path)
	}

	return vocabs, nil
}
