package experience

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// wrapperKeys hold the extraction payload when the upstream service nests it.
var wrapperKeys = []string{"entities", "ai_parsed", "parsed", "data"}

// LoadDocument reads a résumé extraction JSON file.
func LoadDocument(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return DecodeDocument(content)
}

// DecodeDocument parses extraction output into a generic document. Empty
// input yields an empty document. A payload nested under a wrapper key such
// as "entities" is lifted to the top level, with sibling keys filling gaps.
func DecodeDocument(content []byte) (map[string]any, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, &LoadError{Message: fmt.Sprintf("expected a JSON object, got %T", raw)}
	}
	return unwrap(doc), nil
}

func unwrap(doc map[string]any) map[string]any {
	for _, key := range wrapperKeys {
		inner, ok := doc[key].(map[string]any)
		if !ok {
			continue
		}
		merged := make(map[string]any, len(inner)+len(doc))
		for k, v := range doc {
			if k != key {
				merged[k] = v
			}
		}
		for k, v := range inner {
			merged[k] = v
		}
		return merged
	}
	return doc
}

// LoadText reads an optional raw résumé text file. An empty path yields "".
func LoadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return string(content), nil
}
