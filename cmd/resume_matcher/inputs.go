package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// loadVacancy reads a vacancy JSON file, checks it against the vacancy
// schema and decodes it. Reversed experience bounds are swapped.
func loadVacancy(path string) (*types.VacancyRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("--vacancy is required")
	}
	if err := schemas.ValidateFile(schemas.VacancySchema, path); err != nil {
		return nil, fmt.Errorf("invalid vacancy %s: %w", path, err)
	}

	doc, err := experience.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	vacancy, err := types.DecodeVacancy(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vacancy: %w", err)
	}
	vacancy.SwapExperienceBounds()
	if err := vacancy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vacancy %s: %w", path, err)
	}
	return vacancy, nil
}

// loadResume reads an extraction document and the optional raw text that
// backs it. At least one of the two must be given.
func loadResume(docPath, textPath string) (map[string]any, string, error) {
	if docPath == "" && textPath == "" {
		return nil, "", fmt.Errorf("--resume or --resume-text is required")
	}

	doc := map[string]any{}
	if docPath != "" {
		var err error
		if doc, err = experience.LoadDocument(docPath); err != nil {
			return nil, "", err
		}
	}
	rawText, err := experience.LoadText(textPath)
	if err != nil {
		return nil, "", err
	}
	return doc, rawText, nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(out, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
