package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Applicant & Resume Methods
// -----------------------------------------------------------------------------

// UpsertApplicant returns the ID of the applicant with the given email,
// creating the applicant when needed.
func (db *DB) UpsertApplicant(ctx context.Context, fullName, email string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applicants (full_name, email) VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		 RETURNING id`,
		fullName, email,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert applicant: %w", err)
	}
	return id, nil
}

// CreateResume records an uploaded résumé file for an applicant.
func (db *DB) CreateResume(ctx context.Context, applicantID int64, fileName string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (applicant_id, file_name) VALUES ($1, $2) RETURNING id`,
		applicantID, fileName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// SaveParsedResume stores the extraction output of a résumé, replacing any
// earlier parse.
func (db *DB) SaveParsedResume(ctx context.Context, resumeID int64, rawText string, entities map[string]any) error {
	var entitiesJSON []byte
	if entities != nil {
		var err error
		if entitiesJSON, err = json.Marshal(entities); err != nil {
			return fmt.Errorf("failed to marshal entities: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO parsed_resumes (resume_id, raw_text, entities)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (resume_id) DO UPDATE SET raw_text = $2, entities = $3, parsed_at = NOW()`,
		resumeID, rawText, entitiesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return nil
}

// GetParsedResume loads the parsed résumé behind an application. It returns
// nil without error when the application has no résumé or the résumé has not
// been parsed yet. Entities that are not a JSON object read as an empty
// document so the raw text can still be used.
func (db *DB) GetParsedResume(ctx context.Context, applicationID int64) (*types.ParsedResume, error) {
	var resumeID int64
	var rawText *string
	var entitiesJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT p.resume_id, p.raw_text, p.entities
		 FROM applications a
		 JOIN parsed_resumes p ON p.resume_id = `+effectiveResume+`
		 WHERE a.id = $1`,
		applicationID,
	).Scan(&resumeID, &rawText, &entitiesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume: %w", err)
	}

	parsed := &types.ParsedResume{ResumeID: resumeID, RawText: deref(rawText), Document: map[string]any{}}
	if len(entitiesJSON) > 0 {
		if doc, err := experience.DecodeDocument(entitiesJSON); err == nil {
			parsed.Document = doc
		}
	}
	return parsed, nil
}
