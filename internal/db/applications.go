package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// effectiveResume resolves the résumé of an application: its own when set,
// otherwise the applicant's most recent upload.
const effectiveResume = `COALESCE(a.resume_id, (
	SELECT r.id FROM resumes r
	WHERE r.applicant_id = a.applicant_id
	ORDER BY r.created_at DESC, r.id DESC
	LIMIT 1
))`

const applicationColumns = `a.id, a.vacancy_id, a.applicant_id, ` + effectiveResume + `,
	a.status, a.match_score, a.match_breakdown, a.created_at, a.updated_at`

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*types.Application, error) {
	var app types.Application
	var breakdownJSON []byte
	if err := row.Scan(&app.ID, &app.VacancyID, &app.ApplicantID, &app.ResumeID,
		&app.Status, &app.MatchScore, &breakdownJSON, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return nil, err
	}
	if breakdownJSON != nil {
		var result types.ScoreResult
		if json.Unmarshal(breakdownJSON, &result) == nil {
			app.MatchBreakdown = &result
		}
	}
	return &app, nil
}

// ListApplications returns every application of a vacancy ordered by ID.
func (db *DB) ListApplications(ctx context.Context, vacancyID int64) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a WHERE a.vacancy_id = $1
		 ORDER BY a.id`,
		vacancyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

// GetApplication retrieves an application by ID. It returns ErrNotFound when
// the row does not exist.
func (db *DB) GetApplication(ctx context.Context, id int64) (*types.Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// CreateApplication records an application of an applicant to a vacancy.
// Applying twice to the same vacancy returns the existing application's ID
// and refreshes its résumé when one is given.
func (db *DB) CreateApplication(ctx context.Context, applicantID, vacancyID int64, resumeID *int64) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (applicant_id, vacancy_id, resume_id, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (applicant_id, vacancy_id)
		 DO UPDATE SET resume_id = COALESCE(EXCLUDED.resume_id, applications.resume_id), updated_at = NOW()
		 RETURNING id`,
		applicantID, vacancyID, resumeID, types.StatusSubmitted,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// SaveScore stores a score result on an application, replacing any earlier
// one.
func (db *DB) SaveScore(ctx context.Context, applicationID int64, result *types.ScoreResult) error {
	breakdown, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET match_score = $2, match_breakdown = $3, scored_at = NOW(), updated_at = NOW()
		 WHERE id = $1`,
		applicationID, result.Score, breakdown,
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	return nil
}

// SetStatus changes an application's status. The status must already be
// normalized to the allowed vocabulary.
func (db *DB) SetStatus(ctx context.Context, applicationID int64, status, note string) (*types.Application, error) {
	if _, ok := types.NormalizeStatus(status); !ok {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $2, status_note = $3, updated_at = NOW() WHERE id = $1`,
		applicationID, status, notePtr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	return db.GetApplication(ctx, applicationID)
}
