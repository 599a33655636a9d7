package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// -----------------------------------------------------------------------------
// Vacancy Methods
// -----------------------------------------------------------------------------

// GetVacancy retrieves a vacancy by ID. It returns ErrNotFound when the row
// does not exist.
func (db *DB) GetVacancy(ctx context.Context, id int64) (*types.VacancyRecord, error) {
	var v types.VacancyRecord
	var description, requirements, responsibilities *string
	var skillsRequiredJSON, skillsOptionalJSON, weightsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, requirements, responsibilities,
		        skills_required, skills_optional, experience_min_years,
		        experience_max_years, education_required, weights
		 FROM vacancies WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Title, &description, &requirements, &responsibilities,
		&skillsRequiredJSON, &skillsOptionalJSON, &v.ExperienceMinYears,
		&v.ExperienceMaxYears, &v.EducationRequired, &weightsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vacancy %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}

	v.Description = deref(description)
	v.Requirements = deref(requirements)
	v.Responsibilities = deref(responsibilities)
	v.SkillsRequired = skillColumn(skillsRequiredJSON)
	v.SkillsOptional = skillColumn(skillsOptionalJSON)

	// Parse JSONB fields
	if weightsJSON != nil {
		var override types.WeightOverride
		if json.Unmarshal(weightsJSON, &override) == nil {
			v.Weights = &override
		}
	}

	return &v, nil
}

// UpsertVacancy inserts the vacancy when its ID is zero and updates it
// otherwise. It returns the stored ID.
func (db *DB) UpsertVacancy(ctx context.Context, v *types.VacancyRecord) (int64, error) {
	skillsRequired, err := jsonColumn(v.SkillsRequired)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal skills_required: %w", err)
	}
	skillsOptional, err := jsonColumn(v.SkillsOptional)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal skills_optional: %w", err)
	}
	var weights []byte
	if v.Weights != nil {
		if weights, err = json.Marshal(v.Weights); err != nil {
			return 0, fmt.Errorf("failed to marshal weights: %w", err)
		}
	}

	if v.ID == 0 {
		var id int64
		err = db.pool.QueryRow(ctx,
			`INSERT INTO vacancies (title, description, requirements, responsibilities,
			        skills_required, skills_optional, experience_min_years,
			        experience_max_years, education_required, weights)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING id`,
			v.Title, v.Description, v.Requirements, v.Responsibilities,
			skillsRequired, skillsOptional, v.ExperienceMinYears,
			v.ExperienceMaxYears, v.EducationRequired, weights,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to create vacancy: %w", err)
		}
		return id, nil
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE vacancies SET title = $2, description = $3, requirements = $4,
		        responsibilities = $5, skills_required = $6, skills_optional = $7,
		        experience_min_years = $8, experience_max_years = $9,
		        education_required = $10, weights = $11, updated_at = NOW()
		 WHERE id = $1`,
		v.ID, v.Title, v.Description, v.Requirements, v.Responsibilities,
		skillsRequired, skillsOptional, v.ExperienceMinYears,
		v.ExperienceMaxYears, v.EducationRequired, weights,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update vacancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("vacancy %d: %w", v.ID, ErrNotFound)
	}
	return v.ID, nil
}

// skillColumn reads a skills JSONB value that may hold a list, a delimited
// string or a list of objects. Unreadable content yields nil.
func skillColumn(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	if value == nil {
		return nil
	}
	return skills.Flatten(value)
}

func jsonColumn(list []string) ([]byte, error) {
	if list == nil {
		return nil, nil
	}
	return json.Marshal(list)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
